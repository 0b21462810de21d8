package config

import "sync"

var (
	textractOnce   sync.Once
	textractConfig *TextractConfig
)

type TextractConfig struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	MinConfidence float64
	Enabled       bool
}

func GetTextractConfig() *TextractConfig {
	textractOnce.Do(func() {
		loadEnv()
		textractConfig = &TextractConfig{
			Region:        getenv("AWS_REGION", ""),
			Endpoint:      getenv("AWS_ENDPOINT", ""),
			AccessKey:     getenv("AWS_ACCESS_KEY", ""),
			SecretKey:     getenv("AWS_SECRET_KEY", ""),
			MinConfidence: getenvFloat("TEXTRACT_MIN_CONFIDENCE", 80.0),
			Enabled:       getenvBool("TEXTRACT_ENABLED", false),
		}
	})
	return textractConfig
}
