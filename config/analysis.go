package config

import "sync"

var (
	analysisOnce   sync.Once
	analysisConfig *AnalysisConfig

	redisOnce   sync.Once
	redisConfig *RedisConfig
)

// AnalysisConfig carries the compliance-pipeline tunables.
type AnalysisConfig struct {
	// MaxConcurrency bounds the page worker pool per analysis run.
	MaxConcurrency int
	// GeneralDataFallbackPage is the page assumed to be the general-data
	// sheet when no page carries an explicit indicator. Historically
	// tuned to one document set; 0 disables the fallback.
	GeneralDataFallbackPage int
	// PassThreshold: a score below this without critical findings lands
	// on warning.
	PassThreshold float64
	// PatternLibraryPath optionally replaces the built-in pattern tables
	// with a YAML library.
	PatternLibraryPath string
	// StorageType selects the document-store backend (minio or s3).
	StorageType string
	// MaxFileSizeMB bounds accepted uploads.
	MaxFileSizeMB int64
}

func GetAnalysisConfig() *AnalysisConfig {
	analysisOnce.Do(func() {
		loadEnv()
		analysisConfig = &AnalysisConfig{
			MaxConcurrency:          getenvInt("ANALYSIS_MAX_CONCURRENCY", 4),
			GeneralDataFallbackPage: getenvInt("ANALYSIS_GENERAL_DATA_FALLBACK_PAGE", 4),
			PassThreshold:           getenvFloat("ANALYSIS_PASS_THRESHOLD", 80.0),
			PatternLibraryPath:      getenv("ANALYSIS_PATTERN_LIBRARY", ""),
			StorageType:             getenv("ANALYSIS_STORAGE_TYPE", "minio"),
			MaxFileSizeMB:           int64(getenvInt("ANALYSIS_MAX_FILE_SIZE_MB", 50)),
		}
	})
	return analysisConfig
}

type RedisConfig struct {
	Addr string
	DB   int
}

func GetRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		loadEnv()
		redisConfig = &RedisConfig{
			Addr: getenv("REDIS_ADDR", "localhost:6379"),
			DB:   getenvInt("REDIS_DB", 0),
		}
	})
	return redisConfig
}
