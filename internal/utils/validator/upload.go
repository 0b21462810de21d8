// Package validator checks uploads before the service touches storage or
// the queue.
package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ValidateUpload rejects files over the size limit or with an extension
// no extraction backend handles.
func ValidateUpload(header *multipart.FileHeader, maxSize int64, allowedTypes []string) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum of %d bytes", header.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, t := range allowedTypes {
		if t == ext {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type: %s", ext)
}
