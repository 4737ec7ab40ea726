package storage

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// UploadPolicy constrains what an upload endpoint accepts.
type UploadPolicy struct {
	MaxFileMB  float64
	MimeTypes  []string
	Extensions []string
}

// ImagePolicy matches the image upload endpoint.
var ImagePolicy = UploadPolicy{
	MaxFileMB:  5,
	MimeTypes:  []string{"image/*"},
	Extensions: []string{"png", "jpg", "jpeg", "gif", "webp", "svg"},
}

// PDFPolicy matches the document upload endpoint.
var PDFPolicy = UploadPolicy{
	MaxFileMB:  10,
	MimeTypes:  []string{"application/pdf"},
	Extensions: []string{"pdf"},
}

// ValidateFile checks a file against the policy.
func (p UploadPolicy) ValidateFile(fileName, contentType string, sizeBytes int64) error {
	if p.MaxFileMB > 0 {
		maxBytes := int64(p.MaxFileMB * 1024 * 1024)
		if sizeBytes > maxBytes {
			return fmt.Errorf("file size %d bytes exceeds maximum %.0f MB", sizeBytes, p.MaxFileMB)
		}
	}

	if len(p.MimeTypes) > 0 && !p.matchesMimeType(contentType) {
		return fmt.Errorf("content type %s is not allowed", contentType)
	}

	if len(p.Extensions) > 0 && !p.matchesExtension(fileName) {
		return fmt.Errorf("file extension is not allowed. Allowed extensions: %v", p.Extensions)
	}

	return nil
}

// matchesMimeType checks contentType against the allowed patterns, which may
// use wildcards like "image/*".
func (p UploadPolicy) matchesMimeType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	for _, allowed := range p.MimeTypes {
		if strings.HasSuffix(allowed, "/*") {
			prefix := strings.TrimSuffix(allowed, "/*")
			if strings.HasPrefix(mediaType, prefix+"/") {
				return true
			}
		} else if mediaType == allowed {
			return true
		}
	}
	return false
}

func (p UploadPolicy) matchesExtension(fileName string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range p.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
