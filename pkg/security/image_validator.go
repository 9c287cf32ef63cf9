package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps profile picture uploads.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge  = errors.New("image exceeds 5 MB")
	ErrImageType      = errors.New("only JPEG and PNG images are accepted")
	ErrImageSignature = errors.New("file content does not match its extension")
	ErrImageEmpty     = errors.New("image is empty")
)

var imageSignatures = map[string][]byte{
	".jpg":  {0xFF, 0xD8, 0xFF},
	".jpeg": {0xFF, 0xD8, 0xFF},
	".png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
}

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidateImage checks extension whitelist, magic bytes and sniffed MIME type.
func ValidateImage(filename string, data []byte) error {
	if len(data) == 0 {
		return ErrImageEmpty
	}
	if len(data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	sig, ok := imageSignatures[ext]
	if !ok {
		return ErrImageType
	}
	if !bytes.HasPrefix(data, sig) {
		return ErrImageSignature
	}
	if !imageMIMETypes[http.DetectContentType(data)] {
		return ErrImageType
	}
	return nil
}
