package content

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizeFile fills the derived attachment fields: size from the bytes,
// mime type sniffed when missing, extension from the name or detected type,
// and the image flag from the mime type.
func NormalizeFile(f *FilePayload) *FilePayload {
	if f == nil {
		return nil
	}
	out := *f
	out.Name = strings.TrimSpace(out.Name)
	out.SizeBytes = int64(len(out.Content))

	var detected *mimetype.MIME
	if strings.TrimSpace(out.MimeType) == "" {
		detected = mimetype.Detect(out.Content)
		out.MimeType = detected.String()
	}

	if out.Extension == "" {
		out.Extension = filepath.Ext(out.Name)
	}
	if out.Extension == "" && detected != nil {
		out.Extension = detected.Extension()
	}
	out.Extension = strings.ToLower(strings.TrimPrefix(out.Extension, "."))

	out.IsImage = strings.HasPrefix(mediaType(out.MimeType), "image/")
	return &out
}

// ValidateFile checks a normalized attachment against the field rules and the
// size limit. A limit of zero or less disables the size check.
func ValidateFile(f *FilePayload, maxBytes int64) error {
	if f == nil {
		return nil
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if maxBytes > 0 && f.SizeBytes > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidFile, f.SizeBytes, maxBytes)
	}
	return nil
}

// ValidateBody enforces that a content item carries text or a file.
func ValidateBody(text string, f *FilePayload) error {
	if strings.TrimSpace(text) == "" && f == nil {
		return ErrEmptyContent
	}
	return nil
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}
