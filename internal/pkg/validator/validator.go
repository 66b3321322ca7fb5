package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
)

var AllowedImageContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

var AllowedAudioExtensions = map[string]bool{
	".mp3": true,
	".mp4": true,
}

var AllowedAudioContentTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/mp4":  true,
	"video/mp4":  true,
}

var AllowedLanguages = map[string]bool{
	entity.LanguageEnglish:   true,
	entity.LanguageBulgarian: true,
}

// Validator validates request parameters and media uploads
type Validator struct {
	cfg config.MediaConfig
}

func NewMediaValidator(cfg config.MediaConfig) *Validator {
	return &Validator{cfg: cfg}
}

// Required fails with ErrMissingField when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}
	return nil
}

// ValidateLanguage accepts "en" and "bg".
func ValidateLanguage(language string) error {
	if !AllowedLanguages[language] {
		return fmt.Errorf("%w: language %q (allowed: en, bg)", entity.ErrInvalidParameter, language)
	}
	return nil
}

// ValidateImageFile accepts PNG and JPEG uploads within the size limit.
func (v *Validator) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	contentType := mediaType(file.Header.Get("Content-Type"))
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("%w: content type %q (allowed: image/png, image/jpeg)", entity.ErrInvalidFile, contentType)
	}

	if file.Size > v.cfg.MaxImageFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxImageFileSize)
	}

	return nil
}

// ValidateAudioFile accepts uploads that look like MP3 or MP4 by extension
// or by content type.
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := mediaType(file.Header.Get("Content-Type"))
	if !AllowedAudioExtensions[ext] && !AllowedAudioContentTypes[contentType] {
		return fmt.Errorf("%w: %s (only MP3 and MP4 files are allowed)", entity.ErrInvalidExtension, file.Filename)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	return nil
}

func mediaType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
