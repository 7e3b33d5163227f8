package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Storage keeps uploaded images on the local disk under dir and exposes them
// below baseURL.
type Storage struct {
	dir     string
	baseURL string
}

func NewStorage(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Storage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// SaveImage stores r as "<slug(name)>-<uuid><ext>" and returns its URL.
// Content that is not a supported image is a ValidationError on "image".
func (s *Storage) SaveImage(subdir, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", domain.NewValidationError("image", "the submitted file is empty")
	}
	if len(data) > MaxImageSize {
		return "", domain.NewValidationError("image", fmt.Sprintf("image must not exceed %d bytes", MaxImageSize))
	}

	mtype := mimetype.Detect(data)
	ext, ok := imageExtensions[mtype.String()]
	if !ok {
		return "", domain.NewValidationError("image", "upload a valid image. The file you uploaded was either not an image or a corrupted image")
	}

	filename := fmt.Sprintf("%s-%s%s", Slugify(name), uuid.NewString(), ext)
	target := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.baseURL + "/" + filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// Remove deletes a file previously returned by SaveImage. Unknown URLs are ignored.
func (s *Storage) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Slugify lowercases s and joins its letters and digits with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "image"
	}
	return slug
}
