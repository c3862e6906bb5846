// Package media handles upload storage and thumbnail generation.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"warbler/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

const (
	maxUploadSizeBytes = 10 * 1024 * 1024
	thumbnailMaxSize   = 256
	webpQuality        = 70
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store writes uploads under a base directory with generated names so a
// crafted filename can never escape it.
type Store struct {
	baseDir string
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	// Path is the stored filename relative to the base directory.
	Path string `json:"path"`
	// ThumbnailPath is the webp thumbnail, empty for animated GIFs kept
	// as-is.
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	SizeBytes     int64  `json:"size_bytes"`
}

// NewStore creates the base directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save validates and persists an upload, generating a webp thumbnail for
// still images. The original filename contributes only its extension.
func (s *Store) Save(filename string, content []byte) (*StoredFile, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", maxUploadSizeBytes/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, models.NewValidationError("File type not allowed (png, jpg, jpeg, gif)")
	}

	detected := http.DetectContentType(content)
	if !strings.HasPrefix(detected, "image/") {
		return nil, models.NewValidationError("Invalid image file")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	name := uuid.New().String() + ext
	if err := writeBytesToFile(filepath.Join(s.baseDir, name), content); err != nil {
		return nil, models.NewInternalError(err)
	}

	stored := &StoredFile{Path: name, SizeBytes: int64(len(content))}

	// GIFs keep their animation; a still thumbnail would lose it.
	if ext != ".gif" {
		thumbName := strings.TrimSuffix(name, ext) + "_thumb.webp"
		thumb, err := encodeWebP(resizeToFit(decoded, thumbnailMaxSize, thumbnailMaxSize), webpQuality)
		if err != nil {
			_ = os.Remove(filepath.Join(s.baseDir, name))
			return nil, models.NewInternalError(err)
		}
		if err := writeBytesToFile(filepath.Join(s.baseDir, thumbName), thumb); err != nil {
			_ = os.Remove(filepath.Join(s.baseDir, name))
			return nil, models.NewInternalError(err)
		}
		stored.ThumbnailPath = thumbName
	}

	return stored, nil
}

// Resolve returns the absolute path for a stored name, rejecting anything
// that would escape the base directory.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", models.NewValidationError("Invalid file name")
	}
	full := filepath.Join(s.baseDir, name)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("File", name)
		}
		return "", models.NewInternalError(err)
	}
	return full, nil
}

// URL builds the public path for a stored name.
func (s *Store) URL(name string) string {
	return "/media/" + name
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
