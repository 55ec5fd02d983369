package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// EncodedImage is an image serialized for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveTemp writes img into dir under a random name and returns the path.
//
// The extension picks the format and defaults to ".jpg". An empty dir means
// os.TempDir(). The directory is created if needed; removing the file is the
// caller's job.
func SaveTemp(img image.Image, dir, ext string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if ext == "" {
		ext = ".jpg"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// Save writes img to path, picking the format from the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
