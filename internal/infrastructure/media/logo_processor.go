// Package media provides logo processing and advisory media-URL validation
// for the builder.
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const logoMaxWidth = 512

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,`)

// LogoProcessor persists uploaded brand logos for a template instance
type LogoProcessor struct {
	basePath string
}

// NewLogoProcessor creates a processor rooted at the media directory
func NewLogoProcessor(basePath string) *LogoProcessor {
	return &LogoProcessor{basePath: basePath}
}

// ProcessBase64Logo decodes a data-URI logo upload, saves the original, and
// for raster formats writes a resized WebP thumbnail alongside it. Returns
// the relative URL of the stored logo.
func (p *LogoProcessor) ProcessBase64Logo(data, instanceID string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	targetDir := filepath.Join(p.basePath, instanceID, "brand")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	filename := fmt.Sprintf("logo-%d.%s", time.Now().UnixMilli(), ext)
	fullPath := filepath.Join(targetDir, filename)

	decoded, err := decodeDataURI(data)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write logo file: %w", err)
	}

	// SVGs are stored as-is; raster logos get a bounded WebP thumbnail.
	if ext != "svg" {
		if err := p.writeThumbnail(fullPath, targetDir, filename); err != nil {
			os.Remove(fullPath)
			return "", err
		}
	}

	relative := filepath.Join("/media", instanceID, "brand", filename)
	return strings.ReplaceAll(relative, "\\", "/"), nil
}

func (p *LogoProcessor) writeThumbnail(sourcePath, targetDir, filename string) error {
	src, err := imaging.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to decode logo image: %w", err)
	}

	resized := src
	if src.Bounds().Dx() > logoMaxWidth {
		resized = imaging.Resize(src, logoMaxWidth, 0, imaging.Lanczos)
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	thumbPath := filepath.Join(targetDir, base+"_thumb.webp")
	if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to save logo thumbnail: %w", err)
	}
	return nil
}

// decodeDataURI strips the data-URI prefix and decodes the base64 body
func decodeDataURI(data string) ([]byte, error) {
	match := dataURIPattern.FindString(data)
	if match == "" {
		return nil, fmt.Errorf("invalid data URI")
	}
	decoded, err := base64.StdEncoding.DecodeString(data[len(match):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return decoded, nil
}

// extractExtension auto-detects file extension from the data-URI MIME type
func extractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/svg+xml"):
		return "svg"
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	case strings.HasPrefix(data, "data:image/"):
		return "png"
	default:
		return ""
	}
}
