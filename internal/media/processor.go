// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media stores chat attachments. Uploaded images are re-encoded
// (stripping metadata), auto-rotated from their EXIF orientation, bounded to
// a maximum edge and thumbnailed.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/preston16161/dashboarDelta/internal/util"
)

const (
	// MaxEdge bounds the longest edge of a stored attachment.
	MaxEdge = 1600

	// ThumbEdge bounds the longest edge of the thumbnail variant.
	ThumbEdge = 320

	// MaxUploadBytes caps the accepted upload size.
	MaxUploadBytes = 10 << 20 // 10 MB
)

// Result describes a stored attachment. URL and ThumbURL are paths relative
// to the uploads mount, ready to store on a message.
type Result struct {
	URL       string
	ThumbURL  string
	MediaType string
	Width     int
	Height    int
	Size      int64
}

// Processor saves chat attachments under an uploads directory.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a media processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Process reads an uploaded image and stores it with a thumbnail. The
// original bytes are never kept: the image is decoded and re-encoded, which
// drops EXIF and any trailing payload.
func (p *Processor) Process(reader io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	// Auto-rotate from EXIF before the re-encode discards it.
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if b := img.Bounds(); b.Dx() > MaxEdge || b.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
	}

	bounds := img.Bounds()
	encoded, err := encodeImage(img, format, 90)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	id := uuid.NewString()
	name := safeFileName(filename, format)

	origPath, err := p.saveFile(filepath.Join("chat", id), name, encoded)
	if err != nil {
		return nil, fmt.Errorf("saving attachment: %w", err)
	}

	thumb := imaging.Fit(img, ThumbEdge, ThumbEdge, imaging.Lanczos)
	thumbData, err := encodeImage(thumb, format, 80)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	if _, err := p.saveFile(filepath.Join("chat", id, "thumb"), name, thumbData); err != nil {
		return nil, fmt.Errorf("saving thumbnail: %w", err)
	}

	rel, err := filepath.Rel(p.uploadDir, origPath)
	if err != nil {
		rel = filepath.Join("chat", id, name)
	}

	return &Result{
		URL:       "/" + filepath.ToSlash(rel),
		ThumbURL:  "/" + filepath.ToSlash(filepath.Join("chat", id, "thumb", name)),
		MediaType: "image",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Size:      int64(len(encoded)),
	}, nil
}

// DetectMimeType detects the MIME type of uploaded data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// IsImage checks if a MIME type represents a processable image.
func (p *Processor) IsImage(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// Delete removes an attachment directory by id.
func (p *Processor) Delete(id string) error {
	if strings.Contains(id, "/") || strings.Contains(id, "..") {
		return fmt.Errorf("invalid attachment id")
	}
	dir := filepath.Join(p.uploadDir, "chat", id)
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	return nil
}

// safeFileName transliterates the client filename to ASCII and strips
// anything unsafe; the extension follows the detected format, not the
// client's claim.
func safeFileName(filename, format string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := util.Slugify(unidecode.Unidecode(base))
	if name == "" {
		name = "piece-jointe"
	}

	ext := "." + format
	if format == "jpeg" || format == "webp" {
		ext = ".jpg" // webp is re-encoded as jpeg
	}
	return name + ext
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies the EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image with the given format and quality.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		// jpeg, webp (no pure Go webp encoder) and anything else
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// saveFile creates the target directory and writes the data, refusing any
// path that escapes the uploads root.
func (p *Processor) saveFile(subDir, filename string, data []byte) (string, error) {
	safeName := filepath.Base(filename)
	if safeName == "." || safeName == ".." || safeName == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving uploads directory: %w", err)
	}

	absTarget := filepath.Join(absBase, cleanSubDir)
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filePath, nil
}
