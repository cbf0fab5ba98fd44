package structure

import (
	"bytes"
	"image"

	// Register decoders for the formats slide decks commonly embed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// sniffImageMeta reads the payload header and reports intrinsic pixel
// dimensions and format for Figure attributes. Undecodable payloads
// yield nil; the build never fails on a bad image.
func sniffImageMeta(payload []byte) map[string]any {
	if len(payload) == 0 {
		return nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	return map[string]any{
		"format":       format,
		"pixel_width":  cfg.Width,
		"pixel_height": cfg.Height,
	}
}
