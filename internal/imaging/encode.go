package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// jpegQuality matches the fixed output quality of the crop export.
const jpegQuality = 90

// EncodeJPEG serializes img as a base64 "data:image/jpeg" URI, the form the
// submitted JSON document embeds directly.
func EncodeJPEG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return dataURI("image/jpeg", buf.Bytes()), nil
}

// EncodePNG serializes img as a base64 "data:image/png" URI.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return dataURI("image/png", buf.Bytes()), nil
}

func dataURI(mime string, b []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// DecodeDataURI reverses EncodeJPEG/EncodePNG. Used by tests and anything
// that needs the raster back.
func DecodeDataURI(s string) (image.Image, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data uri")
	}
	mime, b64, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, "", fmt.Errorf("not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, mime, nil
}
