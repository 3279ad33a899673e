// Package imaging turns an uploaded picture of any common raster format into
// the canonical PNG payload that is sent to the vision model.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"food-analyzer/api/internal/util"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when the uploaded bytes are not a recognizable image.
var ErrDecode = errors.New("image decode failed")

const MIMEType = "image/png"

// ToPNG decodes raw and re-encodes it losslessly as PNG.
func ToPNG(raw []byte) ([]byte, string, error) {
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), format, nil
}

// Normalize returns the base64 (standard alphabet) text of the PNG form of raw.
func Normalize(raw []byte) (string, error) {
	pngBytes, _, err := ToPNG(raw)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(pngBytes), nil
}

// DataURI wraps a base64 PNG payload as data:image/png;base64,<payload>.
func DataURI(b64 string) string {
	return util.MakeDataURL(MIMEType, b64)
}
