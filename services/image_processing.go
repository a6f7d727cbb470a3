package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding
)

// maxImageEdge is the downscale bound applied before transport. Smaller
// uploads pass through untouched; this is bandwidth control, not a
// correctness requirement.
const maxImageEdge = 800

var allowedImageMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// PrepareClothingImage sniffs the media type, rejects anything that is not
// PNG/JPEG/WEBP and downscales larger images to fit within 800x800. It
// returns the transport-ready bytes and their media type. Webp comes back
// re-encoded as PNG since the stdlib only decodes it.
func PrepareClothingImage(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image upload")
	}
	mimeType := http.DetectContentType(data)
	if !allowedImageMIMETypes[mimeType] {
		return nil, "", fmt.Errorf("unsupported image type %q, expected PNG, JPEG or WEBP", mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageEdge && bounds.Dy() <= maxImageEdge && mimeType != "image/webp" {
		return data, mimeType, nil
	}

	resized := imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)

	var buf bytes.Buffer
	switch mimeType {
	case "image/jpeg":
		err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(90))
	default:
		// png stays png, webp becomes png
		mimeType = "image/png"
		err = imaging.Encode(&buf, resized, imaging.PNG)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), mimeType, nil
}

// ImageDataURI renders bytes as a data URI, the transport-safe textual
// image form (data:image/<type>;base64,<payload>).
func ImageDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
