// file: internals/helpers/storage/thumbnail.go
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	thumbMaxSide = 480
	thumbQuality = 80
)

// ThumbPath deriva la ruta del thumbnail de una foto guardada.
func ThumbPath(path string) string {
	return path + ".thumb.webp"
}

// MakeWebPThumbnail genera un thumbnail WebP junto a la foto original.
// Se invoca best-effort desde el upload: un fallo se loguea y no bloquea.
func MakeWebPThumbnail(srcPath, mimetype string) (string, error) {
	if !strings.HasPrefix(mimetype, "image/") {
		return "", fmt.Errorf("no es una imagen: %s", mimetype)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}

	var img image.Image
	if strings.Contains(mimetype, "webp") {
		img, err = webp.Decode(bytes.NewReader(raw))
	} else {
		img, _, err = image.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	img = imaging.Fit(img, thumbMaxSide, thumbMaxSide, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: thumbQuality}); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}

	dst := ThumbPath(srcPath)
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return dst, nil
}
