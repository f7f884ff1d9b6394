package product

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	dtop "github.com/umdev/infoeste/internal/http/dto/product"
	"github.com/umdev/infoeste/internal/http/errors"
)

// imageURLPrefix: el front muestra la imagen como data URI. Se mantiene
// image/jpeg para cualquier formato guardado.
const imageURLPrefix = "data:image/jpeg;base64,"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	errImageRequired = errors.ErrMalformedInput.WithMessage("Image file is required")
	errImageType     = errors.ErrMalformedInput.WithMessage("Only JPG, PNG, and WEBP images are allowed")
)

// validateImage aplica presencia, tamaño y tipo, en ese orden. El tipo se
// toma del Content-Type de la parte y se contrasta con los bytes.
func validateImage(img *dtop.Image, max int64) error {
	if img == nil || len(img.Data) == 0 {
		return errImageRequired
	}
	if int64(len(img.Data)) > max {
		return errors.ErrMalformedInput.WithMessagef("Image file size exceeds %s limit", sizeLabel(max))
	}

	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(img.ContentType, ";", 2)[0]))
	if !allowedImageTypes[declared] {
		return errImageType
	}
	if sniffed := http.DetectContentType(img.Data); !allowedImageTypes[sniffed] {
		return errImageType.WithCause(fmt.Errorf("declared %s, sniffed %s", declared, sniffed))
	}
	return nil
}

// sizeLabel muestra el límite en MB enteros, o en KB si no llega a 1MB.
func sizeLabel(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%dKB", n>>10)
}

func encodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func imageURL(b64 string) string {
	if b64 == "" {
		return ""
	}
	return imageURLPrefix + b64
}
