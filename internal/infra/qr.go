package infra

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCodePNG encodes url as a PNG so staff tablets can open the LAN address
// by scanning it.
func QRCodePNG(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("qr: empty url")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}
