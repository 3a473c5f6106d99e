// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can substitute a fake.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode creates a PNG QR code pointing at the given URL.
func GenerateQRCode(content string, width, height int, encode QRCodeEncoder) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content must not be empty")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("qr dimensions must be positive")
	}
	return encode(content, qrcode.Medium, width)
}
