package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService, event paylaşım linkleri için QR kod üretir.
type QRService struct {
	baseURL string // örn: "https://whtzup.app/e/"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode, verilen event id için PNG formatında QR kod bayt dizisi oluşturur.
func (s *QRService) GenerateQRCode(eventID uint, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%d", s.baseURL, eventID)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
