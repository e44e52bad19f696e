package client

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/Aashish23092/carrier-bill-analyzer/utils/billsummary"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

// QREncoder renders text payloads as QR code images at error correction
// level Q, which survives printing and photographing.
type QREncoder struct {
	size    int
	version int
	margin  int
	writer  gozxing.Writer
}

// NewQREncoder creates an encoder producing size x size images. A version of
// 0 picks the smallest symbol that fits the payload; a fixed version fails
// with ErrEncodingOverflow when the payload does not fit.
func NewQREncoder(size, version, margin int) *QREncoder {
	if size <= 0 {
		size = 400
	}
	if margin < 0 {
		margin = 4
	}
	return &QREncoder{
		size:    size,
		version: version,
		margin:  margin,
		writer:  qrcode.NewQRCodeWriter(),
	}
}

func (e *QREncoder) hints() map[gozxing.EncodeHintType]interface{} {
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_Q,
		gozxing.EncodeHintType_MARGIN:           e.margin,
	}
	if e.version > 0 {
		hints[gozxing.EncodeHintType_QR_VERSION] = e.version
	}
	return hints
}

// Encode renders payload as a QR code image.
func (e *QREncoder) Encode(payload string) (image.Image, error) {
	matrix, err := e.writer.Encode(payload, gozxing.BarcodeFormat_QR_CODE, e.size, e.size, e.hints())
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", billsummary.ErrEncodingOverflow, len(payload), err)
	}
	return matrix, nil
}

// EncodePNG renders payload as a PNG-encoded QR code.
func (e *QREncoder) EncodePNG(payload string) ([]byte, error) {
	img, err := e.Encode(payload)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode QR image to PNG: %w", err)
	}

	log.Printf("Encoded %d byte summary into %dx%d QR image", len(payload), img.Bounds().Dx(), img.Bounds().Dy())
	return buf.Bytes(), nil
}
