package qrcode

import (
	"errors"

	qr "github.com/skip2/go-qrcode"

	"bfinancial_sdk/internal/usecase/interfaces"
)

const defaultSize = 256

var ErrEmptyContent = errors.New("qr code content is empty")

// Generator renders Pix copy-paste literals as PNG images.
type Generator struct {
	size int
}

var _ interfaces.IQRCodeRenderer = (*Generator)(nil)

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{size: size}
}

func (g *Generator) Render(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return qr.Encode(content, qr.Medium, g.size)
}
