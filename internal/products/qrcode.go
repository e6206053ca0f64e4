package products

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

// PNGQRGenerator renders 256px PNG codes.
type PNGQRGenerator struct{}

func (PNGQRGenerator) Generate(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}

// ProductLink is the address a printed code points the customer to.
func ProductLink(baseURL string, productID uint) string {
	return fmt.Sprintf("%s/products/%d", strings.TrimRight(baseURL, "/"), productID)
}
