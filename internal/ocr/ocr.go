//go:build ocr

// Package ocr wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag, the stub implementation is compiled instead and every
// operation reports ErrOCRNotEnabled.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations. Close it to release resources.
type Client struct {
	client *gosseract.Client
}

func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for recognition, "+" separated
// (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
