//go:build !ocr

// Package ocr wraps the Tesseract OCR engine via gosseract.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All operations return ErrOCRNotEnabled.
package ocr

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
