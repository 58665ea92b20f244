package extract

import (
	"errors"
	"fmt"
	"io"

	"answerforge/internal/ocr"
)

// ImageExtractor runs OCR over a scanned page image. An empty recognition
// result is reported distinctly from a missing OCR engine so the caller can
// tell "blank scan" from "install Tesseract or upload a text-based format".
type ImageExtractor struct {
	// Language overrides the OCR language ("eng" when empty).
	Language string
}

func (p *ImageExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	client, err := ocr.New()
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			return "", fmt.Errorf("%w: %s", ErrOCRUnavailable, err)
		}
		return "", fmt.Errorf("start ocr: %w", err)
	}
	defer client.Close()

	if p.Language != "" {
		if err := client.SetLanguage(p.Language); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}

	text, err := client.RecognizeImage(data)
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			return "", fmt.Errorf("%w: %s", ErrOCRUnavailable, err)
		}
		return "", fmt.Errorf("recognize image: %w", err)
	}
	if text == "" {
		return "", ErrNoTextInImage
	}
	return text, nil
}
