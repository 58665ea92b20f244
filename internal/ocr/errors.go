package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable it; that build
// requires Tesseract installed on the system (apt-get install tesseract-ocr).
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")
