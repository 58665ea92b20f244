package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor flattens CSV reference files. The first row is treated as
// headers and each data row is rendered as "header: value" pairs.
type CSVExtractor struct{}

func (p *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var buf strings.Builder
	for _, row := range records[1:] {
		var cells []string
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				cells = append(cells, headers[j]+": "+cell)
			} else {
				cells = append(cells, cell)
			}
		}
		buf.WriteString(strings.Join(cells, ", "))
		buf.WriteString("\n")
	}
	return strings.TrimSpace(buf.String()), nil
}
