package gen

import (
	"regexp"
	"strings"

	"answerforge/internal/qbank"
)

var batchMarkerRe = regexp.MustCompile(`(?mi)^\s*ANSWER\s+(\d+)\s*:\s*`)

// MissingAnswerText is the placeholder body used when an ordinal's answer
// cannot be located in a batch response.
const MissingAnswerText = "Unable to extract an answer for this question from the batch response. Please regenerate this question individually."

// ParseBatch splits a batched response back into per-question answers using
// the "ANSWER <n>:" marker convention. When markers and questions disagree,
// sections fall back to positional assignment; every input ordinal always
// receives a record, with a clearly marked placeholder as the last resort.
func ParseBatch(text string, questions []qbank.Question) []qbank.AnswerRecord {
	sections, ordinals := splitSections(text)

	// First pass: direct marker/ordinal matches.
	byOrdinal := make(map[int]string, len(sections))
	var unclaimed []string
	for i, sec := range sections {
		ord := ordinals[i]
		if ord > 0 && hasOrdinal(questions, ord) {
			if _, dup := byOrdinal[ord]; !dup {
				byOrdinal[ord] = sec
				continue
			}
		}
		unclaimed = append(unclaimed, sec)
	}

	// Second pass: hand unclaimed sections to unmatched questions in order.
	records := make([]qbank.AnswerRecord, 0, len(questions))
	for _, q := range questions {
		answer, ok := byOrdinal[q.Ordinal]
		if !ok && len(unclaimed) > 0 {
			answer = unclaimed[0]
			unclaimed = unclaimed[1:]
			ok = true
		}
		rec := qbank.AnswerRecord{
			Ordinal:  q.Ordinal,
			Question: q.Text,
			Answer:   strings.TrimSpace(answer),
		}
		if !ok || rec.Answer == "" {
			rec.Answer = MissingAnswerText
			rec.Placeholder = true
		}
		records = append(records, rec)
	}
	return records
}

// splitSections cuts the response at each marker. Once any marker is found,
// text before the first one is preamble and is discarded; a marker-free
// response is one section with ordinal 0.
func splitSections(text string) (sections []string, ordinals []int) {
	matches := batchMarkerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if strings.TrimSpace(text) != "" {
			return []string{text}, []int{0}
		}
		return nil, nil
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, strings.TrimSpace(text[m[1]:end]))
		ordinals = append(ordinals, atoiSafe(text[m[2]:m[3]]))
	}
	return sections, ordinals
}

func hasOrdinal(questions []qbank.Question, ord int) bool {
	for _, q := range questions {
		if q.Ordinal == ord {
			return true
		}
	}
	return false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1<<20 {
			return 0
		}
	}
	return n
}
