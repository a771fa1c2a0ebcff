package catalog

import (
	"strconv"
	"strings"
)

// FilterByYear keeps the papers whose year, written in decimal, contains term.
// An empty term returns papers unchanged. Order is preserved.
func FilterByYear(papers []QuestionPaper, term string) []QuestionPaper {
	term = strings.ToLower(term)
	if term == "" {
		return papers
	}

	out := make([]QuestionPaper, 0, len(papers))
	for _, p := range papers {
		if strings.Contains(strconv.Itoa(p.Year), term) {
			out = append(out, p)
		}
	}
	return out
}
