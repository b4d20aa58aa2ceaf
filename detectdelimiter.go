package submorph

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters a results table may be saved with, most preferred first.
var tableDelimiters = []rune{',', '\t', ';', '|'}

// DetermineDelimiter sniffs the delimiter of a results table such as
// distribution_data. CSVSink writes commas, but tables re-exported from a
// spreadsheet often come back tab or semicolon delimited. The detector reports
// every character that occurs equally often on each sampled line, in no fixed
// order, so the known delimiters are checked in order of preference. Falls
// back to ','.
func DetermineDelimiter(r io.Reader) rune {
	seen := make(map[rune]bool)
	for _, candidate := range detector.New().DetectDelimiter(r, '"') {
		if len(candidate) == 1 {
			seen[rune(candidate[0])] = true
		}
	}

	for _, d := range tableDelimiters {
		if seen[d] {
			return d
		}
	}

	return ','
}
