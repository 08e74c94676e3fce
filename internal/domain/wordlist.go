package domain

import (
	"bytes"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// AllowedUploadExt is the only accepted extension for uploaded word lists.
const AllowedUploadExt = ".txt"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CheckUploadName rejects uploads whose filename does not end in .txt.
func CheckUploadName(filename string) error {
	if !strings.HasSuffix(path.Base(filename), AllowedUploadExt) {
		return &UnsupportedFileError{Filename: filename, Allowed: AllowedUploadExt}
	}
	return nil
}

// ParseWordList decodes raw upload content into word records: one word per
// line, each line trimmed, empty lines dropped. Order, duplicates and case
// are preserved as typed.
func ParseWordList(content []byte) ([]WordRecord, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, NewValidationError("file", "file must be UTF-8 encoded text")
	}

	lines := strings.Split(string(content), "\n")
	records := make([]WordRecord, 0, len(lines))
	for _, line := range lines {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		records = append(records, WordRecord{Word: word})
	}
	return records, nil
}

// Words extracts the word strings from records, preserving order.
func Words(records []WordRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

// CleanWords lower-cases the words and keeps only those that are purely
// alphabetic once spaces, hyphens and apostrophes are ignored. Duplicates
// are dropped; the first occurrence keeps its position.
func CleanWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = norm.NFC.String(strings.TrimSpace(w))
		if w == "" || !isAlphabetic(w) {
			continue
		}
		w = lower(w)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// CleanRecords applies CleanWords to a list of records.
func CleanRecords(records []WordRecord) []WordRecord {
	words := CleanWords(Words(records))
	out := make([]WordRecord, len(words))
	for i, w := range words {
		out[i] = WordRecord{Word: w}
	}
	return out
}

func isAlphabetic(w string) bool {
	letters := 0
	for _, r := range w {
		switch {
		case r == ' ' || r == '-' || r == '\'':
			continue
		case unicode.IsLetter(r):
			letters++
		default:
			return false
		}
	}
	return letters > 0
}
