package domain

import "strings"

// ExampleSeparator joins an example sentence with its translation.
const ExampleSeparator = " | "

// WordRecord is a single raw word as it appeared in the uploaded list.
type WordRecord struct {
	Word string
}

// EnrichedRecord is the final output unit of the enrichment pipeline.
// Example holds the source-language example, serialized as "example_en";
// ExampleCombined is what is shown to the user as "example" and written to
// the export.
type EnrichedRecord struct {
	Word            string `json:"word"`
	MeaningEN       string `json:"meaning_en"`
	MeaningVI       string `json:"meaning_vi"`
	Example         string `json:"example_en"`
	ExampleCombined string `json:"example"`
	IPA             string `json:"ipa"`
	POS             string `json:"pos"`
}

// CombineExample joins an example with its translation as
// "<example> | <translation>". When the translation is empty or identical to
// the example, only the example is returned. An empty example yields "".
func CombineExample(example, translation string) string {
	if example == "" {
		return ""
	}
	if translation == "" || translation == example {
		return example
	}
	return example + ExampleSeparator + translation
}

// ErrorRecord builds the record emitted for a word whose enrichment failed
// unexpectedly. Every enrichment field except the meaning is empty.
func ErrorRecord(word, message string) EnrichedRecord {
	return EnrichedRecord{
		Word:      word,
		MeaningEN: "Error: " + strings.TrimSpace(message),
	}
}
