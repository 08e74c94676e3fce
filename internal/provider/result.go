package provider

// DefinitionResult is the per-word result of a dictionary lookup.
// It is never nil; fields that were not found stay empty.
type DefinitionResult struct {
	Meaning      string
	Example      string
	IPA          string
	PartOfSpeech string
}

// NotFoundMeaning is used when a source answered but had no definition text.
func NotFoundMeaning(word string) string {
	return "Definition not found for " + quoted(word)
}

// ParseErrorMeaning is used when a source page could not be parsed at all.
func ParseErrorMeaning(word string) string {
	return "Error parsing definition for " + quoted(word)
}

// UnavailableMeaning is used when every source failed for the word.
func UnavailableMeaning(word string) string {
	return "Unable to fetch definition for " + quoted(word)
}

// Unavailable returns the placeholder result for a word no source could serve.
func Unavailable(word string) DefinitionResult {
	return DefinitionResult{Meaning: UnavailableMeaning(word)}
}

// quoted wraps word in double quotes verbatim, without escaping.
func quoted(word string) string {
	return `"` + word + `"`
}
