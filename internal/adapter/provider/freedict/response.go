package freedict

// apiEntry is one element of the JSON array the API returns for a word;
// the array holds one entry per etymology and only the first is read.
type apiEntry struct {
	Word string `json:"word"`
	// Phonetic is the headline transcription. Not every entry has it, and
	// Phonetics is usually more complete.
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text string `json:"text"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// ipa returns the first non-empty transcription in Phonetics, falling back
// to Phonetic.
func (e apiEntry) ipa() string {
	for _, ph := range e.Phonetics {
		if ph.Text != "" {
			return ph.Text
		}
	}
	return e.Phonetic
}
