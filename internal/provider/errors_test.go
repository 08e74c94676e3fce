package provider

import "testing"

func TestHTTPStatusError(t *testing.T) {
	t.Parallel()

	err := &HTTPStatusError{Source: "cambridge", URL: "https://example.test/x", StatusCode: 403}
	if got := err.Error(); got != "cambridge: unexpected status 403" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPlaceholderMeanings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "not found", got: NotFoundMeaning("apple"), want: `Definition not found for "apple"`},
		{name: "parse error", got: ParseErrorMeaning("apple"), want: `Error parsing definition for "apple"`},
		{name: "unavailable", got: UnavailableMeaning("apple"), want: `Unable to fetch definition for "apple"`},
		{name: "case kept", got: UnavailableMeaning("Apple"), want: `Unable to fetch definition for "Apple"`},
		{name: "quotes not escaped", got: UnavailableMeaning(`say "hi"`), want: `Unable to fetch definition for "say "hi""`},
		{name: "backslash not escaped", got: NotFoundMeaning(`a\b`), want: `Definition not found for "a\b"`},
		{name: "non-ascii not escaped", got: NotFoundMeaning("café"), want: `Definition not found for "café"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	res := Unavailable("apple")
	if res.Meaning != `Unable to fetch definition for "apple"` || res.Example != "" || res.IPA != "" || res.PartOfSpeech != "" {
		t.Errorf("Unavailable() = %+v", res)
	}
}
