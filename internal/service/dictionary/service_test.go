package dictionary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockProvider struct {
	name                string
	FetchDefinitionFunc func(ctx context.Context, word string) (provider.DefinitionResult, error)
	calls               atomic.Int32
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) FetchDefinition(ctx context.Context, word string) (provider.DefinitionResult, error) {
	m.calls.Add(1)
	return m.FetchDefinitionFunc(ctx, word)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(primary, fallback *mockProvider, cfg config.DictionaryConfig) *Service {
	return NewService(slog.Default(), primary, fallback, cfg)
}

func okProvider(name string, res provider.DefinitionResult) *mockProvider {
	return &mockProvider{
		name: name,
		FetchDefinitionFunc: func(_ context.Context, _ string) (provider.DefinitionResult, error) {
			return res, nil
		},
	}
}

func failingProvider(name string, err error) *mockProvider {
	return &mockProvider{
		name: name,
		FetchDefinitionFunc: func(_ context.Context, _ string) (provider.DefinitionResult, error) {
			return provider.DefinitionResult{}, err
		},
	}
}

var defaultCfg = config.DictionaryConfig{BreakerMaxFailures: 5, BreakerOpenTimeout: time.Minute}

// ---------------------------------------------------------------------------
// Fetch tests
// ---------------------------------------------------------------------------

func TestService_Fetch_PrimarySuccess(t *testing.T) {
	t.Parallel()

	want := provider.DefinitionResult{Meaning: "a fruit", Example: "eat an apple", IPA: "/ˈæp.əl/", PartOfSpeech: "noun"}
	primary := okProvider("primary", want)
	fallback := failingProvider("fallback", errors.New("must not be called"))

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "apple")

	assert.Equal(t, want, got)
	assert.Equal(t, int32(0), fallback.calls.Load())
}

func TestService_Fetch_NormalizesWord(t *testing.T) {
	t.Parallel()

	var seen string
	primary := &mockProvider{
		name: "primary",
		FetchDefinitionFunc: func(_ context.Context, word string) (provider.DefinitionResult, error) {
			seen = word
			return provider.DefinitionResult{Meaning: "m"}, nil
		},
	}

	newTestService(primary, failingProvider("fallback", errors.New("x")), defaultCfg).
		Fetch(context.Background(), "  Ice   CREAM ")

	assert.Equal(t, "ice cream", seen)
}

func TestService_Fetch_PrimaryStatusError_UsesFallback(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", &provider.HTTPStatusError{Source: "primary", StatusCode: http.StatusForbidden})
	want := provider.DefinitionResult{Meaning: "from fallback", PartOfSpeech: "verb"}
	fallback := okProvider("fallback", want)

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "run")

	assert.Equal(t, want, got)
	assert.Equal(t, int32(1), fallback.calls.Load())
}

func TestService_Fetch_PrimaryTransportError_UsesFallback(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", errors.New("dial tcp: connection refused"))
	want := provider.DefinitionResult{Meaning: "from fallback"}
	fallback := okProvider("fallback", want)

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "run")

	assert.Equal(t, want, got)
}

func TestService_Fetch_BothFail_ReturnsPlaceholder(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", errors.New("boom"))
	fallback := failingProvider("fallback", provider.ErrNoEntry)

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "Xyzzy")

	assert.Equal(t, `Unable to fetch definition for "Xyzzy"`, got.Meaning)
	assert.Empty(t, got.Example)
	assert.Empty(t, got.IPA)
	assert.Empty(t, got.PartOfSpeech)
}

func TestService_Fetch_PlaceholderKeepsTypedWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		word    string
		display string
		want    string
	}{
		{name: "capitalised", word: "Apple", display: "Apple", want: `Unable to fetch definition for "Apple"`},
		{name: "surrounding space trimmed", word: "  Ice Cream \t", display: "Ice Cream", want: `Unable to fetch definition for "Ice Cream"`},
		{name: "quotes verbatim", word: `say "hi"`, display: `say "hi"`, want: `Unable to fetch definition for "say "hi""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var lookedUp []string
			primary := &mockProvider{
				name: "primary",
				FetchDefinitionFunc: func(_ context.Context, word string) (provider.DefinitionResult, error) {
					lookedUp = append(lookedUp, word)
					return provider.DefinitionResult{}, errors.New("down")
				},
			}
			fallback := failingProvider("fallback", &provider.HTTPStatusError{Source: "fallback", StatusCode: http.StatusNotFound})

			got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), tt.word)

			assert.Equal(t, provider.Unavailable(tt.display), got)
			assert.Equal(t, tt.want, got.Meaning)
			require.Len(t, lookedUp, 1)
			assert.Equal(t, lookedUp[0], strings.ToLower(lookedUp[0]), "sources get the normalized word")
		})
	}
}

func TestService_Fetch_SourcePlaceholderRelabelled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		meaning string
		want    string
	}{
		{name: "not found", meaning: provider.NotFoundMeaning("apple"), want: `Definition not found for "Apple"`},
		{name: "parse error", meaning: provider.ParseErrorMeaning("apple"), want: `Error parsing definition for "Apple"`},
		{name: "real definition untouched", meaning: "A round fruit.", want: "A round fruit."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			primary := okProvider("primary", provider.DefinitionResult{Meaning: tt.meaning, IPA: "/ˈæp.əl/"})
			fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "unused"})

			got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "Apple")

			assert.Equal(t, tt.want, got.Meaning)
			assert.Equal(t, "/ˈæp.əl/", got.IPA)
		})
	}
}

func TestService_Fetch_FallbackPlaceholderRelabelled(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", errors.New("down"))
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: provider.NotFoundMeaning("banana")})

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "BANANA")

	assert.Equal(t, `Definition not found for "BANANA"`, got.Meaning)
}

func TestService_Fetch_PanicInPrimary_ReturnsPlaceholder(t *testing.T) {
	t.Parallel()

	primary := &mockProvider{
		name: "primary",
		FetchDefinitionFunc: func(_ context.Context, _ string) (provider.DefinitionResult, error) {
			panic("selector exploded")
		},
	}
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "unused"})

	var got provider.DefinitionResult
	require.NotPanics(t, func() {
		got = newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "apple")
	})
	assert.Equal(t, provider.Unavailable("apple"), got)
}

func TestService_Fetch_PanicInFallback_ReturnsPlaceholder(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", errors.New("down"))
	fallback := &mockProvider{
		name: "fallback",
		FetchDefinitionFunc: func(_ context.Context, _ string) (provider.DefinitionResult, error) {
			var m map[string]string
			m["x"] = "y"
			return provider.DefinitionResult{}, nil
		},
	}

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "apple")
	assert.Equal(t, provider.Unavailable("apple"), got)
}

func TestService_Fetch_EmptyWord(t *testing.T) {
	t.Parallel()

	primary := okProvider("primary", provider.DefinitionResult{Meaning: "m"})
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "m"})

	got := newTestService(primary, fallback, defaultCfg).Fetch(context.Background(), "   ")

	assert.Equal(t, provider.Unavailable(""), got)
	assert.Equal(t, int32(0), primary.calls.Load())
	assert.Equal(t, int32(0), fallback.calls.Load())
}

// ---------------------------------------------------------------------------
// Breaker tests
// ---------------------------------------------------------------------------

func TestService_Fetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", &provider.HTTPStatusError{Source: "primary", StatusCode: http.StatusServiceUnavailable})
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "fb"})
	cfg := config.DictionaryConfig{BreakerMaxFailures: 2, BreakerOpenTimeout: time.Hour}
	svc := newTestService(primary, fallback, cfg)

	for range 5 {
		got := svc.Fetch(context.Background(), "word")
		assert.Equal(t, "fb", got.Meaning)
	}

	assert.Equal(t, int32(2), primary.calls.Load(), "primary is skipped once the breaker is open")
	assert.Equal(t, int32(5), fallback.calls.Load())
}

func TestService_Fetch_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", &provider.HTTPStatusError{Source: "primary", StatusCode: http.StatusNotFound})
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "fb"})
	cfg := config.DictionaryConfig{BreakerMaxFailures: 2, BreakerOpenTimeout: time.Hour}
	svc := newTestService(primary, fallback, cfg)

	for range 4 {
		svc.Fetch(context.Background(), "word")
	}

	assert.Equal(t, int32(4), primary.calls.Load())
}

func TestSourceHealthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"canceled", context.Canceled, true},
		{"not found", &provider.HTTPStatusError{StatusCode: http.StatusNotFound}, true},
		{"forbidden", &provider.HTTPStatusError{StatusCode: http.StatusForbidden}, false},
		{"transport", errors.New("connection reset"), false},
		{"deadline", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sourceHealthy(tt.err))
		})
	}
}

func TestService_PrimaryState(t *testing.T) {
	t.Parallel()

	primary := failingProvider("primary", errors.New("down"))
	fallback := okProvider("fallback", provider.DefinitionResult{Meaning: "fb"})
	svc := newTestService(primary, fallback, config.DictionaryConfig{BreakerMaxFailures: 1, BreakerOpenTimeout: time.Hour})

	assert.Equal(t, "closed", svc.PrimaryState())
	svc.Fetch(context.Background(), "word")
	assert.Equal(t, "open", svc.PrimaryState())
}
