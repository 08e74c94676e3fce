package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/domain"
)

const applePage = `<html><body>
<span class="pos">noun</span>
<span class="pron"><span class="ipa">ˈæp.əl</span></span>
<div class="def-block"><div class="def">a round fruit with firm white flesh</div>
<span class="eg">He ate an apple.</span></div>
</body></html>`

// stubSources starts a primary source that knows only "apple" and a fallback
// that knows only "banana".
func stubSources(t *testing.T) (primaryURL, fallbackURL string) {
	t.Helper()

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/apple" {
			w.Write([]byte(applePage))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(primary.Close)

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/banana" {
			w.Write([]byte(`[{"word":"banana","phonetics":[{"text":"/bəˈnɑː.nə/"}],"meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A long yellow fruit."}]}]}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(fallback.Close)

	return primary.URL, fallback.URL
}

func testConfig(t *testing.T, primaryURL, fallbackURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Dictionary: config.DictionaryConfig{
			PrimaryURL:         primaryURL,
			FallbackURL:        fallbackURL,
			PrimaryTimeout:     5 * time.Second,
			FallbackTimeout:    5 * time.Second,
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: time.Minute,
		},
		Translate: config.TranslateConfig{
			Backend: config.BackendNone,
			Source:  "en",
			Target:  "vi",
			Timeout: 5 * time.Second,
			Workers: 2,
		},
		Export: config.ExportConfig{Dir: t.TempDir()},
	}
}

func newTestComponents(t *testing.T) (*Components, *config.Config) {
	t.Helper()
	primaryURL, fallbackURL := stubSources(t)
	cfg := testConfig(t, primaryURL, fallbackURL)

	c, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, cfg
}

func TestHandler_ProcessVocabulary_EndToEnd(t *testing.T) {
	c, cfg := newTestComponents(t)
	handler := NewHandler(c, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "words.txt")
	require.NoError(t, err)
	fw.Write([]byte("apple\nbanana\nXyzzy\n\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-vocabulary/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string                  `json:"message"`
		Data    []domain.EnrichedRecord `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Successfully processed 3 words", resp.Message)
	require.Len(t, resp.Data, 3)

	apple := resp.Data[0]
	assert.Equal(t, "apple", apple.Word)
	assert.Equal(t, "a round fruit with firm white flesh", apple.MeaningEN)
	assert.Equal(t, apple.MeaningEN, apple.MeaningVI, "pass-through backend")
	assert.Equal(t, "He ate an apple.", apple.ExampleCombined)
	assert.Equal(t, "He ate an apple.", apple.Example)
	assert.Equal(t, "ˈæp.əl", apple.IPA)
	assert.Equal(t, "noun", apple.POS)

	banana := resp.Data[1]
	assert.Equal(t, "A long yellow fruit.", banana.MeaningEN)
	assert.Equal(t, "/bəˈnɑː.nə/", banana.IPA)

	missing := resp.Data[2]
	assert.Equal(t, `Unable to fetch definition for "Xyzzy"`, missing.MeaningEN)
	assert.Empty(t, missing.ExampleCombined)
	assert.Empty(t, missing.IPA)
	assert.Empty(t, missing.POS)
}

func TestHandler_Health(t *testing.T) {
	c, cfg := newTestComponents(t)
	handler := NewHandler(c, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"breaker closed"`)
}

func TestEnrichFile(t *testing.T) {
	c, _ := newTestComponents(t)

	in := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(in, []byte("Banana\nbanana\napple\n"), 0o644))

	var out bytes.Buffer
	n, err := EnrichFile(context.Background(), c, slog.New(slog.NewTextHandler(io.Discard, nil)), in, &out, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(bytes.NewReader(out.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "banana", rows[1][0])
	assert.Equal(t, "apple", rows[2][0])
}

func TestEnrichFile_MissingInput(t *testing.T) {
	c, _ := newTestComponents(t)

	_, err := EnrichFile(context.Background(), c, slog.New(slog.NewTextHandler(io.Discard, nil)),
		filepath.Join(t.TempDir(), "nope.txt"), io.Discard, false)
	assert.Error(t, err)
}

func TestTranslateTexts_PassThrough(t *testing.T) {
	c, _ := newTestComponents(t)

	got := TranslateTexts(context.Background(), c, []string{"hello", " ", "world"})
	assert.Equal(t, []string{"hello", "", "world"}, got)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	primaryURL, fallbackURL := stubSources(t)
	cfg := testConfig(t, primaryURL, fallbackURL)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = freePort(t)
	cfg.Server.ShutdownTimeout = 2 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	addr := "http://127.0.0.1:" + strconv.Itoa(cfg.Server.Port) + "/live"
	require.Eventually(t, func() bool {
		resp, err := http.Get(addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestEnrichToPath_WritesOnlyOnSuccess(t *testing.T) {
	c, _ := newTestComponents(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	in := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(in, []byte("apple\nbanana\n"), 0o644))
	out := filepath.Join(dir, "export.csv")

	n, err := EnrichToPath(context.Background(), c, logger, in, out, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Word,Meaning_EN,Meaning_VI,Example,IPA,POS")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestEnrichToPath_FailureLeavesNoFile(t *testing.T) {
	c, _ := newTestComponents(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		in   string
	}{
		{name: "missing input", ctx: context.Background(), in: "nope.txt"},
		{name: "cancelled run", ctx: cancelled, in: "words.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("apple\n"), 0o644))
			out := filepath.Join(dir, "export.csv")

			_, err := EnrichToPath(tt.ctx, c, logger, filepath.Join(dir, tt.in), out, false)
			require.Error(t, err)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "output must not exist")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "only the input remains")
		})
	}
}

func TestEnrichToPath_FailureKeepsExistingOutput(t *testing.T) {
	c, _ := newTestComponents(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(out, []byte("previous export"), 0o644))

	_, err := EnrichToPath(context.Background(), c, slog.New(slog.NewTextHandler(io.Discard, nil)),
		filepath.Join(dir, "nope.txt"), out, false)
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous export", string(data))
}
