package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/vocab-export/internal/adapter/csvexport"
	"github.com/heartmarshall/vocab-export/internal/domain"
)

const (
	uploadField  = "file"
	previewLimit = 10
)

// enricher defines the minimal interface needed by VocabularyHandler.
type enricher interface {
	Enrich(ctx context.Context, words []domain.WordRecord) ([]domain.EnrichedRecord, error)
}

// exportWriter writes enriched records to a temporary file.
type exportWriter interface {
	Write(records []domain.EnrichedRecord) (*csvexport.File, error)
}

// VocabularyHandler serves the upload, process and export endpoints.
type VocabularyHandler struct {
	svc            enricher
	export         exportWriter
	maxUploadBytes int64
	log            *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc enricher, export exportWriter, maxUploadBytes int64, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		svc:            svc,
		export:         export,
		maxUploadBytes: maxUploadBytes,
		log:            logger.With("handler", "vocabulary"),
	}
}

type uploadResponse struct {
	Message    string   `json:"message"`
	Words      []string `json:"words"`
	TotalCount int      `json:"total_count"`
}

type processResponse struct {
	Message string                  `json:"message"`
	Data    []domain.EnrichedRecord `json:"data"`
}

// Upload handles POST /upload-vocabulary/: parses the list and returns a preview.
func (h *VocabularyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	words, err := h.readWords(w, r)
	if err != nil {
		h.handleError(w, r, err, "Error processing file")
		return
	}

	list := domain.Words(words)
	preview := list[:min(len(list), previewLimit)]

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:    fmt.Sprintf("Successfully uploaded %d words", len(list)),
		Words:      preview,
		TotalCount: len(list),
	})
}

// Process handles POST /process-vocabulary/: runs the enrichment pipeline and
// returns the records as JSON.
func (h *VocabularyHandler) Process(w http.ResponseWriter, r *http.Request) {
	words, err := h.readWords(w, r)
	if err != nil {
		h.handleError(w, r, err, "Error processing file")
		return
	}

	records, err := h.svc.Enrich(r.Context(), words)
	if err != nil {
		h.handleError(w, r, err, "Error processing file")
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Message: fmt.Sprintf("Successfully processed %d words", len(records)),
		Data:    records,
	})
}

// Export handles POST /export-csv/: runs the pipeline and streams the CSV
// back as an attachment. The temporary file is removed once sent.
func (h *VocabularyHandler) Export(w http.ResponseWriter, r *http.Request) {
	words, err := h.readWords(w, r)
	if err != nil {
		h.handleError(w, r, err, "Error creating CSV")
		return
	}

	records, err := h.svc.Enrich(r.Context(), words)
	if err != nil {
		h.handleError(w, r, err, "Error creating CSV")
		return
	}

	file, err := h.export.Write(records)
	if err != nil {
		h.handleError(w, r, err, "Error creating CSV")
		return
	}
	defer func() {
		if err := file.Remove(); err != nil {
			h.log.WarnContext(r.Context(), "remove export file", slog.String("error", err.Error()))
		}
	}()

	f, err := file.Open()
	if err != nil {
		h.handleError(w, r, err, "Error creating CSV")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.DownloadName))
	if fi, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(fi.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		h.log.WarnContext(r.Context(), "stream export", slog.String("error", err.Error()))
	}
}

// readWords reads the uploaded file, checks its name and parses it into
// word records. With ?clean=true the list goes through the alphabetic
// filter and de-duplication.
func (h *VocabularyHandler) readWords(w http.ResponseWriter, r *http.Request) ([]domain.WordRecord, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, domain.NewValidationError(uploadField, fmt.Sprintf("file exceeds %d bytes", maxErr.Limit))
		case errors.Is(err, http.ErrMissingFile):
			return nil, domain.NewValidationError(uploadField, "file is required")
		default:
			return nil, domain.NewValidationError(uploadField, "invalid multipart upload: "+err.Error())
		}
	}
	defer file.Close()

	if err := domain.CheckUploadName(header.Filename); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	words, err := domain.ParseWordList(content)
	if err != nil {
		return nil, err
	}

	if clean, _ := strconv.ParseBool(r.URL.Query().Get("clean")); clean {
		words = domain.CleanRecords(words)
	}
	return words, nil
}

func (h *VocabularyHandler) handleError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnsupportedFile):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message())
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %s", prefix, err.Error()))
	}
}
