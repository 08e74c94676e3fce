package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-export/internal/domain"
)

// DownloadName is the attachment name offered to clients.
const DownloadName = "vocabulary_export.csv"

// Header is the first row of every export.
var Header = []string{"Word", "Meaning_EN", "Meaning_VI", "Example", "IPA", "POS"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer serialises enriched records to temporary CSV files.
type Writer struct {
	dir string
	log *slog.Logger
}

// NewWriter creates a Writer that places files in dir (os.TempDir() when empty).
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{
		dir: dir,
		log: logger.With("adapter", "csvexport"),
	}
}

// File is a written export. The caller owns it and must call Remove.
type File struct {
	Path string
	Rows int
}

// Open reopens the file for reading.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Remove deletes the file. Removing a missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("csvexport: remove %s: %w", f.Path, err)
	}
	return nil
}

// Write creates a uniquely named file and writes records to it.
func (w *Writer) Write(records []domain.EnrichedRecord) (*File, error) {
	dir := w.dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "vocabulary_export_"+uuid.NewString()+".csv")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("csvexport: create file: %w", err)
	}

	if err := Encode(f, records); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("csvexport: close file: %w", err)
	}

	w.log.Debug("export written", slog.String("path", path), slog.Int("rows", len(records)))
	return &File{Path: path, Rows: len(records)}, nil
}

// Encode writes the BOM, the header and one row per record to out.
func Encode(out io.Writer, records []domain.EnrichedRecord) error {
	if _, err := out.Write(utf8BOM); err != nil {
		return fmt.Errorf("csvexport: write bom: %w", err)
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csvexport: write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Word, r.MeaningEN, r.MeaningVI, r.ExampleCombined, r.IPA, r.POS}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvexport: write row %q: %w", r.Word, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvexport: flush: %w", err)
	}
	return nil
}
