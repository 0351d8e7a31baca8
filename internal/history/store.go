package history

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrDataLoad is the parent of every dataset loading failure.
var ErrDataLoad = errors.New("failed to load historical data")

// Loading failure kinds. Each wraps ErrDataLoad.
var (
	ErrFileNotFound  = errors.Wrap(ErrDataLoad, "data file not found")
	ErrInvalidFormat = errors.Wrap(ErrDataLoad, "invalid JSON format")
	ErrInvalidSchema = errors.Wrap(ErrDataLoad, "data must be a list of historical events")
)

// Store is the read-only, ordered collection of records for a session.
type Store struct {
	path    string
	records []Record
}

// NewStore wraps records in a Store. The slice is copied.
func NewStore(records []Record) *Store {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Store{records: cp}
}

// Records returns a copy of the records in dataset order.
func (s *Store) Records() []Record {
	cp := make([]Record, len(s.records))
	copy(cp, s.records)
	return cp
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Empty reports whether the store holds no records.
func (s *Store) Empty() bool { return len(s.records) == 0 }

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string { return s.path }

// Load reads the dataset at path. On failure it returns an empty, usable
// store together with an error wrapping one of ErrFileNotFound,
// ErrInvalidFormat or ErrInvalidSchema.
func Load(path string) (*Store, error) {
	empty := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return empty, errors.Wrapf(ErrFileNotFound, "could not find %s", path)
		}
		return empty, errors.Wrapf(errors.Mark(err, ErrDataLoad), "read %s", path)
	}

	records, err := parse(data)
	if err != nil {
		return empty, errors.Wrapf(err, "in %s", path)
	}

	return &Store{path: path, records: records}, nil
}

// LoadLenient is Load for callers that keep running on a degraded dataset:
// failures are reported through log and an empty store is returned.
func LoadLenient(path string, log *zap.SugaredLogger) *Store {
	store, err := Load(path)
	if err != nil {
		log.Warnw("Continuing without historical data",
			"path", path,
			"error", err.Error())
		return store
	}
	log.Debugw("Loaded historical data", "path", path, "records", store.Len())
	return store
}

// rawRecord defers field decoding so that strings and numbers are both
// accepted wherever the dataset is loose about types.
type rawRecord struct {
	Event       json.RawMessage `json:"event"`
	Year        json.RawMessage `json:"year"`
	Description json.RawMessage `json:"description"`
	KeyFigures  json.RawMessage `json:"key_figures"`
}

func parse(data []byte) ([]Record, error) {
	if !json.Valid(data) {
		return nil, ErrInvalidFormat
	}

	// A bare null would otherwise decode as an empty array.
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.Wrap(ErrInvalidSchema, "top-level value is not an array")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, errors.Wrap(ErrInvalidSchema, "top-level value is not an array")
	}

	records := make([]Record, 0, len(elements))
	for i, el := range elements {
		trimmed := bytes.TrimSpace(el)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, errors.Wrapf(ErrInvalidSchema, "element %d is not an object", i)
		}

		var raw rawRecord
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.Wrapf(ErrInvalidSchema, "element %d: %v", i, err)
		}

		records = append(records, Record{
			Event:       text(raw.Event),
			Year:        text(raw.Year),
			Description: text(raw.Description),
			KeyFigures:  figures(raw.KeyFigures),
		})
	}

	return records, nil
}

// text renders a JSON value as display text: strings verbatim, anything else
// by its literal. Absent and null values yield "".
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func figures(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		// A lone value is a single figure.
		if s := text(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, text(item))
	}
	return names
}
