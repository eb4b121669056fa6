package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"bookshelf/internal/fileutil"
	"bookshelf/internal/logging"
)

// DefaultFileName is the catalog file used when no path is configured.
const DefaultFileName = "books_data.json"

// Store holds the catalog in memory and mirrors it to a JSON file.
// It is not safe for concurrent use.
type Store struct {
	path   string
	logger *slog.Logger
	books  []Book
}

// Open creates a store backed by path and loads any existing catalog from it.
// An empty path selects DefaultFileName in the working directory. Open never
// fails: an absent, unreadable or malformed file yields an empty catalog.
func Open(path string, logger *slog.Logger) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	s := &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
	s.load()
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of books in the catalog.
func (s *Store) Len() int {
	return len(s.books)
}

// Create appends book to the end of the catalog and persists the catalog.
// No field is validated and duplicates are allowed. If the write fails the
// book is not kept in memory either.
func (s *Store) Create(book Book) error {
	n := len(s.books)
	s.books = append(s.books, book)
	if err := s.persist(); err != nil {
		s.books = s.books[:n]
		return err
	}
	s.logger.Debug("book added",
		logging.String("title", book.Title),
		logging.Int("book_count", len(s.books)))
	return nil
}

// Delete removes every book whose title equals title, ignoring case, and
// persists the catalog even when nothing matched. It returns the number of
// books removed.
func (s *Store) Delete(title string) (int, error) {
	kept := make([]Book, 0, len(s.books))
	for _, book := range s.books {
		if !sameTitle(book.Title, title) {
			kept = append(kept, book)
		}
	}
	removed := len(s.books) - len(kept)

	previous := s.books
	s.books = kept
	if err := s.persist(); err != nil {
		s.books = previous
		return 0, err
	}
	s.logger.Debug("books removed",
		logging.String("title", title),
		logging.Int("removed", removed),
		logging.Int("book_count", len(s.books)))
	return removed, nil
}

// Search returns, in catalog order, the books whose title or author contains
// query ignoring case. An empty query returns every book.
func (s *Store) Search(query string) []Book {
	folded := fold(query)
	results := make([]Book, 0)
	for _, book := range s.books {
		if book.matchesFolded(folded) {
			results = append(results, book)
		}
	}
	return results
}

// List returns a copy of the catalog in insertion order.
func (s *Store) List() []Book {
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// Progress returns the catalog size and the percentage of books marked read.
// The percentage is 0 for an empty catalog.
func (s *Store) Progress() (int, float64) {
	total := len(s.books)
	if total == 0 {
		return 0, 0
	}
	read := 0
	for _, book := range s.books {
		if book.Read {
			read++
		}
	}
	return total, float64(read) / float64(total) * 100
}

func (s *Store) load() {
	s.books = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("catalog file not found, starting empty", logging.String("path", s.path))
			return
		}
		logging.WarnWithContext(s.logger, "failed to read catalog file", "catalog_read_failed",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check file permissions"),
			logging.String(logging.FieldImpact, "catalog starts empty; the next change overwrites the file"))
		return
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Debug("catalog file is empty", logging.String("path", s.path))
		return
	}

	books, skipped, err := decodeBooks(data)
	if err != nil {
		logging.WarnWithContext(s.logger, "failed to parse catalog file", "catalog_parse_failed",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or remove the file"),
			logging.String(logging.FieldImpact, "catalog starts empty; the next change overwrites the file"))
		return
	}
	for _, rec := range skipped {
		logging.WarnWithContext(s.logger, "skipping unreadable catalog record", "catalog_record_skipped",
			logging.String("path", s.path),
			logging.Int("record", rec.index),
			logging.Error(rec.err),
			logging.String(logging.FieldErrorHint, "fix the record by hand before changing the catalog"),
			logging.String(logging.FieldImpact, "the record is dropped from the file on the next change"))
	}

	s.books = books
	s.logger.Debug("loaded catalog",
		logging.String("path", s.path),
		logging.Int("book_count", len(s.books)))
}

func (s *Store) persist() error {
	data, err := encodeBooks(s.books)
	if err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

type skippedRecord struct {
	index int
	err   error
}

// decodeBooks parses the catalog file record by record. A file that is not a
// JSON array fails as a whole; a record that does not decode as a Book is
// reported in skipped and the rest are kept.
func decodeBooks(data []byte) ([]Book, []skippedRecord, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, err
	}
	books := make([]Book, 0, len(records))
	var skipped []skippedRecord
	for i, raw := range records {
		var book Book
		if err := json.Unmarshal(raw, &book); err != nil {
			skipped = append(skipped, skippedRecord{index: i, err: err})
			continue
		}
		books = append(books, book)
	}
	return books, skipped, nil
}

// encodeBooks renders the catalog file: four-space indent, no HTML or
// non-ASCII escaping, no trailing newline.
func encodeBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(books); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into the literal characters. Escaped
// backslashes are copied as pairs so a literal "\\u2028" in a title is left
// alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		switch rest := data[i:]; {
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
			continue
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
