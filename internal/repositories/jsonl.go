package repositories

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// Header values of the JSON Lines format.
const (
	jsonlFormat  = "abook"
	jsonlVersion = 1
)

// maxLineSize bounds a single contact line read by Restore.
const maxLineSize = 16 << 20

var _ models.Store = (*JSONLStore)(nil)

// jsonlHeader is the first line of the file.
type jsonlHeader struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// contactJSON is one record line.
type contactJSON struct {
	Name     string   `json:"name"`
	Birthday string   `json:"birthday,omitempty"`
	Phones   []string `json:"phones"`
}

// JSONLStore implements [models.Store] on a JSON Lines file: a header line followed by one line per contact.
type JSONLStore struct {
	path     string
	pageSize int
}

// NewJSONLStore creates a store for the file at path. The file is not touched until Save or Restore.
func NewJSONLStore(path string, pageSize int) *JSONLStore {
	return &JSONLStore{path: path, pageSize: pageSize}
}

// Save writes book to the file through a temp file, fsync and rename.
func (s *JSONLStore) Save(book *models.AddressBook) error {
	header, err := json.Marshal(jsonlHeader{Format: jsonlFormat, Version: jsonlVersion})
	if err != nil {
		return fmt.Errorf("%w: failed to encode header: %w", shared.ErrPersistence, err)
	}

	lines := [][]byte{header}
	for _, r := range book.Records() {
		line, err := json.Marshal(contactJSON{
			Name:     r.Name().String(),
			Birthday: birthdayString(r),
			Phones:   phoneStrings(r),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to encode contact %s: %w", shared.ErrPersistence, r.Name(), err)
		}
		lines = append(lines, line)
	}

	if err := writeLines(s.path, lines); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrPersistence, err)
	}
	return nil
}

// Restore reads the file into a new book.
func (s *JSONLStore) Restore() (*models.AddressBook, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w: %s", shared.ErrPersistence, shared.ErrStoreNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", shared.ErrPersistence, s.path, err)
	}
	defer f.Close()

	book := models.NewAddressBook(s.pageSize)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	seenHeader := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if !seenHeader {
			var header jsonlHeader
			if err := json.Unmarshal(line, &header); err != nil || header.Format != jsonlFormat {
				return nil, fmt.Errorf("%w: %w: %s is not an address book file", shared.ErrPersistence, shared.ErrUnsupportedFormat, s.path)
			}
			if header.Version != jsonlVersion {
				return nil, fmt.Errorf("%w: %w: version %d", shared.ErrPersistence, shared.ErrUnsupportedFormat, header.Version)
			}
			seenHeader = true
			continue
		}

		var c contactJSON
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", shared.ErrPersistence, lineNo, err)
		}

		record, err := rebuildRecord(c.Name, c.Birthday, c.Phones)
		if err != nil {
			return nil, err
		}
		book.AddRecord(record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %w", shared.ErrPersistence, s.path, err)
	}
	if !seenHeader {
		return nil, fmt.Errorf("%w: %w: %s has no header", shared.ErrPersistence, shared.ErrUnsupportedFormat, s.path)
	}
	return book, nil
}

// Close is a no-op; the file is only open during Save and Restore.
func (s *JSONLStore) Close() error { return nil }

// writeLines writes each line followed by a newline using the temp-file, fsync, rename pattern.
func writeLines(path string, lines [][]byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".abook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
