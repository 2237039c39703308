package models

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// DefaultPageSize is the number of records per page when none is configured.
const DefaultPageSize = 10

// AddressBook maps contact names to records, keeping insertion order.
//
// Re-adding a record under an existing name replaces it in place.
type AddressBook struct {
	pageSize int
	order    []string
	records  map[string]*Record
}

// NewAddressBook creates an empty book. A non-positive pageSize selects [DefaultPageSize].
func NewAddressBook(pageSize int) *AddressBook {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &AddressBook{pageSize: pageSize, records: make(map[string]*Record)}
}

// PageSize returns the number of records per page.
func (b *AddressBook) PageSize() int { return b.pageSize }

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// AddRecord inserts r keyed by its name. A nil record or one without a name is ignored.
func (b *AddressBook) AddRecord(r *Record) {
	if r == nil || r.name.value == "" {
		return
	}
	key := r.name.value
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Deleting an absent name is a no-op.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	records := make([]*Record, len(b.order))
	for i, name := range b.order {
		records[i] = b.records[name]
	}
	return records
}

// SearchRecords returns a new book holding every record whose name contains text (ignoring case)
// or that has a phone containing text. The records are shared with b.
func (b *AddressBook) SearchRecords(text string) *AddressBook {
	results := NewAddressBook(b.pageSize)
	needle := strings.ToLower(text)

	for _, r := range b.Records() {
		if strings.Contains(strings.ToLower(r.name.value), needle) {
			results.AddRecord(r)
			continue
		}
		for _, phone := range r.phones {
			if strings.Contains(phone.value, text) {
				results.AddRecord(r)
				break
			}
		}
	}
	return results
}

// Iterate returns a paginator over a snapshot of the current records.
func (b *AddressBook) Iterate() *Paginator {
	return NewPaginator(b.pageSize, b.Records())
}

// PrintBook writes every page to w, each preceded by a "page N" header.
func (b *AddressBook) PrintBook(w io.Writer) error {
	pages := b.Iterate()
	for n := 1; ; n++ {
		page, ok := pages.Next()
		if !ok {
			return nil
		}
		if _, err := fmt.Fprintf(w, "page %d\n", n); err != nil {
			return fmt.Errorf("failed to write page header: %w", err)
		}
		for _, r := range page {
			if _, err := fmt.Fprintln(w, r); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}
}
