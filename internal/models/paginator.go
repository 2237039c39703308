package models

// Paginator produces fixed-size pages over a snapshot of records.
//
// It starts active with the cursor on the first page and becomes exhausted the first time [Paginator.Next]
// runs past the end. An exhausted paginator stays exhausted; iterate again with a new one.
type Paginator struct {
	pageSize  int
	records   []*Record
	cursor    int
	exhausted bool
}

// NewPaginator creates an active paginator. A non-positive pageSize selects [DefaultPageSize].
func NewPaginator(pageSize int, records []*Record) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{pageSize: pageSize, records: records}
}

// Next returns the next page, or false once the records are exhausted.
func (p *Paginator) Next() ([]*Record, bool) {
	if p.exhausted {
		return nil, false
	}

	start := p.cursor * p.pageSize
	if start >= len(p.records) {
		p.exhausted = true
		return nil, false
	}
	end := min(start+p.pageSize, len(p.records))

	p.cursor++
	return p.records[start:end], true
}

// Done reports whether the paginator is exhausted.
func (p *Paginator) Done() bool { return p.exhausted }

// Page returns the number of pages handed out so far.
func (p *Paginator) Page() int { return p.cursor }
