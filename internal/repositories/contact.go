package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

var _ models.Store = (*SQLiteStore)(nil)

// SQLiteStore implements [models.Store] on a SQLite database.
//
// Book order is kept in contacts.sequence and phone order in phones.position.
type SQLiteStore struct {
	db       *sql.DB
	pageSize int
}

// NewSQLiteStore opens (creating if needed) the database at path and applies migrations.
func NewSQLiteStore(path string, pageSize int) (*SQLiteStore, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrPersistence, err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", shared.ErrPersistence, err)
	}

	return &SQLiteStore{db: db, pageSize: pageSize}, nil
}

// Save replaces every stored contact with the records of book in one transaction.
func (s *SQLiteStore) Save(book *models.AddressBook) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", shared.ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("%w: failed to clear phones: %w", shared.ErrPersistence, err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("%w: failed to clear contacts: %w", shared.ErrPersistence, err)
	}

	for sequence, record := range book.Records() {
		if err := insertContact(tx, sequence, record); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrPersistence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", shared.ErrPersistence, err)
	}
	return nil
}

func insertContact(tx *sql.Tx, sequence int, record *models.Record) error {
	id := shared.GenerateID()

	var birthday sql.NullString
	if b := birthdayString(record); b != "" {
		birthday = sql.NullString{String: b, Valid: true}
	}

	query := `INSERT INTO contacts (id, sequence, name, birthday) VALUES (?, ?, ?, ?)`
	if _, err := tx.Exec(query, id, sequence, record.Name().String(), birthday); err != nil {
		return fmt.Errorf("failed to insert contact %s: %w", record.Name(), err)
	}

	for position, phone := range phoneStrings(record) {
		query := `INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)`
		if _, err := tx.Exec(query, id, position, phone); err != nil {
			return fmt.Errorf("failed to insert phone for %s: %w", record.Name(), err)
		}
	}
	return nil
}

// Restore reads every contact ordered by sequence into a new book.
func (s *SQLiteStore) Restore() (*models.AddressBook, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}

	book := models.NewAddressBook(s.pageSize)
	for _, r := range records {
		book.AddRecord(r)
	}
	return book, nil
}

// List retrieves all stored contacts ordered by sequence, with phones ordered by position.
func (s *SQLiteStore) List() ([]*models.Record, error) {
	return s.query("")
}

// Get retrieves a single stored contact by name.
func (s *SQLiteStore) Get(name string) (*models.Record, error) {
	records, err := s.query("WHERE c.name = ?", name)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, name)
	}
	return records[0], nil
}

func (s *SQLiteStore) query(where string, args ...any) ([]*models.Record, error) {
	query := `
		SELECT c.id, c.name, c.birthday, p.number
		FROM contacts c
		LEFT JOIN phones p ON p.contact_id = c.id
		` + where + `
		ORDER BY c.sequence ASC, p.position ASC
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query contacts: %w", shared.ErrPersistence, err)
	}
	defer rows.Close()

	type row struct {
		name     string
		birthday string
		phones   []string
	}

	var ordered []*row
	byID := make(map[string]*row)

	for rows.Next() {
		var (
			id       string
			name     string
			birthday sql.NullString
			number   sql.NullString
		)
		if err := rows.Scan(&id, &name, &birthday, &number); err != nil {
			return nil, fmt.Errorf("%w: failed to scan contact: %w", shared.ErrPersistence, err)
		}

		r, ok := byID[id]
		if !ok {
			r = &row{name: name, birthday: birthday.String}
			byID[id] = r
			ordered = append(ordered, r)
		}
		if number.Valid {
			r.phones = append(r.phones, number.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %w", shared.ErrPersistence, err)
	}

	records := make([]*models.Record, 0, len(ordered))
	for _, r := range ordered {
		record, err := rebuildRecord(r.name, r.birthday, r.phones)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
