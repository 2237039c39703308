// package repositories provides persistence implementations for [models.Store].
package repositories

import (
	"fmt"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

// Open creates the store configured by cfg at path.
func Open(cfg *shared.Config, path string) (models.Store, error) {
	switch cfg.Storage.Backend {
	case shared.BackendSQLite:
		return NewSQLiteStore(path, cfg.Book.PageSize)
	case shared.BackendJSONL:
		return NewJSONLStore(path, cfg.Book.PageSize), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedBackend, cfg.Storage.Backend)
	}
}

// rebuildRecord validates persisted values by passing them through the model constructors.
func rebuildRecord(name, birthday string, phones []string) (*models.Record, error) {
	record, err := models.NewRecord(name, birthday)
	if err != nil {
		return nil, fmt.Errorf("%w: contact %q: %w", shared.ErrPersistence, name, err)
	}
	for _, phone := range phones {
		if err := record.AddPhone(phone); err != nil {
			return nil, fmt.Errorf("%w: contact %q: %w", shared.ErrPersistence, name, err)
		}
	}
	return record, nil
}

func birthdayString(r *models.Record) string {
	if b, ok := r.Birthday(); ok {
		return b.String()
	}
	return ""
}

func phoneStrings(r *models.Record) []string {
	phones := r.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return values
}
