package shared

import "fmt"

var (
	// Validation errors
	ErrInvalidValue = fmt.Errorf("invalid value")

	// Lookup errors
	ErrNotFound       = fmt.Errorf("contact not found")
	ErrPhoneNotFound  = fmt.Errorf("phone not found")
	ErrNoBirthday     = fmt.Errorf("birthday not set")
	ErrDuplicatePhone = fmt.Errorf("phone already exists")
	ErrLastPhone      = fmt.Errorf("cannot remove the last phone")

	// Persistence errors
	ErrPersistence        = fmt.Errorf("persistence failed")
	ErrStoreNotFound      = fmt.Errorf("store not found")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported format")
	ErrUnsupportedBackend = fmt.Errorf("unsupported storage backend")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrUnknownCommand  = fmt.Errorf("unknown command")
)
