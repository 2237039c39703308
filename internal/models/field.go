package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/desertthunder/abook/internal/shared"
)

// FieldKind names the kind of a validated field.
type FieldKind string

const (
	KindName     FieldKind = "Name"
	KindPhone    FieldKind = "Phone"
	KindBirthday FieldKind = "Birthday"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidationError reports a value rejected by a field validator. It wraps [shared.ErrInvalidValue].
type ValidationError struct {
	Kind  FieldKind
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("value %s is not valid: %q", e.Kind, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return shared.ErrInvalidValue
}

// Name is a non-empty contact name.
type Name struct {
	value string
}

// NewName validates v and returns it as a [Name].
func NewName(v string) (Name, error) {
	if v == "" {
		return Name{}, &ValidationError{Kind: KindName, Value: v}
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

// Phone is a number of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates v and returns it as a [Phone].
func NewPhone(v string) (Phone, error) {
	if !phonePattern.MatchString(v) {
		return Phone{}, &ValidationError{Kind: KindPhone, Value: v}
	}
	return Phone{value: v}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a date string accepted by a [DateParser].
//
// The raw text is kept for display; only month and day take part in the countdown.
type Birthday struct {
	value string
	month time.Month
	day   int
}

// NewBirthday validates v with [DefaultDateParser].
func NewBirthday(v string) (Birthday, error) {
	return ParseBirthday(v, DefaultDateParser)
}

// ParseBirthday validates v with the given parser.
func ParseBirthday(v string, parse DateParser) (Birthday, error) {
	if v == "" {
		return Birthday{}, &ValidationError{Kind: KindBirthday, Value: v}
	}
	t, err := parse(v)
	if err != nil {
		return Birthday{}, &ValidationError{Kind: KindBirthday, Value: v}
	}
	return Birthday{value: v, month: t.Month(), day: t.Day()}, nil
}

func (b Birthday) String() string { return b.value }

// Month returns the birth month.
func (b Birthday) Month() time.Month { return b.month }

// Day returns the day of the birth month.
func (b Birthday) Day() int { return b.day }
