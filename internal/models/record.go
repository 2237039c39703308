package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/abook/internal/shared"
)

// Record is one contact: an immutable name, an optional birthday and an ordered list of phones.
// Duplicate phones are not rejected here; callers check with [Record.FindPhone].
type Record struct {
	name     Name
	birthday *Birthday
	phones   []Phone
}

// NewRecord creates a record with no phones. An empty birthday means none.
func NewRecord(name, birthday string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	r := &Record{name: n}
	if birthday != "" {
		if err := r.SetBirthday(birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// SetBirthday replaces the birthday. On error the previous birthday is kept.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	phones := make([]Phone, len(r.phones))
	copy(phones, r.phones)
	return phones
}

// AddPhone appends raw to the phone list.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// EditPhone replaces the first phone equal to old with replacement, keeping its position.
func (r *Record) EditPhone(old, replacement string) error {
	p, err := NewPhone(replacement)
	if err != nil {
		return err
	}

	for i, phone := range r.phones {
		if phone.value == old {
			r.phones[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPhoneNotFound, old)
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, phone := range r.phones {
		if phone.value == value {
			return phone, true
		}
	}
	return Phone{}, false
}

// RemovePhone removes every phone equal to value. Removing an absent phone is a no-op.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, phone := range r.phones {
		if phone.value != value {
			kept = append(kept, phone)
		}
	}
	r.phones = kept
}

// DaysToBirthday returns the whole days from now until the next birthday.
//
// The birthday counts as upcoming only while it is strictly after today, so on the day itself the
// countdown rolls over to next year (365 or 366). A 29 February birthday falls on 1 March in common years.
func (r *Record) DaysToBirthday(now time.Time) (int, error) {
	if r.birthday == nil {
		return 0, fmt.Errorf("%w: %s", shared.ErrNoBirthday, r.name)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(today.Year(), r.birthday.month, r.birthday.day, 0, 0, 0, 0, time.UTC)
	if days := daysBetween(today, next); days > 0 {
		return days, nil
	}

	next = time.Date(today.Year()+1, r.birthday.month, r.birthday.day, 0, 0, 0, 0, time.UTC)
	return daysBetween(today, next), nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.value)
	sb.WriteString(", ")
	if r.birthday != nil {
		sb.WriteString("birthday: ")
		sb.WriteString(r.birthday.value)
		sb.WriteString(", ")
	}
	sb.WriteString("phones: ")

	numbers := make([]string, len(r.phones))
	for i, phone := range r.phones {
		numbers[i] = phone.value
	}
	sb.WriteString(strings.Join(numbers, "; "))
	return sb.String()
}
