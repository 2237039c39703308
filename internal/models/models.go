// package models defines the data model for the address book
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// Store persists an [AddressBook] as a whole.
// Implementations live in the repositories package.
type Store interface {
	Save(book *AddressBook) error   // Save overwrites the persisted state with book
	Restore() (*AddressBook, error) // Restore reads the persisted state into a new book
	Close() error                   // Close releases any resources held by the store
}

// DateParser turns free text into a calendar date. It must not guess at partial or fuzzy input.
type DateParser func(string) (time.Time, error)

// DefaultDateParser accepts the usual numeric and written date layouts (e.g. "1990-05-17", "12.06.1840", "May 17 1990").
//
// Bare numbers other than an 8-digit YYYYMMDD are rejected rather than read as Unix timestamps, and every word in
// the input must be a month, weekday or time-zone marker. Dates are resolved in UTC.
var DefaultDateParser DateParser = parseDate

var dateWords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true, "jul": true,
	"aug": true, "sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true, "saturday": true, "sunday": true,
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
	"t": true, "z": true, "utc": true, "gmt": true, "am": true, "pm": true,
}

func parseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if !strings.ContainsFunc(v, func(r rune) bool { return !unicode.IsDigit(r) }) && len(v) != 8 {
		return time.Time{}, fmt.Errorf("%q is a number, not a date", v)
	}

	words := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool { return !unicode.IsLetter(r) })
	for _, word := range words {
		if !dateWords[word] {
			return time.Time{}, fmt.Errorf("unexpected %q in date %q", word, v)
		}
	}

	return dateparse.ParseIn(v, time.UTC)
}
