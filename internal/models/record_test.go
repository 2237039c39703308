package models

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/abook/internal/shared"
)

func phoneValues(r *Record) []string {
	var values []string
	for _, p := range r.Phones() {
		values = append(values, p.String())
	}
	return values
}

func mustRecord(t *testing.T, name, birthday string, phones ...string) *Record {
	t.Helper()
	r, err := NewRecord(name, birthday)
	if err != nil {
		t.Fatalf("failed to create record %s: %v", name, err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("failed to add phone %s: %v", p, err)
		}
	}
	return r
}

func TestRecord(t *testing.T) {
	t.Run("NewRecord", func(t *testing.T) {
		r, err := NewRecord("John", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Name().String() != "John" {
			t.Errorf("expected name John, got %s", r.Name())
		}
		if _, ok := r.Birthday(); ok {
			t.Error("expected no birthday")
		}
		if len(r.Phones()) != 0 {
			t.Errorf("expected no phones, got %v", r.Phones())
		}
	})

	t.Run("NewRecord invalid input", func(t *testing.T) {
		if _, err := NewRecord("", ""); !errors.Is(err, shared.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for empty name, got %v", err)
		}
		if _, err := NewRecord("John", "someday"); !errors.Is(err, shared.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for bad birthday, got %v", err)
		}
	})

	t.Run("AddPhone keeps order and duplicates", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890", "5555555555", "1234567890")
		want := []string{"1234567890", "5555555555", "1234567890"}
		if got := phoneValues(r); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}

		if err := r.AddPhone("12345"); !errors.Is(err, shared.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
		if len(r.Phones()) != 3 {
			t.Error("invalid phone should not be stored")
		}
	})

	t.Run("EditPhone replaces in place", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890", "5555555555", "9876543210")
		if err := r.EditPhone("5555555555", "1112223333"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"1234567890", "1112223333", "9876543210"}
		if got := phoneValues(r); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("EditPhone missing old phone", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890")
		err := r.EditPhone("0000000000", "1112223333")
		if !errors.Is(err, shared.ErrPhoneNotFound) {
			t.Fatalf("expected ErrPhoneNotFound, got %v", err)
		}
		if got := phoneValues(r); !slices.Equal(got, []string{"1234567890"}) {
			t.Errorf("phones should be unchanged, got %v", got)
		}
	})

	t.Run("EditPhone invalid replacement", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890")
		if err := r.EditPhone("1234567890", "abc"); !errors.Is(err, shared.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
		if got := phoneValues(r); !slices.Equal(got, []string{"1234567890"}) {
			t.Errorf("phones should be unchanged, got %v", got)
		}
	})

	t.Run("FindPhone", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890")
		if p, ok := r.FindPhone("1234567890"); !ok || p.String() != "1234567890" {
			t.Errorf("expected to find phone, got %v %v", p, ok)
		}
		if _, ok := r.FindPhone("123456789"); ok {
			t.Error("expected no match for a prefix")
		}
	})

	t.Run("RemovePhone removes every match and is idempotent", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890", "5555555555", "1234567890")
		r.RemovePhone("1234567890")
		once := phoneValues(r)
		if !slices.Equal(once, []string{"5555555555"}) {
			t.Fatalf("expected only 5555555555 to remain, got %v", once)
		}

		r.RemovePhone("1234567890")
		if twice := phoneValues(r); !slices.Equal(once, twice) {
			t.Errorf("second removal changed phones: %v -> %v", once, twice)
		}
	})

	t.Run("Phones returns a copy", func(t *testing.T) {
		r := mustRecord(t, "John", "", "1234567890")
		phones := r.Phones()
		phones[0], _ = NewPhone("0000000000")
		if got := phoneValues(r); got[0] != "1234567890" {
			t.Errorf("record should not change through the returned slice, got %v", got)
		}
	})

	t.Run("SetBirthday keeps previous on error", func(t *testing.T) {
		r := mustRecord(t, "John", "1990-05-17")
		if err := r.SetBirthday("garbage"); err == nil {
			t.Fatal("expected error")
		}
		b, ok := r.Birthday()
		if !ok || b.String() != "1990-05-17" {
			t.Errorf("expected previous birthday, got %v %v", b, ok)
		}
	})

	t.Run("String", func(t *testing.T) {
		tc := []struct {
			name   string
			record *Record
			want   string
		}{
			{
				name:   "with birthday",
				record: mustRecord(t, "John", "1990-05-17", "1234567890", "5555555555"),
				want:   "Contact name: John, birthday: 1990-05-17, phones: 1234567890; 5555555555",
			},
			{
				name:   "without birthday",
				record: mustRecord(t, "Jane", "", "9876543210"),
				want:   "Contact name: Jane, phones: 9876543210",
			},
			{
				name:   "without phones",
				record: mustRecord(t, "Solo", ""),
				want:   "Contact name: Solo, phones: ",
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.record.String(); got != tt.want {
					t.Errorf("expected %q, got %q", tt.want, got)
				}
			})
		}
	})
}

func TestDaysToBirthday(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	}

	tc := []struct {
		name     string
		birthday string
		now      time.Time
		want     int
	}{
		{name: "tomorrow", birthday: "1990-05-17", now: day(2026, time.May, 16), want: 1},
		{name: "later this year", birthday: "1990-12-25", now: day(2026, time.December, 1), want: 24},
		{name: "passed this year", birthday: "1990-05-17", now: day(2026, time.May, 18), want: 364},
		{name: "today rolls over to next year", birthday: "1990-05-17", now: day(2026, time.May, 17), want: 365},
		{name: "today before a leap year", birthday: "1990-03-01", now: day(2027, time.March, 1), want: 366},
		{name: "leap day in a common year", birthday: "2000-02-29", now: day(2026, time.February, 28), want: 1},
		{name: "year of birth is ignored", birthday: "1840-01-02", now: day(2026, time.January, 1), want: 1},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRecord(t, "John", tt.birthday)
			got, err := r.DaysToBirthday(tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}

	t.Run("no birthday", func(t *testing.T) {
		r := mustRecord(t, "Jane", "")
		if _, err := r.DaysToBirthday(time.Now()); !errors.Is(err, shared.ErrNoBirthday) {
			t.Errorf("expected ErrNoBirthday, got %v", err)
		}
	})
}
