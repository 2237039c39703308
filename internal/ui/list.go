package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/abook/internal/models"
)

var (
	_ list.Item = contactItem{}
)

// contactItem wraps [models.Record] to implement [list.Item].
type contactItem struct {
	record *models.Record
}

func (i contactItem) FilterValue() string { return i.record.Name().String() }
func (i contactItem) Title() string       { return i.record.Name().String() }
func (i contactItem) Description() string {
	desc := strings.Join(phoneValues(i.record), "; ")
	if desc == "" {
		desc = "no phones"
	}
	if b, ok := i.record.Birthday(); ok {
		desc = fmt.Sprintf("%s • born %s", desc, b)
	}
	return desc
}

func phoneValues(r *models.Record) []string {
	phones := r.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return values
}
