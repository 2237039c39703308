package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/abook/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPageLoaded MsgKind = iota
	MsgFilterApplied
)

type pageData struct {
	number  int
	records []*models.Record
	ok      bool
	hasNext bool
}

type filterData struct {
	query   string
	results *models.AddressBook
}

// pageLoadedMsg is the constructor for [MsgPageLoaded]
func pageLoadedMsg(number int, records []*models.Record, ok, hasNext bool) Msg {
	return Msg{kind: MsgPageLoaded, data: pageData{number: number, records: records, ok: ok, hasNext: hasNext}}
}

// filterAppliedMsg is the constructor for [MsgFilterApplied]
func filterAppliedMsg(query string, results *models.AddressBook) Msg {
	return Msg{kind: MsgFilterApplied, data: filterData{query: query, results: results}}
}
