// Package ui implements a read-only contact browser using bubbletea's Elm architecture.
//
// The browser has three views:
//  1. [ListView] : One page of contacts at a time, paged with n/p
//  2. [FilterView] : Enter a search term matched against names and phones
//  3. [DetailView] : Phones and birthday countdown of the selected contact
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Pages are produced by the book's paginator; going back a page walks a fresh paginator to the previous page.
//
// Keyboard navigation uses vim-style bindings (j/k, n/p, /, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
