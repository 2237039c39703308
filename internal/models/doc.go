// Package models defines the in-memory contact store of the address book.
//
// The package contains three layers:
//
// 1. Fields: validated value types that can only be obtained through their constructors
//   - [Name] : non-empty contact name
//   - [Phone] : exactly ten decimal digits
//   - [Birthday] : free-text calendar date accepted by a [DateParser]
//
// 2. Entities:
//   - [Record] : one contact with a name, optional birthday and an ordered phone list
//   - [AddressBook] : insertion-ordered mapping of names to records with search and paging
//
// 3. Traversal and persistence contracts:
//   - [Paginator] : one-shot cursor producing fixed-size pages over a snapshot of the book
//   - [Store] : whole-book save and restore, implemented in the repositories package
//
// A field never holds an invalid value. Changing a field means constructing a replacement and substituting it in the owning record.
package models
