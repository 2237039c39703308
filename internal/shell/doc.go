// package shell implements the interactive command loop of the address book.
//
// A [Shell] reads one command per line, dispatches it through a command table built once in [New],
// and writes a reply. Exit aliases (exit, close, good bye) and end of input persist the book through
// the configured [models.Store] before the loop stops.
package shell
