package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/abook/internal/formatter"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/desertthunder/abook/internal/shell"
	"github.com/urfave/cli/v3"
)

// REPL restores the book and runs the interactive shell until an exit command or end of input.
func (r *Runner) REPL(ctx context.Context, cmd *cli.Command) error {
	book, err := r.loadBook()
	if err != nil {
		return err
	}

	sh := shell.New(shell.Opts{
		Book:   book,
		Store:  r.store,
		Output: r.output,
		Logger: shared.WithLogger(r.logger, "backend", r.config.Storage.Backend),
		Clock:  r.clock,
	})
	return sh.Run(ctx, r.input)
}

// Show prints every contact, optionally regrouped with --page-size.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	book, err := r.loadBook()
	if err != nil {
		return err
	}

	if size := cmd.Int("page-size"); size > 0 {
		book = repage(book, size)
	}

	if book.Len() == 0 {
		return r.writePlain("No contacts found.\n")
	}
	return book.PrintBook(r.output)
}

// Search prints the contacts matching the text argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: search text", shared.ErrMissingArgument)
	}

	book, err := r.loadBook()
	if err != nil {
		return err
	}

	results := book.SearchRecords(text)
	r.logger.Debug("search complete", "text", text, "matches", results.Len())
	if results.Len() == 0 {
		return r.writePlain("No matches for %s\n", text)
	}
	return results.PrintBook(r.output)
}

// Export renders the book with the chosen formatter to --output or stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	book, err := r.loadBook()
	if err != nil {
		return err
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		data, err := formatter.Export(book, format)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", format, err)
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(book, format, outputPath)
	if err != nil {
		return err
	}
	r.logger.Info("export written", "format", format, "path", path, "contacts", book.Len())
	return r.writePlain("Exported %d contacts to %s\n", book.Len(), path)
}

// Import merges the contacts of a CSV export into the book and saves it.
//
// Contacts with a name already in the book are replaced.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: CSV file path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	imported, err := formatter.ImportFromCSV(f, r.config.Book.PageSize)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	book, err := r.loadBook()
	if err != nil {
		return err
	}

	for _, record := range imported.Records() {
		if _, exists := book.Find(record.Name().String()); exists {
			r.logger.Warn("replacing existing contact", "name", record.Name())
		}
		book.AddRecord(record)
	}

	if err := r.store.Save(book); err != nil {
		return fmt.Errorf("failed to save contacts: %w", err)
	}

	r.logger.Info("import complete", "path", path, "imported", imported.Len(), "total", book.Len())
	return r.writePlain("Imported %d contacts from %s\n", imported.Len(), path)
}

func repage(book *models.AddressBook, size int) *models.AddressBook {
	regrouped := models.NewAddressBook(size)
	for _, record := range book.Records() {
		regrouped.AddRecord(record)
	}
	return regrouped
}
