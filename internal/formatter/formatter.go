// package formatter renders an address book to CSV, Markdown, plain text and YAML, and reads the CSV form back
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatYAML}

var csvHeaders = []string{"Name", "Birthday", "Phones"}

// phoneSeparator joins phones inside a single CSV cell.
const phoneSeparator = ";"

// contactYAML is the YAML shape of one record.
type contactYAML struct {
	Name     string   `yaml:"name"`
	Birthday string   `yaml:"birthday,omitempty"`
	Phones   []string `yaml:"phones"`
}

// ParseFormat returns the [Format] named by s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case FormatCSV, FormatMarkdown, FormatText, FormatYAML:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	case "text":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("%w: %q (expected one of %s)", shared.ErrUnsupportedFormat, s, strings.Join(names, ", "))
	}
}

// Export renders book in the given format.
func Export(book *models.AddressBook, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(book)
	case FormatMarkdown:
		return ExportToMarkdown(book)
	case FormatText:
		return ExportToText(book)
	case FormatYAML:
		return ExportToYAML(book)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// ExportToCSV converts a book to CSV with columns: Name, Birthday, Phones (phones joined by ";")
func ExportToCSV(book *models.AddressBook) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range book.Records() {
		row := []string{r.Name().String(), birthdayOf(r), strings.Join(phonesOf(r), phoneSeparator)}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a book to Markdown with one table per page
func ExportToMarkdown(book *models.AddressBook) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Contacts\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n", book.Len()))

	pages := book.Iterate()
	for n := 1; ; n++ {
		page, ok := pages.Next()
		if !ok {
			break
		}

		buf.WriteString(fmt.Sprintf("\n## Page %d\n\n", n))
		buf.WriteString("| Name | Birthday | Phones |\n")
		buf.WriteString("| --- | --- | --- |\n")
		for _, r := range page {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				escapeCell(r.Name().String()), escapeCell(birthdayOf(r)), strings.Join(phonesOf(r), ", ")))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText renders the book exactly as the shell prints it
func ExportToText(book *models.AddressBook) ([]byte, error) {
	var buf bytes.Buffer
	if err := book.PrintBook(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportToYAML converts a book to a YAML sequence of contacts
func ExportToYAML(book *models.AddressBook) ([]byte, error) {
	contacts := make([]contactYAML, 0, book.Len())
	for _, r := range book.Records() {
		contacts = append(contacts, contactYAML{Name: r.Name().String(), Birthday: birthdayOf(r), Phones: phonesOf(r)})
	}

	data, err := yaml.Marshal(contacts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// ImportFromCSV reads CSV produced by [ExportToCSV] into a new book.
//
// Every value goes through the model constructors, so the first invalid row aborts the import.
func ImportFromCSV(r io.Reader, pageSize int) (*models.AddressBook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeaders)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty CSV", shared.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range csvHeaders {
		if !strings.EqualFold(header[i], h) {
			return nil, fmt.Errorf("%w: expected column %q, got %q", shared.ErrUnsupportedFormat, h, header[i])
		}
	}

	book := models.NewAddressBook(pageSize)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		record, err := models.NewRecord(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if row[2] != "" {
			for _, phone := range strings.Split(row[2], phoneSeparator) {
				if err := record.AddPhone(strings.TrimSpace(phone)); err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
			}
		}
		book.AddRecord(record)
	}

	return book, nil
}

// WriteExport renders book and writes it to path, defaulting to contacts.<format>.
func WriteExport(book *models.AddressBook, format Format, path string) (string, error) {
	if path == "" {
		path = "contacts." + string(format)
	}

	data, err := Export(book, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func birthdayOf(r *models.Record) string {
	if b, ok := r.Birthday(); ok {
		return b.String()
	}
	return ""
}

func phonesOf(r *models.Record) []string {
	phones := r.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return values
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
