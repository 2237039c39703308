package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

const (
	prompt   = "Enter a command (hello, help, add, change, phone, delete, show all, search, birthday, exit): "
	farewell = "Good bye!"
	usage    = "Incorrect command, type help to see the list of commands"
)

// Shell owns the address book for the duration of an interactive session.
type Shell struct {
	book     *models.AddressBook
	store    models.Store
	output   io.Writer
	logger   *log.Logger
	clock    clock.Clock
	commands map[string]*command
	names    []string
}

// Opts contains the dependencies of a [Shell].
type Opts struct {
	Book   *models.AddressBook
	Store  models.Store
	Output io.Writer
	Logger *log.Logger
	Clock  clock.Clock
}

// New creates a [Shell] and builds its command table.
func New(opts Opts) *Shell {
	if opts.Book == nil {
		opts.Book = models.NewAddressBook(models.DefaultPageSize)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	s := &Shell{
		book:   opts.Book,
		store:  opts.Store,
		output: opts.Output,
		logger: opts.Logger,
		clock:  opts.Clock,
	}
	s.register()
	return s
}

// Book returns the book the shell operates on.
func (s *Shell) Book() *models.AddressBook { return s.book }

// Run reads commands from in until an exit command succeeds, input ends or ctx is cancelled.
//
// A cancelled context stops the loop without saving.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("session cancelled, contacts not saved", "err", err)
			return err
		}

		s.write(prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			s.write("\n")
			return s.quit()
		}

		if done := s.Execute(scanner.Text()); done {
			return nil
		}
	}
}

// Execute runs a single command line and reports whether the session is over.
func (s *Shell) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := s.lookup(fields)
	if cmd == nil {
		err := fmt.Errorf("%w: %s", shared.ErrUnknownCommand, fields[0])
		s.logger.Debug("command failed", "input", line, "err", err)
		s.writeln(formatError(err))
		return false
	}

	if cmd.exit {
		if err := s.quit(); err != nil {
			s.writeln(formatError(err))
			return false
		}
		return true
	}

	reply, err := cmd.run(args)
	if err != nil {
		s.logger.Debug("command failed", "command", cmd.name, "err", err)
		s.writeln(formatError(err))
		return false
	}
	if reply != "" {
		s.writeln(reply)
	}
	return false
}

// lookup resolves two-word commands ("show all", "good bye") before single words.
func (s *Shell) lookup(fields []string) (*command, []string) {
	if len(fields) > 1 {
		key := strings.ToLower(fields[0] + " " + fields[1])
		if cmd, ok := s.commands[key]; ok {
			return cmd, fields[2:]
		}
	}
	if cmd, ok := s.commands[strings.ToLower(fields[0])]; ok {
		return cmd, fields[1:]
	}
	return nil, nil
}

func (s *Shell) quit() error {
	if s.store != nil {
		if err := s.store.Save(s.book); err != nil {
			s.logger.Error("failed to save contacts", "err", err)
			return fmt.Errorf("failed to save contacts: %w", err)
		}
		s.logger.Info("contacts saved", "count", s.book.Len())
	}
	s.writeln(farewell)
	return nil
}

func (s *Shell) write(text string) {
	if _, err := io.WriteString(s.output, text); err != nil {
		s.logger.Error("failed to write output", "err", err)
	}
}

func (s *Shell) writeln(text string) {
	s.write(text + "\n")
}

// formatError turns a handler error into the message shown to the user.
func formatError(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %q", strings.ToLower(string(verr.Kind)), verr.Value)
	case errors.Is(err, shared.ErrUnknownCommand):
		return usage
	case errors.Is(err, shared.ErrMissingArgument):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}
