package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/desertthunder/abook/internal/formatter"
	"github.com/desertthunder/abook/internal/shared"
	tu "github.com/desertthunder/abook/internal/testing"
)

type testEnv struct {
	dir    string
	config string
	store  string
}

func newTestEnv(t *testing.T, backend string) testEnv {
	t.Helper()

	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
		store:  filepath.Join(dir, "res", "book."+backend),
	}

	content := fmt.Sprintf("[storage]\nbackend = %q\npath = %q\n\n[book]\npage_size = 2\n\n[log]\nlevel = \"info\"\n", backend, env.store)
	tu.MustWriteFile(t, env.config, content)
	return env
}

// run executes the root command with a fresh runner, returning stdout and log output.
func (e testEnv) run(t *testing.T, input []string, args ...string) (string, string, error) {
	t.Helper()

	var output, logs bytes.Buffer
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC))

	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(&logs),
		Output: &output,
		Input:  tu.Input(input...),
		Clock:  mock,
	})

	argv := append([]string{"abook", "--config", e.config}, args...)
	err := runner.app().Run(context.Background(), argv)
	return output.String(), logs.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			mock := clock.NewMock()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				Input:      input,
				Clock:      mock,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.clock != mock {
				t.Error("expected clock to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
			if runner.clock == nil {
				t.Error("expected default clock to be set")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"repl", "show", "search", "export", "import", "setup", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if cmd.Name != want[i] {
				t.Errorf("expected command %s at index %d, got %s", want[i], i, cmd.Name)
			}
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("first run starts with an empty book", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)

		output, logs, err := env.run(t, nil, "show")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		tu.AssertContains(t, output, "No contacts found.")
		tu.AssertContains(t, logs, "no saved contacts")
	})

	t.Run("shell session persists contacts", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)

		output, logs, err := env.run(t, []string{
			"add John 1234567890 1990-05-17",
			"add John 5555555555",
			"add Jane 9876543210",
			"birthday John",
			"exit",
		})
		if err != nil {
			t.Fatalf("repl failed: %v", err)
		}
		tu.AssertContains(t, output, "7 days until John's birthday")
		tu.AssertContains(t, output, "Good bye!")
		tu.AssertContains(t, logs, "backend=jsonl")
		tu.AssertFileExists(t, env.store)

		output, _, err = env.run(t, nil, "show")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		tu.AssertContains(t, output, "page 1\nContact name: John, birthday: 1990-05-17, phones: 1234567890; 5555555555\nContact name: Jane, phones: 9876543210")
	})

	t.Run("show regroups pages", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendSQLite)
		if _, _, err := env.run(t, []string{"add A 1111111111", "add B 2222222222", "add C 3333333333"}); err != nil {
			t.Fatalf("repl failed: %v", err)
		}

		output, _, err := env.run(t, nil, "show")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		tu.AssertContains(t, output, "page 2\nContact name: C")

		output, _, err = env.run(t, nil, "show", "--page-size", "5")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		tu.AssertNotContains(t, output, "page 2")
	})

	t.Run("search", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		if _, _, err := env.run(t, []string{"add John 1234567890", "add Jane 5555555555"}); err != nil {
			t.Fatalf("repl failed: %v", err)
		}

		output, _, err := env.run(t, nil, "search", "555")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		tu.AssertContains(t, output, "Contact name: Jane")
		tu.AssertNotContains(t, output, "John")

		output, _, err = env.run(t, nil, "search", "zed")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		tu.AssertContains(t, output, "No matches for zed")

		if _, _, err := env.run(t, nil, "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export and import", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		if _, _, err := env.run(t, []string{"add John 1234567890 1990-05-17", "add Jane 5555555555"}); err != nil {
			t.Fatalf("repl failed: %v", err)
		}

		output, _, err := env.run(t, nil, "export", "--format", "csv")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		tu.AssertContains(t, output, "John,1990-05-17,1234567890")

		csvPath := filepath.Join(env.dir, "contacts.csv")
		output, _, err = env.run(t, nil, "export", "-f", "csv", "-o", csvPath)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		tu.AssertContains(t, output, "Exported 2 contacts to "+csvPath)

		other := newTestEnv(t, shared.BackendSQLite)
		output, _, err = other.run(t, nil, "import", csvPath)
		if err != nil {
			t.Fatalf("import failed: %v", err)
		}
		tu.AssertContains(t, output, "Imported 2 contacts")

		output, _, err = other.run(t, nil, "show")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		tu.AssertContains(t, output, "Contact name: John, birthday: 1990-05-17, phones: 1234567890")
	})

	t.Run("export formats", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		if _, _, err := env.run(t, []string{"add John 1234567890"}); err != nil {
			t.Fatalf("repl failed: %v", err)
		}

		for format, want := range map[formatter.Format]string{
			formatter.FormatMarkdown: "| John |",
			formatter.FormatText:     "Contact name: John",
			formatter.FormatYAML:     "name: John",
		} {
			output, _, err := env.run(t, nil, "export", "--format", string(format))
			if err != nil {
				t.Fatalf("export %s failed: %v", format, err)
			}
			tu.AssertContains(t, output, want)
		}

		if _, _, err := env.run(t, nil, "export", "--format", "pdf"); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("store flag overrides config", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		override := filepath.Join(env.dir, "override.jsonl")

		if _, _, err := env.run(t, []string{"add John 1234567890"}, "--store", override); err != nil {
			t.Fatalf("repl failed: %v", err)
		}
		tu.AssertFileExists(t, override)
		if _, err := os.Stat(env.store); !os.IsNotExist(err) {
			t.Errorf("expected configured store to stay untouched, got %v", err)
		}
	})

	t.Run("corrupt store aborts startup", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		if err := os.MkdirAll(filepath.Dir(env.store), 0755); err != nil {
			t.Fatalf("failed to create store dir: %v", err)
		}
		tu.MustWriteFile(t, env.store, "not json\n")

		if _, _, err := env.run(t, nil, "show"); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		tu.MustWriteFile(t, env.config, "[book]\npage_size = 0\n")

		if _, _, err := env.run(t, nil, "show"); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)

		if _, _, err := env.run(t, nil, "--log-level", "loud", "show"); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates config and store", func(t *testing.T) {
		dir := t.TempDir()
		env := testEnv{dir: dir, config: filepath.Join(dir, "config.toml"), store: filepath.Join(dir, "data", "book.db")}

		output, _, err := env.run(t, nil, "--store", env.store, "setup")
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, env.config)
		tu.AssertFileExists(t, env.store)
		tu.AssertContains(t, output, "✓ Config: "+env.config)
		tu.AssertContains(t, output, "0 contacts")

		config, err := shared.LoadConfig(env.config)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Storage.Backend != shared.BackendSQLite {
			t.Errorf("expected sqlite backend, got %s", config.Storage.Backend)
		}
	})

	t.Run("initialises a JSONL store", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)

		if _, _, err := env.run(t, nil, "setup"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		tu.AssertContains(t, tu.MustReadFile(t, env.store), `"format":"abook"`)
	})

	t.Run("keeps existing contacts", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		if _, _, err := env.run(t, []string{"add John 1234567890"}); err != nil {
			t.Fatalf("repl failed: %v", err)
		}

		output, _, err := env.run(t, nil, "setup")
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		tu.AssertContains(t, output, "1 contacts")
	})

	t.Run("reports output failure", func(t *testing.T) {
		env := newTestEnv(t, shared.BackendJSONL)
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: &tu.FWriter{},
		})

		err := runner.app().Run(context.Background(), []string{"abook", "--config", env.config, "setup"})
		if err == nil || !strings.Contains(err.Error(), "failed to write output") {
			t.Errorf("expected write error, got %v", err)
		}
	})
}
