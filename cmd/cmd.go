// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Path to the contacts store (overrides $ABOOK_STORE and the config file)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// replCommand starts the interactive shell
func replCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start the interactive contact shell (default)",
		Action:  r.REPL,
	}
}

// showCommand prints every contact page by page
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print all contacts page by page",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Contacts per page (defaults to book.page_size)",
			},
		},
		Action: r.Show,
	}
}

// searchCommand finds contacts by name or phone
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find contacts whose name or phone contains text",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Action: r.Search,
	}
}

// exportCommand renders the book in another format
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export contacts as CSV, Markdown, text or YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, md, txt, yaml)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (prints to stdout when empty)",
			},
		},
		Action: r.Export,
	}
}

// importCommand merges contacts from a CSV export
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import contacts from a CSV export",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Import,
	}
}

// setupCommand handles first-run initialisation
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file and initialise the contacts store",
		Action: r.Setup,
	}
}

// tuiCommand opens the terminal browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse contacts in an interactive terminal UI",
		Action: r.TUI,
	}
}
