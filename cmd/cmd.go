// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/hymns/internal/models"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id", UsageText: "hymn id (see 'hymns list')"}}
}

// listCommand lists hymns with the same filters as the browse and favorites tabs
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List hymns, optionally filtered by category and search text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"cat"},
				Usage:   "Category filter (" + strings.Join(models.FilterCategories(), ", ") + ")",
				Value:   models.CategoryAll,
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Match title, author, first line or category (case-insensitive)",
			},
			&cli.StringFlag{
				Name:  "tab",
				Usage: "browse, favorites or home (recently added)",
				Value: string(models.TabBrowse),
			},
			jsonFlag(),
		},
		Action: r.List,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the lyrics and details of a hymn",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			jsonFlag(),
			&cli.BoolFlag{
				Name:  "sheet",
				Usage: "Show the music sheet reference instead of the lyrics",
			},
		},
		Action: r.Show,
	}
}

// exportCommand writes a hymn to a shareable file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a hymn (or --all hymns) as a .hymn file, Markdown or plain text",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every hymn into one directory with a manifest",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers for --all (max 8)",
				Value: 4,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "hymn, md or text",
				Value:   "hymn",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (defaults to [export] dir)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Write to standard output instead of a file",
			},
		},
		Action: r.Export,
	}
}

func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Aliases:   []string{"cp"},
		Usage:     "Copy a hymn's text to the clipboard",
		Arguments: idArgument(),
		Action:    r.Copy,
	}
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Validate and preview a .hymn or .json file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Import,
	}
}

func sheetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "sheet",
		Usage:     "Open a hymn's music sheet in the browser",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the resolved URL instead of opening it",
			},
		},
		Action: r.Sheet,
	}
}

func categoriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "categories",
		Usage:  "List categories with hymn counts",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Categories,
	}
}

// configCommand handles configuration file management
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the default config.toml to the --config path",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive hymnal",
		Action:  r.TUI,
	}
}
