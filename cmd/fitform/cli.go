package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/outfit"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
	"github.com/fitform/fitform/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config, log zerolog.Logger) *cli.App {
	app := &cli.App{
		Name:    "fitform",
		Usage:   "Virtual try-on studio",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(catalog, client, cfg, log),
			posesCmd(),
			wardrobeCmd(catalog),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the studio HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8787, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(catalog, client, cfg, log, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv, log)
		},
	}
}

// posesCmd creates the poses command.
func posesCmd() *cli.Command {
	return &cli.Command{
		Name:  "poses",
		Usage: "List the pose vocabulary",
		Action: func(_ *cli.Context) error {
			type pose struct {
				Index int    `json:"index"`
				Label string `json:"label"`
			}
			poses := make([]pose, 0, outfit.PoseCount())
			for i, label := range outfit.PoseLabels {
				poses = append(poses, pose{Index: i, Label: label})
			}
			return outputJSON(map[string]any{"poses": poses})
		},
	}
}

// wardrobeCmd creates the wardrobe command.
func wardrobeCmd(catalog *wardrobe.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "wardrobe",
		Usage: "List selectable garments",
		Action: func(_ *cli.Context) error {
			items, err := catalog.List()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"items": items})
		},
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.StudioError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
