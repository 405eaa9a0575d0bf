package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/db"
	"github.com/fitform/fitform/internal/mcp"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "poses": true, "wardrobe": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___ _ _    ___
  / __(_) |_ / _|___ _ _ _ __
 |  _|| |  _|  _/ _ \ '_| '  \
 |_|  |_|\__|_| \___/_| |_|_|_|

  Virtual try-on studio

  Usage: fitform <command> [options]
         fitform --help

  MCP server mode requires piped input.`)
}

// newLogger builds the process logger: console output on a terminal,
// structured JSON otherwise.
func newLogger() zerolog.Logger {
	if isTerminal() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any setup
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, zerolog.Nop())
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if os.Getenv("FITFORM_ENV") != "production" {
		_ = godotenv.Load()
	}

	log := newLogger()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".fitform")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(os.Getenv("FITFORM_DB_DSN"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	catalog := wardrobe.NewCatalog(database)
	if err := catalog.Seed(wardrobe.DefaultItems()); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to seed wardrobe: %v\n", err)
		os.Exit(1)
	}

	client := newSynthClient(cfg, log)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(catalog, client, cfg, log)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'fitform --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn().Strs("tools", unknown).Msg("unknown disabled tool names ignored")
	}
	if err := mcp.Run(catalog, client, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newSynthClient builds the synthesis client from the environment. Without
// an API key the offline fake is used; every generated image is a
// placeholder reference.
func newSynthClient(cfg *config.Config, log zerolog.Logger) synth.Client {
	apiKey := os.Getenv("FITFORM_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		log.Warn().Msg("no API key set; running with the offline synthesis fake")
		return synth.NewFake()
	}

	client, err := synth.NewOpenAIClient(apiKey, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("synthesis client init failed; running with the offline fake")
		return synth.NewFake()
	}
	return client
}
