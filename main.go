package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/rajan-personal/jsonstring-formatter/internal/config"
	"github.com/rajan-personal/jsonstring-formatter/internal/errors"
	"github.com/rajan-personal/jsonstring-formatter/internal/linemap"
	"github.com/rajan-personal/jsonstring-formatter/internal/pipeline"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent      int    `help:"Number of spaces per indentation level." default:"2"`
	Gutter      bool   `help:"Prefix each output line with the original line number it corresponds to." short:"g"`
	Reformat    bool   `help:"Pretty-print the input without resolving nested JSON strings." short:"R"`
	Config      string `help:"Path to config file. Searched for in parent directories when omitted." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonstring-formatter"),
		kong.Description("A tool that resolves JSON-encoded strings inside JSON documents"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonstring-formatter version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	level := log.WarnLevel
	if cfg.Dev.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	if err := run(&Context{Config: cfg, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonstring-formatter --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, when one exists, with CLI overrides
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// CLI flags win when moved away from their defaults
	if CLI.Indent != 2 {
		cfg.IndentWidth = CLI.Indent
	}
	if CLI.Gutter {
		cfg.Gutter = true
	}
	if CLI.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	raw, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	opts := pipeline.Options{
		IndentWidth:  ctx.Config.IndentWidth,
		ResolveDepth: ctx.Config.ResolveDepth,
		Logger:       ctx.Logger,
	}

	if CLI.Reformat {
		text, err := pipeline.Reformat(raw, opts)
		if err != nil {
			return err
		}
		return writeOutput(text)
	}

	result, err := pipeline.Run(raw, opts)
	if err != nil {
		return err
	}

	text := result.Text
	if ctx.Config.Gutter {
		text = renderGutter(result.Text, result.Lines)
	}
	return writeOutput(text)
}

// renderGutter prefixes each resolved line with the original line number it
// maps to, right-aligned, with a blank gutter where no correspondence was
// found.
func renderGutter(text string, lines linemap.LineMap) string {
	split := strings.Split(text, "\n")

	width := 1
	for _, original := range lines {
		if w := len(fmt.Sprintf("%d", original)); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, line := range split {
		if i > 0 {
			b.WriteByte('\n')
		}
		if original, ok := lines[i+1]; ok {
			fmt.Fprintf(&b, "%*d | %s", width, original, line)
		} else {
			fmt.Fprintf(&b, "%*s | %s", width, "", line)
		}
	}
	return b.String()
}

// readInput reads raw JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Resolved JSON written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonstring-formatter Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			jsonBuilder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}
