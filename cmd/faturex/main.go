// Command faturex extracts billing and order line records from email HTML
// tables, either as a one-shot CLI over local files or as an HTTP service.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rcardoso/faturex"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command line interface.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP extraction service."`
	Extract ExtractCmd `cmd:"" help:"Extract records from local HTML files."`
}

// Dependencies carries the wiring shared by all commands.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("faturex"),
		kong.Description("Extract billing and order line records from email HTML tables"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	return kctx.Run(deps)
}

// layoutByKind resolves a document kind flag to its canned layout.
func layoutByKind(kind string) (faturex.RowLayout, error) {
	switch kind {
	case "billing":
		return faturex.BillingLayout(), nil
	case "order":
		return faturex.OrderLayout(), nil
	default:
		return faturex.RowLayout{}, faturex.Errorf(faturex.EINVALID, "unknown layout %q", kind)
	}
}
