package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/apiformat/internal/cliutil"
	"github.com/erraggy/apiformat/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiformat mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the format and convert_case tools over the Model Context Protocol (stdio).\n\n")
		cliutil.Writef(fs.Output(), "Defaults are read from APIFORMAT_* environment variables, e.g.\n")
		cliutil.Writef(fs.Output(), "APIFORMAT_SORT_FILE, APIFORMAT_FILTER_FILE, APIFORMAT_CASING_FILE and APIFORMAT_DEFAULT_STYLE.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
