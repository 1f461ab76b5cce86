package main

import (
	"fmt"
	"os"

	"github.com/erraggy/apiformat"
	"github.com/erraggy/apiformat/cmd/apiformat/commands"
	"github.com/erraggy/apiformat/internal/cliutil"
)

var commandNames = []string{"format", "case", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apiformat v%s\n", apiformat.Version())
		if len(os.Args) > 2 && (os.Args[2] == "-d" || os.Args[2] == "--details") {
			fmt.Println(apiformat.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "format":
		err = commands.HandleFormat(os.Args[2:])
	case "case":
		err = commands.HandleCase(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.NewPrinter(os.Stderr, 0, false).Errorf("%v", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func printUsage() {
	fmt.Println(`apiformat - AsyncAPI document formatter

Usage:
  apiformat <command> [options]

Commands:
  format      Sort, filter, re-case and rename an AsyncAPI document
  case        Convert values to a naming style
  mcp         Serve apiformat tools over the Model Context Protocol
  version     Show version information (--details for build metadata)
  help        Show this help message

Examples:
  apiformat format asyncapi.yaml
  apiformat format -o formatted.yaml -f filter.yaml asyncapi.yaml
  apiformat format -c apiformat.yaml --diff asyncapi.yaml
  apiformat case snake_case userId HTTPServer

Run 'apiformat <command> --help' for more information on a command.`)
}
