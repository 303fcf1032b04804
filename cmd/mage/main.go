// cmd/mage/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mage/internal/commands"
)

const version = "0.1.0"

// commandAliases mirrors cmd/sentra's single-letter shortcuts, scoped to
// the three subcommands this repository actually implements.
var commandAliases = map[string]string{
	"r":   "run",
	"env": "environment",
	"ls":  "language-server",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main's body as a testable, exit-code-returning function — the
// entry point cmd/mage/cli_test.go's testscript harness drives via
// testscript.RunMain instead of spawning a built binary.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		if len(args) > 1 {
			showCommandHelp(args[1])
		} else {
			showUsage()
		}
	case "--version", "-v", "version":
		fmt.Println("mage", version)
	case "run":
		if err := runCommand(args[1:]); err != nil {
			// commands.Run already wrote a "mage: run <id>: ..." line to
			// stderr; nothing more to report here.
			return 1
		}
	case "environment":
		if err := commands.Environment(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case "language-server":
		if err := languageServerCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		showUsage()
		return 1
	}
	return 0
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	output := fs.String("output", "text", "output format: text or json")
	stage := fs.String("stage", "compile", "pipeline stage to run: flatten or compile")
	telemetryDSN := fs.String("telemetry-dsn", "", "telemetry sink DSN; empty disables telemetry")
	verbose := fs.Bool("verbose", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var path string
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	opts := commands.RunOptions{
		Path:         path,
		Output:       *output,
		Stage:        *stage,
		TelemetryDSN: *telemetryDSN,
		Verbose:      *verbose,
	}
	return commands.Run(context.Background(), opts, os.Stdin, os.Stdout, os.Stderr)
}

func languageServerCommand(args []string) error {
	fs := flag.NewFlagSet("language-server", flag.ContinueOnError)
	transport := fs.String("transport", "stdio", "transport: stdio or websocket")
	addr := fs.String("addr", ":7777", "listen address when --transport websocket")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := commands.LanguageServerOptions{
		Transport: *transport,
		Addr:      *addr,
	}
	return commands.LanguageServer(context.Background(), opts)
}

func showUsage() {
	fmt.Println(`mage - a minimal expression language compiler and runtime

Usage:
  mage <command> [arguments]

Commands:
  run [path] [flags]      parse, flatten, and (by default) execute a mage source file
  environment              reserved for future diagnostics
  language-server [flags]  start the mage language server
  help [command]           show help, optionally for one command
  version                  print the mage version

Run 'mage help <command>' for flags specific to a command.`)
}

func showCommandHelp(cmd string) {
	switch cmd {
	case "run":
		fmt.Println(`mage run [path] [flags]

Reads source from path, or from stdin line-by-line when path is omitted.

Flags:
  --output string         text or json (default "text")
  --stage string           flatten or compile (default "compile")
  --telemetry-dsn string   telemetry sink DSN; empty disables telemetry
  --verbose                log progress to stderr`)
	case "language-server":
		fmt.Println(`mage language-server [flags]

Flags:
  --transport string   stdio or websocket (default "stdio")
  --addr string        listen address when --transport websocket (default ":7777")`)
	default:
		showUsage()
	}
}
