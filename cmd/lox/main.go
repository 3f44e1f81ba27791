package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/driver"
)

const cliToolVersion = "lox 0.1.0-dev"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	args, logLevel, err := extractLogLevel(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		printUsage()
		return driver.ExitUsage
	}

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			printUsage()
			return driver.ExitOK
		case "--version", "-V", "version":
			fmt.Fprintln(stdout, cliToolVersion)
			return driver.ExitOK
		}
	}

	cfg, err := driver.ResolveConfig(".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return driver.ExitFailure
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if len(args) == 0 {
		return runPrompt(cfg)
	}

	switch args[0] {
	case "run":
		if len(args) != 2 {
			printUsage()
			return driver.ExitUsage
		}
		return runFile(cfg, args[1])
	case "ast":
		asJSON := len(args) == 3 && args[1] == "--json"
		if len(args) != 2 && !asJSON {
			printUsage()
			return driver.ExitUsage
		}
		return dumpAST(args[len(args)-1], asJSON)
	}

	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		printUsage()
		return driver.ExitUsage
	}
	return runFile(cfg, args[0])
}

// extractLogLevel pulls --log-level out of args, accepting both the
// "--log-level=debug" and "--log-level debug" forms.
func extractLogLevel(args []string) ([]string, string, error) {
	rest := make([]string, 0, len(args))
	level := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--log-level="):
			level = strings.TrimPrefix(arg, "--log-level=")
		case arg == "--log-level":
			if i+1 >= len(args) {
				return nil, "", errors.New("--log-level requires a value")
			}
			i++
			level = args[i]
		default:
			rest = append(rest, arg)
			continue
		}
		if _, err := driver.ParseLogLevel(level); err != nil {
			return nil, "", err
		}
	}
	return rest, level, nil
}

func runFile(cfg *driver.Config, path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", path, err)
		return driver.ExitFailure
	}
	err = driver.Run(string(source), driver.OptionsFromConfig(cfg, stdout, stderr))
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	return driver.ExitCode(err)
}

func dumpAST(path string, asJSON bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", path, err)
		return driver.ExitFailure
	}
	stmts, err := driver.Parse(string(source))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return driver.ExitCode(err)
	}
	if asJSON {
		if err := ast.EncodeJSON(stdout, stmts); err != nil {
			fmt.Fprintf(stderr, "failed to encode syntax tree: %v\n", err)
			return driver.ExitFailure
		}
		return driver.ExitOK
	}
	for _, stmt := range stmts {
		fmt.Fprintln(stdout, ast.Sprint(stmt))
	}
	return driver.ExitOK
}

func printUsage() {
	fmt.Fprintln(stderr, "Usage:")
	fmt.Fprintln(stderr, "  lox                   start an interactive prompt")
	fmt.Fprintln(stderr, "  lox <script>          run a script")
	fmt.Fprintln(stderr, "  lox run <script>      run a script")
	fmt.Fprintln(stderr, "  lox ast [--json] <script>  print the parsed syntax tree")
	fmt.Fprintln(stderr, "  lox --version")
	fmt.Fprintln(stderr, "Flags:")
	fmt.Fprintln(stderr, "  --log-level <debug|info|warn|error>")
}
