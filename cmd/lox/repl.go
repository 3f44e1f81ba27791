package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/Shah-Siddharth/golox/pkg/driver"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
	"github.com/Shah-Siddharth/golox/pkg/scanner"
	"github.com/Shah-Siddharth/golox/pkg/token"
)

const continuationPrompt = "... "

// lineReader is the part of *liner.State the prompt loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runPrompt(cfg *driver.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(stderr, "warning: history disabled: %v\n", err)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	session := driver.NewSession(driver.OptionsFromConfig(cfg, stdout, stderr))
	promptLoop(ln, session, cfg.Prompt, stdout, stderr)
	return driver.ExitOK
}

// promptLoop reads entries until EOF or :quit. Errors are reported and the session
// carries on; a bare expression's value is echoed.
func promptLoop(ln lineReader, session *driver.Session, prompt string, out, errOut io.Writer) {
	for {
		entry, ok := readEntry(ln, prompt, continuationPrompt)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit":
				return
			case ":globals":
				fmt.Fprintln(out, strings.Join(session.Globals(), " "))
			default:
				fmt.Fprintln(errOut, "unknown command. Commands: :globals, :quit")
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		value, isExpr, err := session.Eval(entry)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if isExpr {
			fmt.Fprintln(out, runtime.Stringify(value))
		}
	}
}

// readEntry keeps prompting while braces or parentheses are left open. A
// Ctrl-C abort discards the partial entry.
func readEntry(ln lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openDelimiters(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openDelimiters counts unclosed '{' and '(' tokens. Scan errors such as an
// unterminated string inside an open block are ignored; the session reports
// them once the entry is complete.
func openDelimiters(source string) int {
	tokens, _ := scanner.Scan(source)
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LeftBrace, token.LeftParen:
			depth++
		case token.RightBrace, token.RightParen:
			depth--
		}
	}
	return depth
}
