// Package driver wires the scanner, parser, resolver and interpreter into a
// single pipeline and maps its failures onto process exit codes.
package driver

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/interpreter"
	"github.com/Shah-Siddharth/golox/pkg/parser"
	"github.com/Shah-Siddharth/golox/pkg/resolver"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
	"github.com/Shah-Siddharth/golox/pkg/scanner"
	"github.com/Shah-Siddharth/golox/pkg/token"
)

// Exit codes follow the sysexits convention.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 64
	ExitStatic  = 65
	ExitRuntime = 70
)

// StaticError reports that a program was rejected before execution. Err
// joins every scan, parse and resolve error found.
type StaticError struct {
	Stage string
	Err   error
}

func (e *StaticError) Error() string { return e.Err.Error() }

func (e *StaticError) Unwrap() error { return e.Err }

// ExitCode maps a pipeline result onto a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var static *StaticError
	if errors.As(err, &static) {
		return ExitStatic
	}
	var rt *interpreter.RuntimeError
	if errors.As(err, &rt) {
		return ExitRuntime
	}
	return ExitFailure
}

// Options configures a Session.
type Options struct {
	Stdout       io.Writer
	Logger       *slog.Logger
	MaxCallDepth int
	Clock        func() time.Time
}

// OptionsFromConfig applies a loaded configuration.
func OptionsFromConfig(cfg *Config, stdout, logOut io.Writer) Options {
	return Options{
		Stdout:       stdout,
		Logger:       cfg.NewLogger(logOut),
		MaxCallDepth: cfg.MaxCallDepth,
	}
}

// Session keeps one interpreter alive across many sources, so globals
// defined by one call are visible to the next.
type Session struct {
	interp *interpreter.Interpreter
	logger *slog.Logger
}

// NewSession creates a session with a fresh global environment.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	interpOpts := []interpreter.Option{
		interpreter.WithOutput(stdout),
		interpreter.WithLogger(logger),
		interpreter.WithMaxCallDepth(opts.MaxCallDepth),
	}
	if opts.Clock != nil {
		interpOpts = append(interpOpts, interpreter.WithClock(opts.Clock))
	}
	return &Session{
		interp: interpreter.New(interpOpts...),
		logger: logger,
	}
}

// Run executes a whole program: scan, parse, resolve, interpret. Static
// errors from every front-end stage are reported together and nothing runs.
func Run(source string, opts Options) error {
	return NewSession(opts).Run(source)
}

// Run executes source against the session's globals.
func (s *Session) Run(source string) error {
	stmts, err := s.check(source)
	if err != nil {
		return err
	}
	return s.interpret(stmts)
}

// Eval runs one prompt entry. A bare expression is evaluated and its value
// returned with ok set; anything else runs as statements.
func (s *Session) Eval(source string) (value runtime.Value, ok bool, err error) {
	tokens, scanErr := s.scan(source)
	if scanErr == nil {
		if expr, perr := parser.ParseExpression(tokens); perr == nil {
			if err := s.resolve([]ast.Stmt{ast.NewExpression(expr)}); err != nil {
				return nil, false, err
			}
			start := time.Now()
			value, err = s.interp.Evaluate(expr)
			s.logStage("evaluate", start)
			if err != nil {
				return nil, false, err
			}
			return value, true, nil
		}
	}
	stmts, err := s.parse(tokens, scanErr)
	if err != nil {
		return nil, false, err
	}
	if err := s.resolve(stmts); err != nil {
		return nil, false, err
	}
	return nil, false, s.interpret(stmts)
}

// Globals lists the names bound in the session's global environment.
func (s *Session) Globals() []string {
	return s.interp.GlobalEnvironment().Keys()
}

// Parse scans and parses source without resolving or running it.
func Parse(source string) ([]ast.Stmt, error) {
	s := &Session{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	tokens, scanErr := s.scan(source)
	return s.parse(tokens, scanErr)
}

// check runs the static stages and returns the resolved program.
func (s *Session) check(source string) ([]ast.Stmt, error) {
	tokens, scanErr := s.scan(source)
	stmts, err := s.parse(tokens, scanErr)
	if err != nil {
		return nil, err
	}
	if err := s.resolve(stmts); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (s *Session) scan(source string) ([]token.Token, error) {
	start := time.Now()
	tokens, err := scanner.Scan(source)
	s.logStage("scan", start, slog.Int("tokens", len(tokens)))
	return tokens, err
}

// parse still runs after scan errors so both stages report in one pass.
func (s *Session) parse(tokens []token.Token, scanErr error) ([]ast.Stmt, error) {
	start := time.Now()
	stmts, parseErr := parser.Parse(tokens)
	s.logStage("parse", start, slog.Int("statements", len(stmts)))
	switch {
	case scanErr != nil && parseErr != nil:
		return nil, &StaticError{Stage: "parse", Err: errors.Join(scanErr, parseErr)}
	case scanErr != nil:
		return nil, &StaticError{Stage: "scan", Err: scanErr}
	case parseErr != nil:
		return nil, &StaticError{Stage: "parse", Err: parseErr}
	}
	return stmts, nil
}

func (s *Session) resolve(stmts []ast.Stmt) error {
	start := time.Now()
	locals, err := resolver.Resolve(stmts)
	s.logStage("resolve", start, slog.Int("locals", len(locals)))
	if err != nil {
		return &StaticError{Stage: "resolve", Err: err}
	}
	s.interp.Resolve(locals)
	return nil
}

func (s *Session) interpret(stmts []ast.Stmt) error {
	start := time.Now()
	err := s.interp.Interpret(stmts)
	s.logStage("interpret", start)
	return err
}

func (s *Session) logStage(stage string, start time.Time, attrs ...slog.Attr) {
	args := []any{slog.String("stage", stage), slog.Duration("elapsed", time.Since(start))}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	s.logger.Debug("stage complete", args...)
}
