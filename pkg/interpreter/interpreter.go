package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/resolver"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
	"github.com/Shah-Siddharth/golox/pkg/token"
)

// DefaultMaxCallDepth bounds nested calls before a "Stack overflow." fault.
const DefaultMaxCallDepth = 2048

// RuntimeError is a fault raised while executing a program. It stops the
// whole run.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func runtimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Interpreter drives evaluation of resolved syntax trees.
type Interpreter struct {
	globals      *runtime.Environment
	locals       resolver.Locals
	out          io.Writer
	logger       *slog.Logger
	clock        func() time.Time
	maxCallDepth int
	depth        int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statements.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithLogger sets the structured logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth overrides DefaultMaxCallDepth. Non-positive values are ignored.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// WithClock replaces the time source behind the native clock function.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		if now != nil {
			i.clock = now
		}
	}
}

// New returns an interpreter whose global environment holds the native
// functions.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals:      runtime.NewEnvironment(nil),
		locals:       make(resolver.Locals),
		out:          os.Stdout,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:        time.Now,
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.defineNatives()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.globals
}

// Resolve merges resolver output. Entries accumulate across calls so a
// prompt session can resolve and run one line at a time; they are never
// pruned because closures from earlier entries may still run.
func (i *Interpreter) Resolve(locals resolver.Locals) {
	for expr, depth := range locals {
		i.locals[expr] = depth
	}
}

// Interpret executes statements in the global environment and stops at the
// first runtime fault.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if _, err := i.execute(stmt, i.globals); err != nil {
			i.logger.Debug("runtime fault", slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

// Evaluate computes a single expression in the global environment.
func (i *Interpreter) Evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.evaluate(expr, i.globals)
}

func (i *Interpreter) defineNatives() {
	i.globals.Define("clock", &runtime.NativeFunctionValue{
		Name:   "clock",
		Params: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			now := i.clock()
			return runtime.NumberValue{Val: float64(now.UnixNano()) / float64(time.Second)}, nil
		},
	})
}

func (i *Interpreter) debugEnabled() bool {
	return i.logger.Enabled(context.Background(), slog.LevelDebug)
}
