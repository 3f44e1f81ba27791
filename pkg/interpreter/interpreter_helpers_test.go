package interpreter

import (
	"bytes"
	"testing"

	"github.com/Shah-Siddharth/golox/pkg/parser"
	"github.com/Shah-Siddharth/golox/pkg/resolver"
	"github.com/Shah-Siddharth/golox/pkg/scanner"
)

// runSource scans, parses, resolves and interprets source, returning what
// the program printed along with any runtime fault.
func runSource(t *testing.T, source string, opts ...Option) (string, error) {
	t.Helper()
	tokens, err := scanner.Scan(source)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	locals, err := resolver.Resolve(stmts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	var out bytes.Buffer
	interp := New(append([]Option{WithOutput(&out)}, opts...)...)
	interp.Resolve(locals)
	runErr := interp.Interpret(stmts)
	return out.String(), runErr
}

func mustRun(t *testing.T, source string, opts ...Option) string {
	t.Helper()
	out, err := runSource(t, source, opts...)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

func expectRuntimeError(t *testing.T, source, message string, line int) string {
	t.Helper()
	out, err := runSource(t, source)
	if err == nil {
		t.Fatalf("expected runtime error %q, got none (output %q)", message, out)
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, rtErr.Message)
	}
	if line > 0 && rtErr.Token.Line != line {
		t.Fatalf("expected fault on line %d, got %d", line, rtErr.Token.Line)
	}
	return out
}
