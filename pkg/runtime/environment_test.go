package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentGetWalksEnclosingChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue{Val: 1})
	inner := NewEnvironment(NewEnvironment(global))

	val, err := inner.Get("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if num, ok := val.(NumberValue); !ok || num.Val != 1 {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestEnvironmentDefineShadowsWithoutTouchingOuter(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", StringValue{Val: "outer"})
	inner := NewEnvironment(global)
	inner.Define("x", StringValue{Val: "inner"})
	inner.Define("x", StringValue{Val: "redefined"})

	outer, _ := global.Get("x")
	if outer.(StringValue).Val != "outer" {
		t.Fatalf("outer binding changed: %#v", outer)
	}
	shadow, _ := inner.Get("x")
	if shadow.(StringValue).Val != "redefined" {
		t.Fatalf("expected redefinition to overwrite, got %#v", shadow)
	}
}

func TestEnvironmentAssignUpdatesDeclaringFrame(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("count", NumberValue{Val: 0})
	inner := NewEnvironment(global)

	if err := inner.Assign("count", NumberValue{Val: 5}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if inner.Has("count") {
		t.Fatalf("assign must not create a binding in the inner frame")
	}
	val, _ := global.Get("count")
	if val.(NumberValue).Val != 5 {
		t.Fatalf("expected 5, got %#v", val)
	}
}

func TestEnvironmentUndefinedNamesFault(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))
	_, err := env.Get("missing")
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "missing" {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if err := env.Assign("missing", NilValue{}); err == nil || err.Error() != "Undefined variable 'missing'." {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
}

func TestEnvironmentDistanceAccess(t *testing.T) {
	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)
	middle.Define("a", NumberValue{Val: 1})
	inner.Define("a", NumberValue{Val: 2})

	if v := inner.GetAt(1, "a"); v.(NumberValue).Val != 1 {
		t.Fatalf("expected middle binding, got %#v", v)
	}
	inner.AssignAt(1, "a", NumberValue{Val: 10})
	if v := inner.GetAt(0, "a"); v.(NumberValue).Val != 2 {
		t.Fatalf("inner binding should be untouched, got %#v", v)
	}
	if v, _ := middle.Get("a"); v.(NumberValue).Val != 10 {
		t.Fatalf("expected middle binding updated, got %#v", v)
	}
	if inner.Ancestor(2) != global {
		t.Fatalf("expected ancestor 2 to be the global frame")
	}
}

func TestEnvironmentGetAtPanicsOnContractViolation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for distance beyond chain")
		}
	}()
	NewEnvironment(nil).GetAt(3, "x")
}
