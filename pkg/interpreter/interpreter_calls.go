package interpreter

import (
	"log/slog"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
)

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtimeErrorf(call.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(call.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if i.depth >= i.maxCallDepth {
		return nil, runtimeErrorf(call.Paren, "Stack overflow.")
	}
	i.depth++
	defer func() { i.depth-- }()

	switch c := fn.(type) {
	case *runtime.NativeFunctionValue:
		result, err := c.Impl(&runtime.NativeCallContext{Env: env}, args)
		if err != nil {
			return nil, runtimeErrorf(call.Paren, "%s", err.Error())
		}
		return result, nil
	case *runtime.FunctionValue:
		return i.callFunction(c, args)
	case *runtime.ClassValue:
		return i.instantiate(c, args)
	default:
		return nil, runtimeErrorf(call.Paren, "Can only call functions and classes.")
	}
}

// callFunction runs fn's body in a fresh frame enclosed by its closure, not
// by the caller's frame.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if i.debugEnabled() {
		i.logger.Debug("call", slog.String("function", fn.Name()), slog.Int("args", len(args)), slog.Int("depth", i.depth))
	}
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}
	result, err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if result.returning {
		return result.value, nil
	}
	return runtime.NilValue{}, nil
}

// instantiate builds an instance and runs the nearest init. The call always
// yields the instance.
func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if initializer := class.FindMethod("init"); initializer != nil {
		if _, err := i.callFunction(initializer.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
