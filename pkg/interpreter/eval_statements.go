package interpreter

import (
	"fmt"
	"log/slog"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
)

// outcome is how a statement finished: normally, or by a `return` carrying a
// value up to the nearest enclosing call.
type outcome struct {
	returning bool
	value     runtime.Value
}

var normal = outcome{}

func returning(value runtime.Value) outcome {
	return outcome{returning: true, value: value}
}

func (i *Interpreter) execute(node ast.Stmt, env *runtime.Environment) (outcome, error) {
	switch n := node.(type) {
	case *ast.Expression:
		_, err := i.evaluate(n.Expression, env)
		return normal, err
	case *ast.Print:
		value, err := i.evaluate(n.Expression, env)
		if err != nil {
			return normal, err
		}
		if _, err := fmt.Fprintln(i.out, runtime.Stringify(value)); err != nil {
			return normal, fmt.Errorf("print: %w", err)
		}
		return normal, nil
	case *ast.Var:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			v, err := i.evaluate(n.Initializer, env)
			if err != nil {
				return normal, err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return normal, nil
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Function:
		env.Define(n.Name.Lexeme, runtime.NewFunction(n, env, false))
		return normal, nil
	case *ast.Return:
		var value runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			v, err := i.evaluate(n.Value, env)
			if err != nil {
				return normal, err
			}
			value = v
		}
		return returning(value), nil
	case *ast.Class:
		return normal, i.executeClass(n, env)
	default:
		panic(fmt.Sprintf("interpreter: unsupported statement type %T", node))
	}
}

// executeBlock runs statements in env, stopping early on a return.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *runtime.Environment) (outcome, error) {
	for _, stmt := range statements {
		result, err := i.execute(stmt, env)
		if err != nil || result.returning {
			return result, err
		}
	}
	return normal, nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) (outcome, error) {
	cond, err := i.evaluate(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if runtime.IsTruthy(cond) {
		return i.execute(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch, env)
	}
	return normal, nil
}

func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) (outcome, error) {
	for {
		cond, err := i.evaluate(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !runtime.IsTruthy(cond) {
			return normal, nil
		}
		result, err := i.execute(loop.Body, env)
		if err != nil || result.returning {
			return result, err
		}
	}
}

func (i *Interpreter) executeClass(stmt *ast.Class, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return runtimeErrorf(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(stmt.Name.Lexeme, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = runtime.NewFunction(method, methodEnv, method.Name.Lexeme == "init")
	}
	class := runtime.NewClass(stmt.Name.Lexeme, superclass, methods)

	if i.debugEnabled() {
		attrs := []any{slog.String("class", class.Name), slog.Int("methods", len(methods))}
		if superclass != nil {
			attrs = append(attrs, slog.String("superclass", superclass.Name))
		}
		i.logger.Debug("define class", attrs...)
	}

	if err := env.Assign(stmt.Name.Lexeme, class); err != nil {
		return runtimeErrorf(stmt.Name, "%s", err.Error())
	}
	return nil
}
