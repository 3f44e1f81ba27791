package interpreter

import (
	"fmt"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/runtime"
)

func (i *Interpreter) evaluateGet(expr *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(expr.Name, "Only instances have properties.")
	}
	value, ok := instance.Get(expr.Name.Lexeme)
	if !ok {
		return nil, runtimeErrorf(expr.Name, "Undefined property '%s'.", expr.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateSet(expr *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(expr.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name.Lexeme, value)
	return value, nil
}

// evaluateSuper looks the method up from the superclass but binds it to the
// current `this`, which lives one frame inside the `super` frame.
func (i *Interpreter) evaluateSuper(expr *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok {
		panic(fmt.Sprintf("interpreter: unresolved 'super' at line %d", expr.Keyword.Line))
	}
	superclass, ok := env.GetAt(distance, "super").(*runtime.ClassValue)
	if !ok {
		panic("interpreter: 'super' is not bound to a class")
	}
	instance, ok := env.GetAt(distance-1, "this").(*runtime.InstanceValue)
	if !ok {
		panic("interpreter: 'this' is not bound to an instance")
	}
	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, runtimeErrorf(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
