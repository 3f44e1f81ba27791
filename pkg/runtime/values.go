package runtime

import (
	"fmt"

	"github.com/Shah-Siddharth/golox/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindNativeFunction
	KindFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNativeFunction:
		return "native_function"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Callable is implemented by native functions, user functions and classes.
type Callable interface {
	Value
	Arity() int
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// NativeCallContext is handed to native implementations.
type NativeCallContext struct {
	Env *Environment
}

type NativeFunc func(ctx *NativeCallContext, args []Value) (Value, error)

type NativeFunctionValue struct {
	Name   string
	Params int
	Impl   NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }
func (v *NativeFunctionValue) Arity() int { return v.Params }

// FunctionValue is a user function paired with the frame it was declared in.
// Bound methods share the declaration and get a fresh closure holding `this`.
type FunctionValue struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.Function, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (v *FunctionValue) Kind() Kind { return KindFunction }
func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Name returns the declared function name.
func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

// Bind returns a copy of the method whose closure defines `this` as instance.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return NewFunction(v.Declaration, env, v.IsInitializer)
}

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{Name: name, Superclass: superclass, Methods: methods}
}

func (v *ClassValue) Kind() Kind { return KindClass }

// Arity is the arity of the class's initializer, or zero without one.
func (v *ClassValue) Arity() int {
	if initializer := v.FindMethod("init"); initializer != nil {
		return initializer.Arity()
	}
	return 0
}

// FindMethod searches the class's own table, then each ancestor nearest first.
func (v *ClassValue) FindMethod(name string) *FunctionValue {
	for class := v; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method
		}
	}
	return nil
}

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get looks up own fields first, then methods along the class chain. Methods
// come back bound to the instance.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if field, ok := v.Fields[name]; ok {
		return field, true
	}
	if method := v.Class.FindMethod(name); method != nil {
		return method.Bind(v), true
	}
	return nil, false
}

// Set creates or overwrites a field.
func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}
