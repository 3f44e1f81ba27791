// Package resolver performs static scope analysis. It records, for every
// local variable reference, how many frames separate the use from its
// declaration, and rejects programs that break contextual rules.
package resolver

import (
	"fmt"
	"strings"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/token"
)

// Locals maps expression nodes (by identity) to their binding distance.
// References absent from the map are globals.
type Locals map[ast.Expr]int

// Error is a static semantic error anchored at a token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// ErrorList aggregates every static error found in one program.
type ErrorList []*Error

func (l ErrorList) Error() string {
	parts := make([]string, 0, len(l))
	for _, err := range l {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

type functionType int

const (
	functionNone functionType = iota
	functionPlain
	functionMethod
	functionInitializer
)

type classType int

const (
	classNone classType = iota
	classPlain
	classSubclass
)

// scope maps a name to whether its initializer has finished.
type scope map[string]bool

// Resolver walks a program once, maintaining a stack of block scopes.
type Resolver struct {
	scopes          []scope
	locals          Locals
	errs            ErrorList
	currentFunction functionType
	currentClass    classType
}

// New returns a resolver with an empty scope stack.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve analyses statements and returns the distance map. Static errors are
// returned together as an ErrorList; the map is still populated for the
// parts that resolved.
func Resolve(statements []ast.Stmt) (Locals, error) {
	r := New()
	r.resolveStatements(statements)
	if len(r.errs) > 0 {
		return r.locals, r.errs
	}
	return r.locals, nil
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(node ast.Stmt) {
	switch n := node.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(n.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, functionPlain)
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpression(n.Expression)
	case *ast.Print:
		r.resolveExpression(n.Expression)
	case *ast.If:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.ThenBranch)
		if n.ElseBranch != nil {
			r.resolveStatement(n.ElseBranch)
		}
	case *ast.While:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Body)
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.error(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.error(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(n.Value)
		}
	default:
		panic(fmt.Sprintf("resolver: unsupported statement type %T", node))
	}
}

func (r *Resolver) resolveClass(class *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(class.Name)
	r.define(class.Name)

	if class.Superclass != nil {
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.error(class.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(class.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, method := range class.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpression(node ast.Expr) {
	switch n := node.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.peekScope()[n.Name.Lexeme]; declared && !defined {
				r.error(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	case *ast.Assign:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Binary:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Logical:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Unary:
		r.resolveExpression(n.Right)
	case *ast.Grouping:
		r.resolveExpression(n.Expression)
	case *ast.Literal:
	case *ast.Call:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(n.Object)
	case *ast.Set:
		r.resolveExpression(n.Value)
		r.resolveExpression(n.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.error(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.error(n.Keyword, "Can't use 'super' outside of a class.")
			return
		case classPlain:
			r.error(n.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	default:
		panic(fmt.Sprintf("resolver: unsupported expression type %T", node))
	}
}

// resolveLocal records the distance to the innermost scope declaring name.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.peekScope()
	if _, exists := current[name.Lexeme]; exists {
		r.error(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) error(tok token.Token, message string) {
	r.errs = append(r.errs, &Error{Token: tok, Message: message})
}
