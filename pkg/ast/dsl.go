package ast

import "github.com/Shah-Siddharth/golox/pkg/token"

// Token helpers.

var operatorTypes = map[string]token.Type{
	"-":   token.Minus,
	"+":   token.Plus,
	"/":   token.Slash,
	"*":   token.Star,
	"!":   token.Bang,
	"!=":  token.BangEqual,
	"=":   token.Equal,
	"==":  token.EqualEqual,
	">":   token.Greater,
	">=":  token.GreaterEqual,
	"<":   token.Less,
	"<=":  token.LessEqual,
	"and": token.And,
	"or":  token.Or,
}

// Op builds an operator token from its lexeme.
func Op(lexeme string) token.Token {
	typ, ok := operatorTypes[lexeme]
	if !ok {
		panic("ast: unknown operator " + lexeme)
	}
	return token.New(typ, lexeme, nil, 1)
}

// Ident builds an identifier token on line 1.
func Ident(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func keyword(typ token.Type, lexeme string) token.Token {
	return token.New(typ, lexeme, nil, 1)
}

// Literal helpers.

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

// Expression helpers.

func Group(inner Expr) *Grouping {
	return NewGrouping(inner)
}

func Un(op string, right Expr) *Unary {
	return NewUnary(Op(op), right)
}

func Bin(op string, left, right Expr) *Binary {
	return NewBinary(left, Op(op), right)
}

func Logic(op string, left, right Expr) *Logical {
	return NewLogical(left, Op(op), right)
}

func ID(name string) *Variable {
	return NewVariable(Ident(name))
}

func AssignTo(name string, value Expr) *Assign {
	return NewAssign(Ident(name), value)
}

func CallExpr(callee Expr, args ...Expr) *Call {
	return NewCall(callee, keyword(token.RightParen, ")"), args)
}

func Prop(object Expr, name string) *Get {
	return NewGet(object, Ident(name))
}

func SetProp(object Expr, name string, value Expr) *Set {
	return NewSet(object, Ident(name), value)
}

func ThisExpr() *This {
	return NewThis(keyword(token.This, "this"))
}

func SuperExpr(method string) *Super {
	return NewSuper(keyword(token.Super, "super"), Ident(method))
}

// Statement helpers.

func ExprStmt(expr Expr) *Expression {
	return NewExpression(expr)
}

func PrintStmt(expr Expr) *Print {
	return NewPrint(expr)
}

func VarDecl(name string, initializer Expr) *Var {
	return NewVar(Ident(name), initializer)
}

func Blk(statements ...Stmt) *Block {
	return NewBlock(statements)
}

func IfStmt(condition Expr, thenBranch, elseBranch Stmt) *If {
	return NewIf(condition, thenBranch, elseBranch)
}

func WhileStmt(condition Expr, body Stmt) *While {
	return NewWhile(condition, body)
}

func Fn(name string, params []string, body ...Stmt) *Function {
	tokens := make([]token.Token, 0, len(params))
	for _, param := range params {
		tokens = append(tokens, Ident(param))
	}
	return NewFunction(Ident(name), tokens, body)
}

func Ret(value Expr) *Return {
	return NewReturn(keyword(token.Return, "return"), value)
}

func ClassDecl(name string, superclass string, methods ...*Function) *Class {
	var super *Variable
	if superclass != "" {
		super = ID(superclass)
	}
	return NewClass(Ident(name), super, methods)
}
