package ast

import "github.com/Shah-Siddharth/golox/pkg/token"

type NodeType string

const (
	NodeLiteral  NodeType = "Literal"
	NodeGrouping NodeType = "Grouping"
	NodeUnary    NodeType = "Unary"
	NodeBinary   NodeType = "Binary"
	NodeLogical  NodeType = "Logical"
	NodeVariable NodeType = "Variable"
	NodeAssign   NodeType = "Assign"
	NodeCall     NodeType = "Call"
	NodeGet      NodeType = "Get"
	NodeSet      NodeType = "Set"
	NodeThis     NodeType = "This"
	NodeSuper    NodeType = "Super"

	NodeExpressionStmt NodeType = "ExpressionStatement"
	NodePrintStmt      NodeType = "PrintStatement"
	NodeVarStmt        NodeType = "VarStatement"
	NodeBlockStmt      NodeType = "BlockStatement"
	NodeIfStmt         NodeType = "IfStatement"
	NodeWhileStmt      NodeType = "WhileStatement"
	NodeFunctionStmt   NodeType = "FunctionStatement"
	NodeReturnStmt     NodeType = "ReturnStatement"
	NodeClassStmt      NodeType = "ClassStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expr is the closed set of expression nodes. Expression nodes are always
// handled through pointers so that each one has a stable identity.
type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds nil, a bool, a float64 or a string.
type Literal struct {
	nodeImpl
	exprMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	exprMarker

	Expression Expr `json:"expression"`
}

func NewGrouping(inner Expr) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: inner}
}

type Unary struct {
	nodeImpl
	exprMarker

	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewUnary(operator token.Token, right Expr) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewBinary(left Expr, operator token.Token, right Expr) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewLogical(left Expr, operator token.Token, right Expr) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

type Variable struct {
	nodeImpl
	exprMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	exprMarker

	Name  token.Token `json:"name"`
	Value Expr        `json:"value"`
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

// Call keeps the closing paren for error locations.
type Call struct {
	nodeImpl
	exprMarker

	Callee    Expr        `json:"callee"`
	Paren     token.Token `json:"paren"`
	Arguments []Expr      `json:"arguments"`
}

func NewCall(callee Expr, paren token.Token, args []Expr) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: args}
}

type Get struct {
	nodeImpl
	exprMarker

	Object Expr        `json:"object"`
	Name   token.Token `json:"name"`
}

func NewGet(object Expr, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

type Set struct {
	nodeImpl
	exprMarker

	Object Expr        `json:"object"`
	Name   token.Token `json:"name"`
	Value  Expr        `json:"value"`
}

func NewSet(object Expr, name token.Token, value Expr) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

type This struct {
	nodeImpl
	exprMarker

	Keyword token.Token `json:"keyword"`
}

func NewThis(keyword token.Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis), Keyword: keyword}
}

type Super struct {
	nodeImpl
	exprMarker

	Keyword token.Token `json:"keyword"`
	Method  token.Token `json:"method"`
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{nodeImpl: newNodeImpl(NodeSuper), Keyword: keyword, Method: method}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type Expression struct {
	nodeImpl
	stmtMarker

	Expression Expr `json:"expression"`
}

func NewExpression(expr Expr) *Expression {
	return &Expression{nodeImpl: newNodeImpl(NodeExpressionStmt), Expression: expr}
}

type Print struct {
	nodeImpl
	stmtMarker

	Expression Expr `json:"expression"`
}

func NewPrint(expr Expr) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrintStmt), Expression: expr}
}

// Var declares a variable; Initializer is nil when absent.
type Var struct {
	nodeImpl
	stmtMarker

	Name        token.Token `json:"name"`
	Initializer Expr        `json:"initializer,omitempty"`
}

func NewVar(name token.Token, initializer Expr) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVarStmt), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	stmtMarker

	Statements []Stmt `json:"statements"`
}

func NewBlock(statements []Stmt) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlockStmt), Statements: statements}
}

type If struct {
	nodeImpl
	stmtMarker

	Condition  Expr `json:"condition"`
	ThenBranch Stmt `json:"thenBranch"`
	ElseBranch Stmt `json:"elseBranch,omitempty"`
}

func NewIf(condition Expr, thenBranch, elseBranch Stmt) *If {
	return &If{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type While struct {
	nodeImpl
	stmtMarker

	Condition Expr `json:"condition"`
	Body      Stmt `json:"body"`
}

func NewWhile(condition Expr, body Stmt) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

// Function is a named function or method declaration.
type Function struct {
	nodeImpl
	stmtMarker

	Name   token.Token   `json:"name"`
	Params []token.Token `json:"params"`
	Body   []Stmt        `json:"body"`
}

func NewFunction(name token.Token, params []token.Token, body []Stmt) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunctionStmt), Name: name, Params: params, Body: body}
}

// Return keeps its keyword for error locations; Value is nil for a bare return.
type Return struct {
	nodeImpl
	stmtMarker

	Keyword token.Token `json:"keyword"`
	Value   Expr        `json:"value,omitempty"`
}

func NewReturn(keyword token.Token, value Expr) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Value: value}
}

type Class struct {
	nodeImpl
	stmtMarker

	Name       token.Token `json:"name"`
	Superclass *Variable   `json:"superclass,omitempty"`
	Methods    []*Function `json:"methods"`
}

func NewClass(name token.Token, superclass *Variable, methods []*Function) *Class {
	return &Class{nodeImpl: newNodeImpl(NodeClassStmt), Name: name, Superclass: superclass, Methods: methods}
}
