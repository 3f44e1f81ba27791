package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Shah-Siddharth/golox/pkg/ast"
	"github.com/Shah-Siddharth/golox/pkg/parser"
	"github.com/Shah-Siddharth/golox/pkg/scanner"
)

func parseSource(t *testing.T, source string) ([]ast.Stmt, error) {
	t.Helper()
	tokens, err := scanner.Scan(source)
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	return parser.Parse(tokens)
}

func mustParse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, err := parseSource(t, source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return stmts
}

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	tokens, err := scanner.Scan(source)
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	expr, err := parser.ParseExpression(tokens)
	if err != nil {
		t.Fatalf("parse expression %q: %v", source, err)
	}
	return expr
}

func syntaxErrors(t *testing.T, err error) parser.ErrorList {
	t.Helper()
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected parser.ErrorList, got %T (%v)", err, err)
	}
	return list
}

func TestUnaryBindsTighterThanFactor(t *testing.T) {
	expr := parseExpr(t, "-123 * (45.67)")
	if got := ast.Sprint(expr); got != "(* (- 123) (group 45.67))" {
		t.Fatalf("unexpected tree %s", got)
	}
	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected Binary at root, got %T", expr)
	}
	if _, ok := bin.Left.(*ast.Unary); !ok {
		t.Fatalf("expected Unary on the left, got %T", bin.Left)
	}
	if _, ok := bin.Right.(*ast.Grouping); !ok {
		t.Fatalf("expected Grouping on the right, got %T", bin.Right)
	}
}

func TestBinaryPrecedenceAndAssociativity(t *testing.T) {
	cases := map[string]string{
		"2 + 3 * 4":            "(+ 2 (* 3 4))",
		"6 / 3 - 1":            "(- (/ 6 3) 1)",
		"1 - 2 - 3":            "(- (- 1 2) 3)",
		"1 < 2 == true":        "(== (< 1 2) true)",
		"a or b and c":         "(or a (and b c))",
		"!!x":                  "(! (! x))",
		"a == b != c":          "(!= (== a b) c)",
		"1 + 2 >= 3 * 4 or !f": "(or (>= (+ 1 2) (* 3 4)) (! f))",
	}
	for source, want := range cases {
		if got := ast.Sprint(parseExpr(t, source)); got != want {
			t.Fatalf("%s: expected %s, got %s", source, want, got)
		}
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = c")
	outer, ok := expr.(*ast.Assign)
	if !ok || outer.Name.Lexeme != "a" {
		t.Fatalf("expected assignment to a, got %s", ast.Sprint(expr))
	}
	inner, ok := outer.Value.(*ast.Assign)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("expected nested assignment to b, got %s", ast.Sprint(outer.Value))
	}
}

func TestPropertyAssignmentBecomesSet(t *testing.T) {
	expr := parseExpr(t, "a.b.c = 1")
	set, ok := expr.(*ast.Set)
	if !ok {
		t.Fatalf("expected Set, got %T", expr)
	}
	if set.Name.Lexeme != "c" {
		t.Fatalf("expected property c, got %s", set.Name.Lexeme)
	}
	if got := ast.Sprint(set.Object); got != "(.b a)" {
		t.Fatalf("unexpected object %s", got)
	}
}

func TestChainedCallsAndProperties(t *testing.T) {
	expr := parseExpr(t, "a.b(c).d(1, 2)()")
	want := "(call (call (.d (call (.b a) c)) 1 2))"
	if got := ast.Sprint(expr); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestInvalidAssignmentTargetIsReportedNotFatal(t *testing.T) {
	stmts, err := parseSource(t, "a + b = c; print 1;")
	list := syntaxErrors(t, err)
	if len(list) != 1 || list[0].Message != "Invalid assignment target." {
		t.Fatalf("unexpected errors %v", list)
	}
	if list[0].Token.Lexeme != "=" {
		t.Fatalf("expected error at '=', got %q", list[0].Token.Lexeme)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected both statements to survive, got %d", len(stmts))
	}
}

func TestSynchronizeReportsOneErrorPerBrokenStatement(t *testing.T) {
	stmts, err := parseSource(t, "var = 1; print 2;\nvar x 3; print 4;\nprint (5;")
	list := syntaxErrors(t, err)
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(list), list)
	}
	if list[0].Error() != "[line 1] Error at '=': Expect variable name." {
		t.Fatalf("unexpected first error %q", list[0].Error())
	}
	if list[1].Token.Line != 2 {
		t.Fatalf("expected second error on line 2, got %d", list[1].Token.Line)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected the two valid print statements, got %d", len(stmts))
	}
	for _, stmt := range stmts {
		if _, ok := stmt.(*ast.Print); !ok {
			t.Fatalf("expected print statement, got %T", stmt)
		}
	}
}

func TestErrorAtEnd(t *testing.T) {
	_, err := parseSource(t, "print")
	list := syntaxErrors(t, err)
	if list.Error() != "[line 1] Error at end: Expect expression." {
		t.Fatalf("unexpected error %q", list.Error())
	}
}

func TestErrorInsideBlockRecoversLocally(t *testing.T) {
	stmts, err := parseSource(t, "{ var 1; print 2; }\nprint 3;")
	list := syntaxErrors(t, err)
	if len(list) != 1 {
		t.Fatalf("expected a single error, got %v", list)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected block and print, got %d statements", len(stmts))
	}
	block, ok := stmts[0].(*ast.Block)
	if !ok || len(block.Statements) != 1 {
		t.Fatalf("expected block holding the surviving print, got %s", ast.Sprint(stmts[0]))
	}
}

func TestArgumentCapIsNonFatal(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	stmts, err := parseSource(t, "f("+strings.Join(args, ", ")+");")
	list := syntaxErrors(t, err)
	if len(list) != 1 || list[0].Message != "Can't have more than 255 arguments." {
		t.Fatalf("unexpected errors %v", list)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected call statement to be kept")
	}
	call := stmts[0].(*ast.Expression).Expression.(*ast.Call)
	if len(call.Arguments) != 256 {
		t.Fatalf("expected all arguments parsed, got %d", len(call.Arguments))
	}
}

func TestParameterCap(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = "p" + strings.Repeat("x", i)
	}
	_, err := parseSource(t, "fun f("+strings.Join(params, ", ")+") {}")
	list := syntaxErrors(t, err)
	if len(list) != 1 || list[0].Message != "Can't have more than 255 parameters." {
		t.Fatalf("unexpected errors %v", list)
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	want := "(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))"
	if got := ast.Sprint(stmts[0]); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	stmts = mustParse(t, "for (;;) print 1;")
	if got := ast.Sprint(stmts[0]); got != "(while true (print 1))" {
		t.Fatalf("unexpected infinite loop desugaring %s", got)
	}
}

func TestClassDeclaration(t *testing.T) {
	stmts := mustParse(t, `
class B < A {
  init(x) { this.x = x; }
  greet() { return super.greet() + "B"; }
}`)
	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected class, got %T", stmts[0])
	}
	if class.Name.Lexeme != "B" || class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("unexpected class header %s", ast.Sprint(class))
	}
	if len(class.Methods) != 2 || class.Methods[0].Name.Lexeme != "init" || len(class.Methods[0].Params) != 1 {
		t.Fatalf("unexpected methods %s", ast.Sprint(class))
	}
}

func TestStatementForms(t *testing.T) {
	stmts := mustParse(t, `
var a;
if (a) print 1; else { print 2; }
while (false) a = 1;
fun f(x, y) { return; }
`)
	want := []string{
		"(var a)",
		"(if-else a (print 1) (block (print 2)))",
		"(while false (; (= a 1)))",
		"(fun f(x y) (return))",
	}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, stmt := range stmts {
		if got := ast.Sprint(stmt); got != want[i] {
			t.Fatalf("statement %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	tokens, err := scanner.Scan("1 + 2;")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := parser.ParseExpression(tokens); err == nil {
		t.Fatalf("expected trailing semicolon to be rejected")
	}
}

func TestParsedTreeMatchesBuiltTree(t *testing.T) {
	source := `{ while (n < 3) { if (n == 1) print o.f; else n = n + 1; } }`
	want := ast.Blk(
		ast.WhileStmt(
			ast.Bin("<", ast.ID("n"), ast.Num(3)),
			ast.Blk(
				ast.IfStmt(
					ast.Bin("==", ast.ID("n"), ast.Num(1)),
					ast.PrintStmt(ast.Prop(ast.ID("o"), "f")),
					ast.ExprStmt(ast.AssignTo("n", ast.Bin("+", ast.ID("n"), ast.Num(1)))),
				),
			),
		),
	)
	stmts := mustParse(t, source)
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
	if got, exp := ast.Sprint(stmts[0]), ast.Sprint(want); got != exp {
		t.Fatalf("parsed tree %q, want %q", got, exp)
	}
}
