package parser

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/lexer"
)

func parse(t *testing.T, src string) *ast.Source {
	t.Helper()
	tokens, err := lexer.All(src)
	require.Nil(t, err)
	source, perr := Parse(tokens)
	require.Nil(t, perr)
	require.NotNil(t, source)
	return source
}

func TestParse_FieldWithTypeAndInitializer(t *testing.T) {
	source := parse(t, `LET count: Integer = 0;`)
	require.Len(t, source.Fields, 1)
	f := source.Fields[0]
	assert.Equal(t, "count", f.Name)
	assert.Equal(t, "Integer", f.TypeName)
	lit, ok := f.Value.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(0), lit.Value)
}

func TestParse_FieldWithoutInitializer(t *testing.T) {
	source := parse(t, `LET count: Integer;`)
	require.Len(t, source.Fields, 1)
	assert.Nil(t, source.Fields[0].Value)
}

func TestParse_MethodSignature(t *testing.T) {
	source := parse(t, `
		DEF add(a: Integer, b: Integer): Integer DO
			RETURN a + b;
		END
	`)
	require.Len(t, source.Methods, 1)
	m := source.Methods[0]
	assert.Equal(t, "add", m.Name)
	assert.Equal(t, []string{"a", "b"}, m.Parameters)
	assert.Equal(t, []string{"Integer", "Integer"}, m.ParameterTypeNames)
	assert.Equal(t, "Integer", m.ReturnTypeName)
	require.Len(t, m.Body, 1)

	ret, ok := m.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	source := parse(t, `
		DEF main(): Integer DO
			RETURN 2 + 3 * 4;
		END
	`)
	ret := source.Methods[0].Body[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", top.Op)

	left, ok := top.Left.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(2), left.Value)

	right, ok := top.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParse_LogicalLowestPrecedence(t *testing.T) {
	source := parse(t, `
		DEF main(): Boolean DO
			RETURN 1 < 2 AND 3 > 2;
		END
	`)
	ret := source.Methods[0].Body[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "AND", top.Op)
	_, ok = top.Left.(*ast.Binary)
	assert.True(t, ok)
	_, ok = top.Right.(*ast.Binary)
	assert.True(t, ok)
}

func TestParse_MethodCallChain(t *testing.T) {
	source := parse(t, `
		DEF main(): Nil DO
			out.print(1, 2);
		END
	`)
	stmt, ok := source.Methods[0].Body[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	call, ok := stmt.Expr.(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "print", call.Name)
	require.Len(t, call.Arguments, 2)

	recv, ok := call.Receiver.(*ast.Access)
	require.True(t, ok)
	assert.Equal(t, "out", recv.Name)
	assert.Nil(t, recv.Receiver)
}

func TestParse_AssignmentVsExpressionStmt(t *testing.T) {
	source := parse(t, `
		DEF main(): Nil DO
			x = 1;
			print(x);
		END
	`)
	require.Len(t, source.Methods[0].Body, 2)

	assign, ok := source.Methods[0].Body[0].(*ast.AssignmentStmt)
	require.True(t, ok)
	access, ok := assign.Receiver.(*ast.Access)
	require.True(t, ok)
	assert.Equal(t, "x", access.Name)

	_, ok = source.Methods[0].Body[1].(*ast.ExpressionStmt)
	assert.True(t, ok)
}

func TestParse_IfElse(t *testing.T) {
	source := parse(t, `
		DEF main(): Nil DO
			IF TRUE DO
				print(1);
			ELSE
				print(2);
			END
		END
	`)
	ifStmt, ok := source.Methods[0].Body[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Len(t, ifStmt.Then, 1)
	assert.Len(t, ifStmt.Else, 1)
}

func TestParse_ForAndWhile(t *testing.T) {
	source := parse(t, `
		DEF main(): Nil DO
			FOR i IN range DO
				print(i);
			END
			WHILE TRUE DO
				print(0);
			END
		END
	`)
	forStmt, ok := source.Methods[0].Body[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Name)

	whileStmt, ok := source.Methods[0].Body[1].(*ast.WhileStmt)
	require.True(t, ok)
	assert.NotNil(t, whileStmt.Condition)
}

func TestParse_GroupedExpression(t *testing.T) {
	source := parse(t, `
		DEF main(): Integer DO
			RETURN (1 + 2) * 3;
		END
	`)
	ret := source.Methods[0].Body[0].(*ast.ReturnStmt)
	top := ret.Value.(*ast.Binary)
	assert.Equal(t, "*", top.Op)
	group, ok := top.Left.(*ast.Group)
	require.True(t, ok)
	_, ok = group.Inner.(*ast.Binary)
	assert.True(t, ok)
}

func TestParse_Literals(t *testing.T) {
	source := parse(t, `LET a = 'x'; LET b = "hi"; LET c = NIL; LET d = 1.50;`)
	require.Len(t, source.Fields, 4)

	assert.Equal(t, 'x', source.Fields[0].Value.(*ast.Literal).Value)
	assert.Equal(t, "hi", source.Fields[1].Value.(*ast.Literal).Value)
	assert.Nil(t, source.Fields[2].Value.(*ast.Literal).Value)
	dec, ok := source.Fields[3].Value.(*ast.Literal).Value.(*big.Float)
	require.True(t, ok)
	f, _ := dec.Float64()
	assert.Equal(t, 1.5, f)
}

func TestParse_TrailingTokenIsError(t *testing.T) {
	tokens, lerr := lexer.All(`LET a = 1; garbage`)
	require.Nil(t, lerr)
	_, err := Parse(tokens)
	require.NotNil(t, err)
}

func TestParse_MissingTerminatorIsError(t *testing.T) {
	tokens, lerr := lexer.All(`LET a = 1`)
	require.Nil(t, lerr)
	_, err := Parse(tokens)
	require.NotNil(t, err)
}
