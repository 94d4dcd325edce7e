package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/lexer"
	"github.com/tallylang/tally/parser"
	"github.com/tallylang/tally/types"
)

func mustAnalyze(t *testing.T, src string) (*ast.Source, error) {
	t.Helper()
	tokens, lerr := lexer.All(src)
	require.Nil(t, lerr)
	source, perr := parser.Parse(tokens)
	require.Nil(t, perr)
	_, aerr := Analyze(source)
	if aerr != nil {
		return source, aerr
	}
	return source, nil
}

func TestAnalyze_MissingMainIsError(t *testing.T) {
	_, err := mustAnalyze(t, `LET x = 1;`)
	require.NotNil(t, err)
}

func TestAnalyze_MainMustReturnInteger(t *testing.T) {
	_, err := mustAnalyze(t, `DEF main(): Boolean DO RETURN TRUE; END`)
	require.NotNil(t, err)
}

func TestAnalyze_ValidProgramResolvesTypes(t *testing.T) {
	source, err := mustAnalyze(t, `
		LET total: Integer = 0;
		DEF main(): Integer DO
			RETURN total;
		END
	`)
	require.Nil(t, err)
	assert.Equal(t, types.Integer, source.Fields[0].Variable.Type)
	ret := source.Methods[0].Body[0].(*ast.ReturnStmt)
	assert.Equal(t, types.Integer, ret.Value.ResolvedType())
}

func TestAnalyze_InferredFieldType(t *testing.T) {
	source, err := mustAnalyze(t, `
		LET greeting = "hi";
		DEF main(): Integer DO
			RETURN 0;
		END
	`)
	require.Nil(t, err)
	assert.Equal(t, types.String, source.Fields[0].Variable.Type)
}

func TestAnalyze_DeclarationNeedsTypeOrInitializer(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			LET x;
			RETURN 0;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_AssignmentTypeMismatch(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			LET x: Integer = 0;
			x = TRUE;
			RETURN x;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_IfConditionMustBeBoolean(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			IF 1 DO
				RETURN 1;
			END
			RETURN 0;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_BinaryArithmeticMismatch(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			RETURN 1 + 1.5;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_ComparableAssignability(t *testing.T) {
	source, err := mustAnalyze(t, `
		DEF main(): Integer DO
			LET ok: Boolean = 1 < 2;
			IF ok DO
				RETURN 1;
			END
			RETURN 0;
		END
	`)
	require.Nil(t, err)
	decl := source.Methods[0].Body[0].(*ast.DeclarationStmt)
	assert.Equal(t, types.Boolean, decl.Variable.Type)
}

func TestAnalyze_UndefinedVariableIsError(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			RETURN missing;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_CallArityMismatchIsError(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			print(1, 2);
			RETURN 0;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_ExpressionStatementMustBeCall(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			1 + 1;
			RETURN 0;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_ForRequiresIntegerIterable(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			FOR i IN 1 DO
				print(i);
			END
			RETURN 0;
		END
	`)
	require.NotNil(t, err)
}

func TestAnalyze_ForOverRangeBuiltin(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF main(): Integer DO
			FOR i IN range(1, 3) DO
				print(i);
			END
			RETURN 0;
		END
	`)
	require.Nil(t, err)
}

func TestAnalyze_MutualRecursionAcrossMethods(t *testing.T) {
	_, err := mustAnalyze(t, `
		DEF isEven(n: Integer): Boolean DO
			IF n == 0 DO
				RETURN TRUE;
			END
			RETURN isOdd(n - 1);
		END
		DEF isOdd(n: Integer): Boolean DO
			IF n == 0 DO
				RETURN FALSE;
			END
			RETURN isEven(n - 1);
		END
		DEF main(): Integer DO
			RETURN 0;
		END
	`)
	require.Nil(t, err)
}
