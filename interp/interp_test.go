package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylang/tally/lexer"
	"github.com/tallylang/tally/parser"
)

func run(t *testing.T, src string) (int64, string, error) {
	t.Helper()
	tokens, lerr := lexer.All(src)
	require.Nil(t, lerr)
	source, perr := parser.Parse(tokens)
	require.Nil(t, perr)

	var out bytes.Buffer
	in := New(&out)
	code, err := in.Run(source)
	if err != nil {
		return 0, out.String(), err
	}
	return code, out.String(), nil
}

func TestRun_ReturnsExitCode(t *testing.T) {
	code, _, err := run(t, `DEF main(): Integer DO RETURN 42; END`)
	require.NoError(t, err)
	assert.EqualValues(t, 42, code)
}

func TestRun_ArithmeticPrecedence(t *testing.T) {
	code, _, err := run(t, `DEF main(): Integer DO RETURN 2 + 3 * 4; END`)
	require.NoError(t, err)
	assert.EqualValues(t, 14, code)
}

func TestRun_IntegerDivisionByZero(t *testing.T) {
	_, _, err := run(t, `DEF main(): Integer DO RETURN 1 / 0; END`)
	require.Error(t, err)
}

func TestRun_DecimalDivision(t *testing.T) {
	code, _, err := run(t, `
		DEF main(): Integer DO
			LET x: Decimal = 10.0 / 4.0;
			IF x == 2.5 DO
				RETURN 1;
			END
			RETURN 0;
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 1, code)
}

func TestRun_PrintWritesDisplayForm(t *testing.T) {
	_, out, err := run(t, `
		DEF main(): Integer DO
			print("hello");
			print(42);
			print(TRUE);
			RETURN 0;
		END
	`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n42\ntrue\n", out)
}

func TestRun_IfElse(t *testing.T) {
	code, _, err := run(t, `
		DEF main(): Integer DO
			IF 1 < 2 DO
				RETURN 1;
			ELSE
				RETURN 2;
			END
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 1, code)
}

func TestRun_WhileLoop(t *testing.T) {
	code, _, err := run(t, `
		DEF main(): Integer DO
			LET i: Integer = 0;
			LET total: Integer = 0;
			WHILE i < 5 DO
				total = total + i;
				i = i + 1;
			END
			RETURN total;
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 10, code)
}

func TestRun_ForOverRange(t *testing.T) {
	code, _, err := run(t, `
		DEF main(): Integer DO
			LET total: Integer = 0;
			FOR i IN range(1, 4) DO
				total = total + i;
			END
			RETURN total;
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 6, code)
}

func TestRun_RecursiveCallsDoNotShareLocals(t *testing.T) {
	code, _, err := run(t, `
		DEF fact(n: Integer): Integer DO
			IF n == 0 DO
				RETURN 1;
			END
			RETURN n * fact(n - 1);
		END
		DEF main(): Integer DO
			RETURN fact(5);
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 120, code)
}

func TestRun_ShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	code, _, err := run(t, `
		DEF main(): Integer DO
			IF FALSE AND (1 / 0 == 0) DO
				RETURN 1;
			END
			RETURN 0;
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 0, code)
}

func TestRun_FieldsAreGlobalAndMutable(t *testing.T) {
	code, _, err := run(t, `
		LET counter: Integer = 0;
		DEF bump(): Nil DO
			counter = counter + 1;
		END
		DEF main(): Integer DO
			bump();
			bump();
			bump();
			RETURN counter;
		END
	`)
	require.NoError(t, err)
	assert.EqualValues(t, 3, code)
}
