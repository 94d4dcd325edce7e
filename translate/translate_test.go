package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylang/tally/lexer"
	"github.com/tallylang/tally/parser"
)

func translateSrc(t *testing.T, src string) string {
	t.Helper()
	tokens, lerr := lexer.All(src)
	require.Nil(t, lerr)
	source, perr := parser.Parse(tokens)
	require.Nil(t, perr)
	out, terr := Translate(source)
	require.Nil(t, terr)
	return out
}

func TestTranslate_EmitsClassAndMainWrapper(t *testing.T) {
	out := translateSrc(t, `DEF main(): Integer DO RETURN 0; END`)
	assert.Contains(t, out, "class Main {")
	assert.Contains(t, out, "int main() {")
	assert.Contains(t, out, "public static void main(String[] args) {")
	assert.Contains(t, out, "System.exit(new Main().main());")
}

func TestTranslate_FieldAsInstanceField(t *testing.T) {
	out := translateSrc(t, `
		LET count: Integer = 3;
		DEF main(): Integer DO RETURN count; END
	`)
	assert.Contains(t, out, "int count = 3;")
	assert.NotContains(t, out, "static int count")
}

func TestTranslate_LogicalOperatorsBecomeJavaOperators(t *testing.T) {
	out := translateSrc(t, `
		DEF main(): Integer DO
			IF TRUE AND FALSE OR TRUE DO
				RETURN 1;
			END
			RETURN 0;
		END
	`)
	assert.Contains(t, out, "&&")
	assert.Contains(t, out, "||")
}

func TestTranslate_PrintBecomesSystemOutPrintln(t *testing.T) {
	out := translateSrc(t, `
		DEF main(): Integer DO
			print("hi");
			RETURN 0;
		END
	`)
	assert.Contains(t, out, `System.out.println("hi");`)
}

func TestTranslate_ForOverRangeBecomesJavaForLoop(t *testing.T) {
	out := translateSrc(t, `
		DEF main(): Integer DO
			LET total: Integer = 0;
			FOR i IN range(1, 3) DO
				total = total + i;
			END
			RETURN total;
		END
	`)
	assert.Contains(t, out, "for (int i : TallyRuntime.range(1, 3)) {")
	assert.Contains(t, out, "class TallyRuntime {")
	assert.Contains(t, out, "static Iterable<Integer> range(final int start, final int stop) {")
}

func TestTranslate_RuntimeHelperOmittedWhenRangeUnused(t *testing.T) {
	out := translateSrc(t, `DEF main(): Integer DO RETURN 0; END`)
	assert.NotContains(t, out, "TallyRuntime")
}

func TestTranslate_StringEscaping(t *testing.T) {
	out := translateSrc(t, `
		DEF main(): Integer DO
			print("line\nbreak");
			RETURN 0;
		END
	`)
	assert.Contains(t, out, `"line\nbreak"`)
}

func TestTranslate_UserMethodCallsItsOwnName(t *testing.T) {
	out := translateSrc(t, `
		DEF double(n: Integer): Integer DO
			RETURN n * 2;
		END
		DEF main(): Integer DO
			RETURN double(21);
		END
	`)
	assert.Contains(t, out, "int double(int n) {")
	assert.Contains(t, out, "double(21)")
}

// TestTranslate_EmissionRelexesCleanly exercises spec.md §8's round-trip
// property: lex -> parse -> translate -> lex of the emission must produce a
// structurally consistent token sequence, not a lex failure, for programs
// built entirely from the literal forms the lexer and translator both
// recognize (a character/string literal whose host form needs no escape
// the lexer itself doesn't accept, since a bare Java "\0" for Character's
// zero value isn't one of the seven escapes spec.md §4.1 defines).
func TestTranslate_EmissionRelexesCleanly(t *testing.T) {
	samples := []string{
		`LET count: Integer = 3; DEF main(): Integer DO RETURN count; END`,
		`DEF main(): Integer DO
			LET total: Integer = 0;
			FOR i IN range(1, 4) DO
				total = total + i;
			END
			RETURN total;
		END`,
		`DEF greet(): Nil DO
			print("hi there");
		END
		DEF main(): Integer DO
			greet();
			RETURN 0;
		END`,
	}
	for _, src := range samples {
		out := translateSrc(t, src)
		_, lerr := lexer.All(out)
		assert.Nilf(t, lerr, "emitted source for %q failed to re-lex: %v\n%s", src, lerr, out)
	}
}
