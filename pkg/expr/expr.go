package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/maplabel/pkg/errors"
)

var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_:.\-]*`},
		{Name: "Symbol", Pattern: `[][+]`},
	})

	exprParser = participle.MustBuild[Expression](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace"),
	)
)

// Expression is a parsed label expression.
type Expression struct {
	Terms []*Term `parser:"@@ ( '+' @@ )*"`
}

// Term is one operand of the concatenation.
type Term struct {
	Field   *string        `parser:"  '[' @Ident ']'"`
	Literal *StringLiteral `parser:"| @String"`
	Number  *string        `parser:"| @Number"`
}

// StringLiteral unquotes single- or double-quoted strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	raw := values[0]
	if strings.HasPrefix(raw, "'") {
		// Re-quote so strconv handles the escapes.
		body := strings.ReplaceAll(raw[1:len(raw)-1], `\'`, `'`)
		raw = strconv.Quote(body)
	}
	val, err := strconv.Unquote(raw)
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a label expression.
func Parse(s string) (*Expression, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidExpression, "empty expression")
	}
	e, err := exprParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "parse %q", s)
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Expression {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate renders the expression against props.
func (e *Expression) Evaluate(props map[string]any) string {
	var b strings.Builder
	for _, t := range e.Terms {
		switch {
		case t.Field != nil:
			b.WriteString(format(props[*t.Field]))
		case t.Literal != nil:
			b.WriteString(string(*t.Literal))
		case t.Number != nil:
			b.WriteString(*t.Number)
		}
	}
	return b.String()
}

// Fields returns the attribute names referenced by the expression, in order
// of first use.
func (e *Expression) Fields() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range e.Terms {
		if t.Field != nil && !seen[*t.Field] {
			seen[*t.Field] = true
			out = append(out, *t.Field)
		}
	}
	return out
}

// String returns the expression in canonical form.
func (e *Expression) String() string {
	parts := make([]string, 0, len(e.Terms))
	for _, t := range e.Terms {
		switch {
		case t.Field != nil:
			parts = append(parts, "["+*t.Field+"]")
		case t.Literal != nil:
			parts = append(parts, strconv.Quote(string(*t.Literal)))
		case t.Number != nil:
			parts = append(parts, *t.Number)
		}
	}
	return strings.Join(parts, " + ")
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
