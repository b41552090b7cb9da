package filter

import (
	"strings"
	"unicode/utf8"
)

// Encoder converts a nested filter expression to text.
// Implementations handle the target syntax (crnk JSON, SQL dialects).
type Encoder interface {
	// Encode converts an expression tree to text.
	// Returns empty string if there is nothing to encode.
	Encode(expr Expression) string
}

// TextEncoder renders expressions in the crnk nested filter grammar:
//
//	{"AND": [{"user": {"GE": {"number": "30000"}}}, {"EQ": {"id": ["1", "2"]}}]}
//
// Keys are followed by ": ", array elements are separated by ", " and
// every value is a JSON string. Raw fragments are copied verbatim.
type TextEncoder struct{}

// NewTextEncoder creates a crnk filter text encoder.
func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

// Encode renders expr. A nil expression yields "".
func (e *TextEncoder) Encode(expr Expression) string {
	if expr == nil {
		return ""
	}
	var sb strings.Builder
	e.write(&sb, expr)
	return sb.String()
}

func (e *TextEncoder) write(sb *strings.Builder, expr Expression) {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		sb.WriteByte('{')
		writeJSONString(sb, string(ex.Operator))
		sb.WriteString(": {")
		writeJSONString(sb, ex.Field)
		sb.WriteString(": ")
		writeValue(sb, ex.Value)
		sb.WriteString("}}")
	case *PathExpression:
		sb.WriteByte('{')
		writeJSONString(sb, ex.Segment)
		sb.WriteString(": ")
		e.write(sb, ex.Child)
		sb.WriteByte('}')
	case *ConjunctionExpression:
		sb.WriteByte('{')
		writeJSONString(sb, string(ex.Combinator))
		sb.WriteString(": [")
		for i, child := range ex.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb, child)
		}
		sb.WriteString("]}")
	case *RawExpression:
		sb.WriteString(ex.Text)
	}
}

func writeValue(sb *strings.Builder, v Value) {
	if !v.List {
		var s string
		if len(v.Items) > 0 {
			s = v.Items[0]
		}
		writeJSONString(sb, s)
		return
	}

	sb.WriteByte('[')
	for i, item := range v.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeJSONString(sb, item)
	}
	sb.WriteByte(']')
}

const hexDigits = "0123456789abcdef"

// writeJSONString writes s as a JSON string literal.
// Unlike encoding/json it leaves <, > and & unescaped.
func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				sb.WriteString("\ufffd")
			} else {
				sb.WriteString(s[i : i+size])
			}
			i += size
			continue
		}

		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
			} else {
				sb.WriteByte(c)
			}
		}
		i++
	}
	sb.WriteByte('"')
}

// EncoderOptions configures SQL encoding.
type EncoderOptions struct {
	// ColumnMapping maps dotted field paths to target column names.
	// Paths not in the map are rendered segment by segment.
	ColumnMapping map[string]string

	// ColumnExpressions maps dotted field paths to SQL expressions.
	// Takes precedence over ColumnMapping.
	ColumnExpressions map[string]string
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Reserved words (simplified list)
	switch strings.ToUpper(name) {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TABLE", "INDEX",
		"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "ON", "AS", "IN", "IS", "LIKE",
		"BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", "ORDER", "BY",
		"GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "EXCEPT", "INTERSECT",
		"ALL", "DISTINCT", "VALUES", "SET", "INTO", "PRIMARY", "KEY", "FOREIGN",
		"REFERENCES", "CONSTRAINT", "DEFAULT", "CHECK", "UNIQUE", "ASC", "DESC",
		"NULLS", "FIRST", "LAST", "CAST", "INTERVAL", "DATE", "TIME", "TIMESTAMP",
		"USER":
		return true
	}

	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
