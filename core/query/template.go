package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Template is a parameterized pseudo-SQL query. Each `?` marker in the text
// is replaced with a positional placeholder ($1, $2, ...) and the
// corresponding value is collected into an ordered argument list, so the
// rendered text stays free of literal values.
//
// The parser is deliberately not a SQL grammar. Table name, WHERE, ORDER BY
// and LIMIT are extracted by pattern matching; the WHERE clause is carried
// as raw text and interpreted against a fixed field list at translation
// time. Arbitrary SQL predicates are out of scope, and malformed templates
// degrade gracefully rather than failing: this is a convenience path, not a
// validating parser.
type Template struct {
	text string
	args []any
}

// TableUnknown is the table name reported for templates without a FROM
// clause.
const TableUnknown = "unknown"

// NewTemplate builds a template from pseudo-SQL text with `?` value markers
// and the values to substitute, in marker order. Surplus markers are left
// as-is; surplus values are retained in the argument list.
func NewTemplate(text string, args ...any) *Template {
	var sb strings.Builder
	n := 0
	for _, r := range text {
		if r == '?' && n < len(args) {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return &Template{text: sb.String(), args: append([]any(nil), args...)}
}

// Text returns the placeholder-substituted query text.
func (t *Template) Text() string {
	return t.text
}

// Args returns the ordered positional argument list.
func (t *Template) Args() []any {
	return t.args
}

var (
	tablePattern   = regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z_][A-Za-z0-9_-]*)`)
	wherePattern   = regexp.MustCompile(`(?is)\bwhere\b(.*?)(?:\border\s+by\b|\bgroup\s+by\b|\blimit\b|$)`)
	orderByPattern = regexp.MustCompile(`(?i)\border\s+by\s+([A-Za-z_][A-Za-z0-9_.]*)(?:\s+(asc|desc))?`)
)

// Parse extracts the template into the same intermediate form the fluent
// builder produces, so downstream translation is uniform across both paths.
func (t *Template) Parse() ParsedQuery {
	pq := ParsedQuery{
		Table:    TableUnknown,
		RawWhere: t.whereClause(),
		Args:     t.args,
	}
	if m := tablePattern.FindStringSubmatch(t.text); m != nil {
		pq.Table = m[1]
	}
	if m := orderByPattern.FindStringSubmatch(t.text); m != nil {
		dir := SortAsc
		if strings.EqualFold(m[2], "desc") {
			dir = SortDesc
		}
		pq.Options.Sort = []SortField{{Field: m[1], Direction: dir}}
	}
	pq.Options.Limit = parseLimit(t.text)
	return pq
}

// Params renders the template straight to the flat parameter map.
func (t *Template) Params() Params {
	return Translate(t.Parse())
}

// whereClause returns the raw text between WHERE and the next top-level
// keyword, or the empty string when the template has no WHERE clause.
func (t *Template) whereClause() string {
	m := wherePattern.FindStringSubmatch(t.text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
