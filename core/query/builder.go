package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ajones55555/rocketlane-sdk/core/paginate"
)

// ErrUnboundQuery is returned by Execute when a builder was never attached to
// a resource's list method. A detached builder remains valid for inspection
// via Build, Params and SQL; it is only execution that requires a binding.
var ErrUnboundQuery = errors.New("query: builder is not bound to a resource")

// ListFunc is the injected fetch primitive: one page fetch against the remote
// API with a flat parameter map. The SDK's rest layer supplies it; tests
// supply stubs.
type ListFunc = paginate.ListFunc[Document]

// Builder accumulates filter, ordering and shape directives through a fluent
// chain and renders them into the flat parameter map the remote API accepts,
// plus an advisory SQL-like string for diagnostics.
//
// Builder is mutable: every chain method modifies the receiver and returns
// it. This favors ergonomics over immutability and means a Builder is NOT
// safe for concurrent use; build, then execute, within one call chain. Use
// Clone to branch a query without disturbing the original.
type Builder struct {
	table string
	conds []Condition
	opts  Options
	list  ListFunc
}

// NewBuilder creates an empty builder for the named resource collection.
func NewBuilder(table string) *Builder {
	return &Builder{table: table}
}

// Bind attaches the builder to a list method, making it executable.
func (b *Builder) Bind(fn ListFunc) *Builder {
	b.list = fn
	return b
}

// Clone returns a copy of the builder that can be mutated independently.
// The condition and sort slices are copied; condition values are shared.
func (b *Builder) Clone() *Builder {
	nb := &Builder{table: b.table, list: b.list, opts: b.opts}
	nb.conds = append([]Condition(nil), b.conds...)
	nb.opts.Sort = append([]SortField(nil), b.opts.Sort...)
	nb.opts.GroupBy = append([]string(nil), b.opts.GroupBy...)
	return nb
}

// Reset clears all accumulated directives, keeping the table and binding.
func (b *Builder) Reset() *Builder {
	b.conds = nil
	b.opts = Options{}
	return b
}

// Where appends a condition with an explicit operator. Conditions are never
// merged: if two conditions emit the same parameter key, the later one wins
// at translation time.
func (b *Builder) Where(field string, op Operator, value Value) *Builder {
	b.conds = append(b.conds, Condition{Field: field, Operator: op, Value: value})
	return b
}

// WhereEquals appends an equality condition.
func (b *Builder) WhereEquals(field string, value Value) *Builder {
	return b.Where(field, OpEquals, value)
}

// WhereNotEquals appends a not-equal condition.
func (b *Builder) WhereNotEquals(field string, value Value) *Builder {
	return b.Where(field, OpNotEquals, value)
}

// WhereGreaterThan appends a greater-than condition.
func (b *Builder) WhereGreaterThan(field string, value Value) *Builder {
	return b.Where(field, OpGreaterThan, value)
}

// WhereLessThan appends a less-than condition.
func (b *Builder) WhereLessThan(field string, value Value) *Builder {
	return b.Where(field, OpLessThan, value)
}

// WhereGreaterOrEqual appends a greater-or-equal condition.
func (b *Builder) WhereGreaterOrEqual(field string, value Value) *Builder {
	return b.Where(field, OpGreaterOrEqual, value)
}

// WhereLessOrEqual appends a less-or-equal condition.
func (b *Builder) WhereLessOrEqual(field string, value Value) *Builder {
	return b.Where(field, OpLessOrEqual, value)
}

// WhereLike appends a pattern-match condition.
func (b *Builder) WhereLike(field string, value Value) *Builder {
	return b.Where(field, OpLike, value)
}

// WhereIn appends a set-membership condition.
func (b *Builder) WhereIn(field string, values ...Value) *Builder {
	return b.Where(field, OpIn, values)
}

// WhereNotIn appends a negated set-membership condition.
func (b *Builder) WhereNotIn(field string, values ...Value) *Builder {
	return b.Where(field, OpNotIn, values)
}

// WhereContains appends a substring condition.
func (b *Builder) WhereContains(field string, value Value) *Builder {
	return b.Where(field, OpContains, value)
}

// WhereNotContains appends a negated substring condition.
func (b *Builder) WhereNotContains(field string, value Value) *Builder {
	return b.Where(field, OpNotContains, value)
}

// WhereBetween appends an inclusive range condition.
func (b *Builder) WhereBetween(field string, low, high Value) *Builder {
	b.conds = append(b.conds, Condition{Field: field, Operator: OpBetween, Value: low, Value2: high})
	return b
}

// WhereNotBetween appends an exclusive-of-range condition.
func (b *Builder) WhereNotBetween(field string, low, high Value) *Builder {
	b.conds = append(b.conds, Condition{Field: field, Operator: OpNotBetween, Value: low, Value2: high})
	return b
}

// OrderBy appends a sort key. Multiple calls compose a multi-key ordering;
// note that translation keeps only the first key because the remote contract
// has no multi-key sort. Direction is matched case-insensitively and
// defaults to ascending when unrecognized.
func (b *Builder) OrderBy(field string, direction SortDirection) *Builder {
	d := SortDirection(strings.ToLower(string(direction)))
	if d != SortDesc {
		d = SortAsc
	}
	b.opts.Sort = append(b.opts.Sort, SortField{Field: field, Direction: d})
	return b
}

// OrderByAsc appends an ascending sort key.
func (b *Builder) OrderByAsc(field string) *Builder {
	return b.OrderBy(field, SortAsc)
}

// OrderByDesc appends a descending sort key.
func (b *Builder) OrderByDesc(field string) *Builder {
	return b.OrderBy(field, SortDesc)
}

// GroupBy adds fields to the grouping set, skipping duplicates.
func (b *Builder) GroupBy(fields ...string) *Builder {
	for _, f := range fields {
		seen := false
		for _, g := range b.opts.GroupBy {
			if g == f {
				seen = true
				break
			}
		}
		if !seen {
			b.opts.GroupBy = append(b.opts.GroupBy, f)
		}
	}
	return b
}

// Limit sets the maximum number of records per page.
func (b *Builder) Limit(limit int) *Builder {
	b.opts.Limit = &limit
	return b
}

// Offset sets the starting offset. The remote pagination protocol is
// token-based, so the offset is passed through best-effort; no validation
// ties it to Limit.
func (b *Builder) Offset(offset int) *Builder {
	b.opts.Offset = &offset
	return b
}

// Select sets a flat column projection. Interpretation is deferred to the
// projector; the server is not asked to narrow the response.
func (b *Builder) Select(fields ...string) *Builder {
	b.opts.Select = SelectionFromFields(fields...)
	return b
}

// SelectTree sets a nested selection tree, stored as-is.
func (b *Builder) SelectTree(sel Selection) *Builder {
	b.opts.Select = sel
	return b
}

// Selection returns the stored selection tree, or nil.
func (b *Builder) Selection() Selection {
	return b.opts.Select
}

// Parsed returns the intermediate form of the accumulated query, the same
// shape the SQL template parser produces.
func (b *Builder) Parsed() ParsedQuery {
	return ParsedQuery{
		Table:      b.table,
		Conditions: append([]Condition(nil), b.conds...),
		Options:    b.opts,
	}
}

// Params renders the accumulated query into the flat parameter map. The
// rendering is pure: calling it twice without further mutation yields
// identical maps.
func (b *Builder) Params() Params {
	return Translate(b.Parsed())
}

// Build is the terminal operation: it returns the flat parameter map that
// drives the actual request, and a SQL-like rendering of the query. The SQL
// string is advisory output for logging only and may diverge from literal
// request semantics in edge cases; the parameter map is authoritative.
func (b *Builder) Build() (Params, string) {
	return b.Params(), b.SQL()
}

// SQL renders the accumulated query as a human-readable SQL-like string.
func (b *Builder) SQL() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.opts.Select) > 0 {
		fields := make([]string, 0, len(b.opts.Select))
		for f := range b.opts.Select {
			fields = append(fields, f)
		}
		sortStrings(fields)
		sb.WriteString(strings.Join(fields, ", "))
	} else {
		sb.WriteString("*")
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.conds) > 0 {
		parts := make([]string, len(b.conds))
		for i, c := range b.conds {
			parts[i] = renderCondition(c)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}
	if len(b.opts.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.opts.GroupBy, ", "))
	}
	if len(b.opts.Sort) > 0 {
		keys := make([]string, len(b.opts.Sort))
		for i, s := range b.opts.Sort {
			keys[i] = fmt.Sprintf("%s %s", s.Field, strings.ToUpper(string(s.Direction)))
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(keys, ", "))
	}
	if b.opts.Limit != nil {
		fmt.Fprintf(&sb, " LIMIT %d", *b.opts.Limit)
	}
	if b.opts.Offset != nil {
		fmt.Fprintf(&sb, " OFFSET %d", *b.opts.Offset)
	}
	return sb.String()
}

// renderCondition renders one condition for the diagnostic SQL string.
func renderCondition(c Condition) string {
	switch c.Operator {
	case OpEquals:
		return fmt.Sprintf("%s = %s", c.Field, renderValue(c.Value))
	case OpNotEquals:
		return fmt.Sprintf("%s != %s", c.Field, renderValue(c.Value))
	case OpGreaterThan:
		return fmt.Sprintf("%s > %s", c.Field, renderValue(c.Value))
	case OpLessThan:
		return fmt.Sprintf("%s < %s", c.Field, renderValue(c.Value))
	case OpGreaterOrEqual:
		return fmt.Sprintf("%s >= %s", c.Field, renderValue(c.Value))
	case OpLessOrEqual:
		return fmt.Sprintf("%s <= %s", c.Field, renderValue(c.Value))
	case OpLike:
		return fmt.Sprintf("%s LIKE %s", c.Field, renderValue(c.Value))
	case OpIn:
		return fmt.Sprintf("%s IN (%s)", c.Field, renderValueList(c.Value))
	case OpNotIn:
		return fmt.Sprintf("%s NOT IN (%s)", c.Field, renderValueList(c.Value))
	case OpContains:
		return fmt.Sprintf("%s CONTAINS %s", c.Field, renderValue(c.Value))
	case OpNotContains:
		return fmt.Sprintf("%s NOT CONTAINS %s", c.Field, renderValue(c.Value))
	case OpBetween:
		return fmt.Sprintf("%s BETWEEN %s AND %s", c.Field, renderValue(c.Value), renderValue(c.Value2))
	case OpNotBetween:
		return fmt.Sprintf("%s NOT BETWEEN %s AND %s", c.Field, renderValue(c.Value), renderValue(c.Value2))
	default:
		return fmt.Sprintf("%s %s %s", c.Field, c.Operator, renderValue(c.Value))
	}
}

// Execute performs exactly one page fetch using the bound list method. A
// builder that was never bound returns ErrUnboundQuery.
func (b *Builder) Execute(ctx context.Context) (*paginate.Page[Document], error) {
	if b.list == nil {
		return nil, ErrUnboundQuery
	}
	return b.list(ctx, b.Params())
}

// ExecuteProjected performs one page fetch and applies the stored selection
// tree to the returned documents. With no selection set, the documents are
// returned as fetched.
func (b *Builder) ExecuteProjected(ctx context.Context) ([]Document, error) {
	page, err := b.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if b.opts.Select == nil {
		return page.Data, nil
	}
	return ProjectDocuments(page.Data, b.opts.Select), nil
}
