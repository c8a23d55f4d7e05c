// Package query implements the filter model, fluent builder, SQL template
// parser, parameter translator, and field-selection projector used by every
// resource in the SDK. All query paths converge on a single intermediate
// form (ParsedQuery) before being rendered into the flat key-value shape
// the remote list endpoints accept.
package query

// Operator identifies a comparison in a filter condition. The set is closed:
// the remote API has a fixed suffix vocabulary and there is no escape hatch
// for arbitrary predicates.
type Operator string

// Supported comparison operators.
const (
	OpEquals         Operator = "eq"
	OpNotEquals      Operator = "ne"
	OpGreaterThan    Operator = "gt"
	OpLessThan       Operator = "lt"
	OpGreaterOrEqual Operator = "gte"
	OpLessOrEqual    Operator = "lte"
	OpLike           Operator = "like"
	OpIn             Operator = "in"
	OpNotIn          Operator = "nin"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "ncontains"
	OpBetween        Operator = "between"
	OpNotBetween     Operator = "nbetween"
)

// Value is the value side of a condition. It can be any JSON-encodable type,
// including slices for the in/nin operators.
type Value = any

// Condition is a single filter predicate. Value2 is set if and only if the
// operator is OpBetween or OpNotBetween; every other operator ignores it.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
	Value2   Value
}

// SortDirection specifies the direction of a sort key.
type SortDirection string

// Supported sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField is one entry of an ordering list. Insertion order is preserved;
// the first entry is the primary sort key.
type SortField struct {
	Field     string
	Direction SortDirection
}

// Options carries the non-filter directives of a query: pagination scalars,
// ordering, grouping and field selection. Limit and Offset are independent;
// neither requires the other.
type Options struct {
	Limit   *int
	Offset  *int
	Sort    []SortField
	GroupBy []string
	Select  Selection
}

// Selection is a nested field-selection tree. A value of true means "include
// the field verbatim"; a nested Selection (or map[string]any of the same
// shape) means "recurse into the field using this sub-tree", applied
// element-wise when the field holds a slice.
type Selection map[string]any

// SelectionFromFields builds a flat Selection from a list of field names.
func SelectionFromFields(fields ...string) Selection {
	sel := make(Selection, len(fields))
	for _, f := range fields {
		sel[f] = true
	}
	return sel
}

// ParsedQuery is the intermediate normal form both the fluent builder and
// the SQL template parser produce before parameter translation. Exactly one
// of Conditions or RawWhere is populated: the builder path carries structured
// conditions, the template path carries the raw WHERE text plus its ordered
// positional arguments.
type ParsedQuery struct {
	Table      string
	Conditions []Condition
	RawWhere   string
	Args       []any
	Options    Options
}

// Params is the flat parameter map understood by the remote list endpoints.
// Keys are unique and unordered; values are scalars or slices.
type Params = map[string]any

// Document is a schemaless record as returned by the remote API before it is
// decoded into a typed model.
type Document = map[string]any
