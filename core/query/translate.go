package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ajones55555/rocketlane-sdk/core/paginate"
)

// operatorSuffix maps each comparison operator to the parameter-name suffix
// the remote API expects. Equality is the bare field name. The range
// operators are absent here because they emit two parameters each; see
// translateCondition.
var operatorSuffix = map[Operator]string{
	OpEquals:         "",
	OpNotEquals:      "_ne",
	OpGreaterThan:    "_gt",
	OpLessThan:       "_lt",
	OpGreaterOrEqual: "_gte",
	OpLessOrEqual:    "_lte",
	OpLike:           "_like",
	OpIn:             "_in",
	OpNotIn:          "_nin",
	OpContains:       "_contains",
	OpNotContains:    "_ncontains",
}

// Translate renders an intermediate query into the flat parameter map. Both
// builder-produced and template-produced queries pass through here, so the
// two construction paths cannot drift apart.
//
// The map is a plain key-value structure with no multi-valued keys: when two
// conditions emit the same parameter name, the later condition wins. That
// overwrite is part of the contract, not an error.
func Translate(pq ParsedQuery) Params {
	params := Params{}
	if pq.RawWhere != "" {
		translateRawWhere(pq.RawWhere, pq.Args, params)
	}
	for _, c := range pq.Conditions {
		translateCondition(c, params)
	}
	translateOptions(pq.Options, params)
	return params
}

// translateCondition emits the flat parameters for one condition.
func translateCondition(c Condition, params Params) {
	switch c.Operator {
	case OpBetween:
		params[c.Field+"_gte"] = c.Value
		params[c.Field+"_lte"] = c.Value2
	case OpNotBetween:
		params[c.Field+"_lt"] = c.Value
		params[c.Field+"_gt"] = c.Value2
	default:
		suffix, ok := operatorSuffix[c.Operator]
		if !ok {
			return
		}
		params[c.Field+suffix] = c.Value
	}
}

// translateOptions renders ordering, grouping and pagination scalars. Only
// the first sort key is translated: the remote contract is a single
// sortBy/sortOrder pair, so additional keys accepted by the builder are
// dropped here.
func translateOptions(opts Options, params Params) {
	if len(opts.Sort) > 0 {
		params["sortBy"] = opts.Sort[0].Field
		params["sortOrder"] = string(opts.Sort[0].Direction)
	}
	if len(opts.GroupBy) > 0 {
		params["groupBy"] = strings.Join(opts.GroupBy, ",")
	}
	if opts.Limit != nil {
		params[paginate.ParamPageSize] = *opts.Limit
	}
	if opts.Offset != nil {
		// The remote protocol is token-based; offset is passed through
		// best-effort and may be ignored server-side.
		params["offset"] = *opts.Offset
	}
}

// whereFieldPattern matches the field names the raw-WHERE translator
// recognizes. The WHERE text from a template is carried as-is rather than
// parsed into an expression tree, so translation special-cases this fixed
// list; any other field in the text is accepted syntactically but produces
// no parameter.
var whereFieldPattern = regexp.MustCompile(`\b(projectId|status|assignees|assignee|dueDate)\b`)

// betweenPattern detects a BETWEEN immediately following a field reference.
var betweenPattern = regexp.MustCompile(`(?i)^\s*(?:=\s*)?between\b`)

// translateRawWhere scans the raw WHERE text for recognized field names and
// consumes positional arguments in the order the names appear. dueDate
// combined with BETWEEN consumes two arguments and emits a gte/lte pair;
// every other recognized field consumes one argument and emits an equality
// or membership parameter.
func translateRawWhere(where string, args []any, params Params) {
	matches := whereFieldPattern.FindAllStringIndex(where, -1)
	argIdx := 0
	for _, m := range matches {
		if argIdx >= len(args) {
			break
		}
		field := where[m[0]:m[1]]
		rest := where[m[1]:]
		switch field {
		case "dueDate":
			if betweenPattern.MatchString(rest) {
				if argIdx+1 >= len(args) {
					return
				}
				params["dueDate_gte"] = args[argIdx]
				params["dueDate_lte"] = args[argIdx+1]
				argIdx += 2
			} else {
				params["dueDate"] = args[argIdx]
				argIdx++
			}
		case "assignee", "assignees":
			params["assignees"] = args[argIdx]
			argIdx++
		default:
			params[field] = args[argIdx]
			argIdx++
		}
	}
}

// limitPattern captures the numeric LIMIT value of a template.
var limitPattern = regexp.MustCompile(`(?i)\blimit\s+(\d+)`)

// parseLimit extracts a LIMIT value from clause text, returning nil when
// absent or malformed.
func parseLimit(text string) *int {
	m := limitPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
