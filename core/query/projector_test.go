package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_StrictWhitelist(t *testing.T) {
	task := Document{
		"taskId":   1,
		"taskName": "Kickoff call",
		"progress": 80,
		"atRisk":   true,
		"project": Document{
			"projectId":   412,
			"projectName": "Acme onboarding",
		},
	}

	got := Project(task, Selection{
		"taskName": true,
		"project":  Selection{"projectName": true},
	})

	assert.Equal(t, Document{
		"taskName": "Kickoff call",
		"project":  Document{"projectName": "Acme onboarding"},
	}, got)
}

func TestProject_AbsentFieldsOmitted(t *testing.T) {
	got := Project(Document{"taskId": 1}, Selection{
		"taskId":  true,
		"dueDate": true,
		"project": Selection{"projectName": true},
	})

	// No null-filling: missing fields simply do not appear.
	assert.Equal(t, Document{"taskId": 1}, got)
}

func TestProject_NestedTreeAppliesElementWise(t *testing.T) {
	task := Document{
		"taskId": 1,
		"assignees": []any{
			Document{"userId": 7, "emailId": "ana@example.com", "role": "admin"},
			Document{"userId": 9, "emailId": "bo@example.com", "role": "member"},
		},
	}

	got := Project(task, Selection{
		"assignees": Selection{"emailId": true},
	})

	assert.Equal(t, Document{
		"assignees": []any{
			Document{"emailId": "ana@example.com"},
			Document{"emailId": "bo@example.com"},
		},
	}, got)
}

func TestProject_FalseLeafExcludes(t *testing.T) {
	got := Project(Document{"a": 1, "b": 2}, Selection{"a": true, "b": false})
	assert.Equal(t, Document{"a": 1}, got)
}

func TestProject_NilSelectionPassesThrough(t *testing.T) {
	doc := Document{"a": 1}
	assert.Equal(t, any(doc), Project(doc, nil))
}

func TestProject_ScalarUnderNestedTreePassesThrough(t *testing.T) {
	// A nested tree against a scalar value cannot recurse; the value is
	// kept as-is rather than dropped.
	got := Project(Document{"status": "active"}, Selection{
		"status": Selection{"label": true},
	})
	assert.Equal(t, Document{"status": "active"}, got)
}

func TestProject_PureNoSourceMutation(t *testing.T) {
	src := Document{"a": 1, "nested": Document{"x": 1, "y": 2}}
	_ = Project(src, Selection{"nested": Selection{"x": true}})

	assert.Equal(t, Document{"a": 1, "nested": Document{"x": 1, "y": 2}}, src)
}

func TestProjectDocuments(t *testing.T) {
	docs := []Document{
		{"taskId": 1, "taskName": "A"},
		{"taskId": 2, "taskName": "B"},
	}

	got := ProjectDocuments(docs, Selection{"taskId": true})
	assert.Equal(t, []Document{{"taskId": 1}, {"taskId": 2}}, got)
}

func TestProject_PlainMapTreeAccepted(t *testing.T) {
	// Selection trees decoded from JSON arrive as map[string]any.
	got := Project(Document{
		"taskName": "Kickoff",
		"project":  Document{"projectId": 412, "projectName": "Acme"},
	}, Selection{
		"project": map[string]any{"projectName": true},
	})

	assert.Equal(t, Document{
		"project": Document{"projectName": "Acme"},
	}, got)
}

func TestSelectionFromFields(t *testing.T) {
	assert.Equal(t, Selection{"a": true, "b": true}, SelectionFromFields("a", "b"))
}
