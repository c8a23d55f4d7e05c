package rocketlane

// Member identifies a user referenced from another record.
type Member struct {
	UserID    int64  `json:"userId,omitempty"`
	EmailID   string `json:"emailId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Status is a workflow state, a numeric value with a display label.
type Status struct {
	Value int    `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// ProjectRef is a shallow reference to a project from another record.
type ProjectRef struct {
	ProjectID   int64  `json:"projectId,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}

// PhaseRef is a shallow reference to a phase from another record.
type PhaseRef struct {
	PhaseID   int64  `json:"phaseId,omitempty"`
	PhaseName string `json:"phaseName,omitempty"`
}

// FieldValue is one custom-field value attached to a record.
type FieldValue struct {
	FieldID    int64  `json:"fieldId,omitempty"`
	FieldLabel string `json:"fieldLabel,omitempty"`
	FieldValue any    `json:"fieldValue,omitempty"`
}

// Task is a unit of work inside a project phase.
type Task struct {
	TaskID          int64        `json:"taskId,omitempty"`
	TaskName        string       `json:"taskName,omitempty"`
	TaskDescription string       `json:"taskDescription,omitempty"`
	Type            string       `json:"type,omitempty"`
	Status          *Status      `json:"status,omitempty"`
	Progress        int          `json:"progress,omitempty"`
	StartDate       string       `json:"startDate,omitempty"`
	DueDate         string       `json:"dueDate,omitempty"`
	Effort          int          `json:"effortInMinutes,omitempty"`
	AtRisk          bool         `json:"atRisk,omitempty"`
	Assignees       []Member     `json:"assignees,omitempty"`
	Followers       []Member     `json:"followers,omitempty"`
	Project         *ProjectRef  `json:"project,omitempty"`
	Phase           *PhaseRef    `json:"phase,omitempty"`
	Fields          []FieldValue `json:"fields,omitempty"`
	CreatedAt       int64        `json:"createdAt,omitempty"`
	UpdatedAt       int64        `json:"updatedAt,omitempty"`
}

// Project is a customer onboarding or delivery project.
type Project struct {
	ProjectID    int64        `json:"projectId,omitempty"`
	ProjectName  string       `json:"projectName,omitempty"`
	Description  string       `json:"description,omitempty"`
	Status       *Status      `json:"status,omitempty"`
	Visibility   string       `json:"visibility,omitempty"`
	StartDate    string       `json:"startDate,omitempty"`
	DueDate      string       `json:"dueDate,omitempty"`
	Owner        *Member      `json:"owner,omitempty"`
	TeamMembers  []Member     `json:"teamMembers,omitempty"`
	CustomerName string       `json:"customerName,omitempty"`
	Fields       []FieldValue `json:"fields,omitempty"`
	Archived     bool         `json:"archived,omitempty"`
	CreatedAt    int64        `json:"createdAt,omitempty"`
	UpdatedAt    int64        `json:"updatedAt,omitempty"`
}

// User is an account member or customer contact.
type User struct {
	UserID    int64  `json:"userId,omitempty"`
	EmailID   string `json:"emailId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Type      string `json:"type,omitempty"`
	Active    bool   `json:"active,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// TimeEntry is a logged block of work against a project or task.
type TimeEntry struct {
	TimeEntryID  int64       `json:"timeEntryId,omitempty"`
	Date         string      `json:"date,omitempty"`
	Minutes      int         `json:"minutes,omitempty"`
	Billable     bool        `json:"billable,omitempty"`
	ActivityName string      `json:"activityName,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	Project      *ProjectRef `json:"project,omitempty"`
	Task         *TaskRef    `json:"task,omitempty"`
	User         *Member     `json:"user,omitempty"`
	CreatedAt    int64       `json:"createdAt,omitempty"`
}

// TaskRef is a shallow reference to a task from another record.
type TaskRef struct {
	TaskID   int64  `json:"taskId,omitempty"`
	TaskName string `json:"taskName,omitempty"`
}

// Phase is a stage of a project's plan.
type Phase struct {
	PhaseID   int64       `json:"phaseId,omitempty"`
	PhaseName string      `json:"phaseName,omitempty"`
	StartDate string      `json:"startDate,omitempty"`
	DueDate   string      `json:"dueDate,omitempty"`
	Status    *Status     `json:"status,omitempty"`
	Private   bool        `json:"private,omitempty"`
	Project   *ProjectRef `json:"project,omitempty"`
	CreatedAt int64       `json:"createdAt,omitempty"`
}

// Field is a custom field definition scoped to an object type.
type Field struct {
	FieldID      int64    `json:"fieldId,omitempty"`
	FieldLabel   string   `json:"fieldLabel,omitempty"`
	FieldType    string   `json:"fieldType,omitempty"`
	ObjectType   string   `json:"objectType,omitempty"`
	Private      bool     `json:"private,omitempty"`
	Enabled      bool     `json:"enabled,omitempty"`
	FieldOptions []string `json:"fieldOptions,omitempty"`
	CreatedAt    int64    `json:"createdAt,omitempty"`
}

// Space is a shared document area inside a project.
type Space struct {
	SpaceID   int64       `json:"spaceId,omitempty"`
	SpaceName string      `json:"spaceName,omitempty"`
	Project   *ProjectRef `json:"project,omitempty"`
	CreatedAt int64       `json:"createdAt,omitempty"`
}
