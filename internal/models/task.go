package models

// Assignee identities. The household has exactly two: the human and the agent.
const (
	AssigneeHuman = "zhilong"
	AssigneeAgent = "friday"
)

// Task status enum. Pending tasks await approval; approve/reject are the only
// named transitions, any status may also be set directly via update.
const (
	TaskStatusPending    = "pending"
	TaskStatusApproved   = "approved"
	TaskStatusRejected   = "rejected"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work. Timestamps and dates are stored as SQLite TEXT
// (datetime('now') / ISO dates) and surfaced verbatim; all_day mirrors the
// 0/1 integer column so the JSON matches the wire format clients expect.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignee    string  `json:"assignee"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	AllDay      int     `json:"all_day"`
	Project     string  `json:"project"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TaskWithDetail is the list-view shape: the task plus its subtasks and
// per-task counts.
type TaskWithDetail struct {
	Task
	Subtasks         []*Subtask `json:"subtasks"`
	SubtaskCount     int        `json:"subtask_count"`
	SubtaskCompleted int        `json:"subtask_completed"`
	CommentCount     int        `json:"comment_count"`
	ArtifactCount    int        `json:"artifact_count"`
}

// TaskFilter narrows task listings. Zero values mean "no constraint".
type TaskFilter struct {
	Assignee string
	Status   string
	DueFrom  string
	DueTo    string
}

// NewTaskFields holds a creation payload after defaulting.
type NewTaskFields struct {
	Title       string
	Description string
	Assignee    string
	DueDate     *string
	Priority    string
	Status      string
	StartTime   *string
	EndTime     *string
	AllDay      int
	Project     string
}

// DefaultStatus returns the status a new task gets when none was supplied:
// agent tasks start pending (awaiting approval), human tasks start approved.
func DefaultStatus(assignee string) string {
	if assignee == AssigneeAgent {
		return TaskStatusPending
	}
	return TaskStatusApproved
}
