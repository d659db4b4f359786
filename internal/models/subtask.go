package models

// Subtask is a checklist item owned by exactly one task. New subtasks append
// at max(sort_order)+1; completed mirrors the 0/1 integer column.
type Subtask struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
}
