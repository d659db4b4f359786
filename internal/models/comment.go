package models

// Comment is a note on a task authored by either identity.
//
// notified is a one-bit read receipt: a human-authored comment starts at 0
// (the agent has not consumed it yet), an agent-authored comment starts at 1.
type Comment struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Notified  int    `json:"notified"`
	CreatedAt string `json:"created_at"`
}

// UnreadComment is a comment joined with its task title, the poll target for
// the agent heartbeat.
type UnreadComment struct {
	Comment
	TaskTitle string `json:"task_title"`
}
