package models

import "encoding/json"

// Opt is a three-state optional used in PATCH-style updates: a field can be
// absent from the payload (Set=false), present as JSON null (Null=true), or
// present with a value. Absent always means "no change"; what null means is
// up to the field (clear vs. keep).
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// ValueOr returns the carried value, or fallback when the field was absent
// or null.
func (o Opt[T]) ValueOr(fallback T) T {
	if !o.Set || o.Null {
		return fallback
	}
	return o.Value
}

// TaskPatch is a partial task update. Fields left out of the JSON payload
// keep their previous value. For start_time, end_time and project an explicit
// null clears the field; for the remaining fields null is treated the same as
// absent.
type TaskPatch struct {
	Title       Opt[string] `json:"title"`
	Description Opt[string] `json:"description"`
	Assignee    Opt[string] `json:"assignee"`
	DueDate     Opt[string] `json:"due_date"`
	Priority    Opt[string] `json:"priority"`
	Status      Opt[string] `json:"status"`
	StartTime   Opt[string] `json:"start_time"`
	EndTime     Opt[string] `json:"end_time"`
	AllDay      Opt[bool]   `json:"all_day"`
	Project     Opt[string] `json:"project"`
}

// SubtaskPatch is a partial subtask update with keep-on-absent semantics.
type SubtaskPatch struct {
	Title     Opt[string] `json:"title"`
	Completed Opt[bool]   `json:"completed"`
	SortOrder Opt[int]    `json:"sort_order"`
}
