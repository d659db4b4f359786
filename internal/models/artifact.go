package models

// Artifact types.
const (
	ArtifactTypeDoc   = "doc"
	ArtifactTypePDF   = "pdf"
	ArtifactTypeLink  = "link"
	ArtifactTypeImage = "image"
	ArtifactTypeFile  = "file"
	ArtifactTypeHTML  = "html"
)

// Artifact is a named external reference attached to a task.
type Artifact struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// ArtifactWithTask is an artifact joined with the owning task's title and
// project, for cross-task artifact browsing.
type ArtifactWithTask struct {
	Artifact
	TaskTitle string `json:"task_title"`
	Project   string `json:"project"`
}
