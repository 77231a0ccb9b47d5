package content

import "time"

// CounterName is the identity counter that issues content IDs.
const CounterName = "contentId"

// FilePayload is an attachment carried by a content item
type FilePayload struct {
	Name      string `json:"name" validate:"required,max=255"`
	MimeType  string `json:"mime_type" validate:"omitempty,max=255"`
	SizeBytes int64  `json:"size_bytes" validate:"gte=0"`
	Content   []byte `json:"content"`
	Extension string `json:"extension,omitempty" validate:"omitempty,max=32"`
	IsImage   bool   `json:"is_image"`
}

// Content is a single idea: text, an attachment, or both, owned by one project
type Content struct {
	ID        int64        `json:"id"`
	ProjectID int64        `json:"project_id"`
	Text      string       `json:"text,omitempty"`
	File      *FilePayload `json:"file,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

// Stamp is the attachment-free projection of a content row used for aggregation
type Stamp struct {
	ID        int64
	ProjectID int64
	CreatedAt time.Time
}

// UpdateRequest describes a partial content edit. Nil fields are left as they are.
// ClearFile removes the attachment; combining it with File is rejected.
type UpdateRequest struct {
	Text      *string
	File      *FilePayload
	ClearFile bool
}

func (r UpdateRequest) empty() bool {
	return r.Text == nil && r.File == nil && !r.ClearFile
}
