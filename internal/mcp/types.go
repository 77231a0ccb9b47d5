package mcp

import (
	"time"
)

type CreateProjectParams struct {
	Name string `json:"name" jsonschema:"project display name"`
}

type RenameProjectParams struct {
	ID   int64  `json:"id" jsonschema:"project id"`
	Name string `json:"name" jsonschema:"new display name"`
}

type ProjectIDParams struct {
	ID int64 `json:"id" jsonschema:"project id"`
}

type ListProjectsParams struct{}

// FileParams carries an attachment. Content is base64 encoded.
type FileParams struct {
	Name          string `json:"name" jsonschema:"file name including extension"`
	MimeType      string `json:"mime_type,omitempty" jsonschema:"mime type; detected from the bytes when omitted"`
	ContentBase64 string `json:"content_base64" jsonschema:"file bytes as standard base64"`
}

type AddContentParams struct {
	ProjectID int64       `json:"project_id" jsonschema:"owning project id"`
	Text      string      `json:"text,omitempty" jsonschema:"idea text; required unless a file is attached"`
	File      *FileParams `json:"file,omitempty" jsonschema:"optional attachment"`
}

type UpdateContentParams struct {
	ID        int64       `json:"id" jsonschema:"content id"`
	Text      *string     `json:"text,omitempty" jsonschema:"replacement text; omit to keep"`
	File      *FileParams `json:"file,omitempty" jsonschema:"replacement attachment; omit to keep"`
	ClearFile bool        `json:"clear_file,omitempty" jsonschema:"remove the current attachment"`
}

type GetContentParams struct {
	ID                 int64 `json:"id" jsonschema:"content id"`
	IncludeFileContent bool  `json:"include_file_content,omitempty" jsonschema:"return attachment bytes as base64"`
}

type ContentIDParams struct {
	ID int64 `json:"id" jsonschema:"content id"`
}

type ListContentParams struct {
	ProjectID          int64 `json:"project_id" jsonschema:"project id"`
	IncludeFileContent bool  `json:"include_file_content,omitempty" jsonschema:"return attachment bytes as base64"`
}

type GetStatsParams struct {
	WindowDays int `json:"window_days,omitempty" jsonschema:"recent activity window in days; server default when omitted"`
}

type ProjectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectSummaryResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	ContentCount   int       `json:"content_count"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
}

type FileResponse struct {
	Name          string `json:"name"`
	MimeType      string `json:"mime_type"`
	SizeBytes     int64  `json:"size_bytes"`
	Extension     string `json:"extension,omitempty"`
	IsImage       bool   `json:"is_image"`
	ContentBase64 string `json:"content_base64,omitempty"`
}

type ContentResponse struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"project_id"`
	Text      string        `json:"text,omitempty"`
	File      *FileResponse `json:"file,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

type ListContentResponse struct {
	ProjectID int64             `json:"project_id"`
	Items     []ContentResponse `json:"items"`
}

type DeleteResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

type StatsResponse struct {
	Projects               int    `json:"projects"`
	Contents               int    `json:"contents"`
	RecentlyActiveProjects int    `json:"recently_active_projects"`
	WindowDays             int    `json:"window_days"`
	StoreID                string `json:"store_id"`
}
