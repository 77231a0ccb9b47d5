package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ideabox stores ideas locally, grouped into projects.

Model:
- Project: a named container. IDs are positive integers handed out in order and never reused.
- Content: one idea inside a project. It has text, an attached file, or both.
- Deleting a project deletes all of its content in the same step.

Typical flow:
1) list_projects to find where an idea belongs, or create_project.
2) add_content with project_id and text and/or file (file bytes base64 encoded).
3) update_content for edits; only the fields you send change.
4) get_stats for totals and how many projects were active recently.

Errors come back as tool errors with a JSON body {code, message, recovery_hint}.
Codes: VALIDATION_ERROR, NOT_FOUND, STORAGE_ERROR, CONSISTENCY_ERROR.

Docs:
- ideabox://docs/attachments
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "ideabox://docs/attachments",
		Name:        "docs_attachments",
		Title:       "ideabox attachments",
		Description: "How files are attached to ideas and what metadata is derived.",
		Content: `# Attachments

Send a file as {"name": "...", "content_base64": "..."} in add_content or update_content.

- size_bytes is always computed from the decoded bytes.
- mime_type is detected from the bytes when you leave it out.
- extension comes from the file name, or from the detected type when the name has none.
- is_image is true for image/* types.
- Files larger than the configured limit are rejected with VALIDATION_ERROR.

get_content and list_content omit file bytes unless include_file_content is true.

To remove a file send clear_file: true. An idea must keep either text or a file,
so clearing the file of an idea with no text is rejected.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
