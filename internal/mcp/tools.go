package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
)

type tools struct {
	store  Store
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *tools) {
	// Projects
	addTool(server, t.logger, "create_project", "Create a new project to group ideas", t.createProject)
	addTool(server, t.logger, "rename_project", "Rename a project; its creation time is kept", t.renameProject)
	addTool(server, t.logger, "delete_project", "Delete a project and all of its content", t.deleteProject)
	addTool(server, t.logger, "get_project", "Get a project by id", t.getProject)
	addTool(server, t.logger, "list_projects", "List all projects, newest first, with content counts", t.listProjects)

	// Content
	addTool(server, t.logger, "add_content", "Add an idea with text and/or a file to a project", t.addContent)
	addTool(server, t.logger, "update_content", "Edit an idea; omitted fields are left unchanged", t.updateContent)
	addTool(server, t.logger, "delete_content", "Delete an idea; deleting a missing idea succeeds", t.deleteContent)
	addTool(server, t.logger, "get_content", "Get a single idea by id", t.getContent)
	addTool(server, t.logger, "list_content", "List a project's ideas, newest first", t.listContent)

	// Stats
	addTool(server, t.logger, "get_stats", "Get project and idea totals and the number of recently active projects", t.getStats)
}

// addTool registers fn as a tool. Results are returned as JSON text and
// failures as tool errors carrying an APIError body.
func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn func(context.Context, In) (any, error)) {
	sdkmcp.AddTool[In, any](server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, in)
			if err != nil {
				apiErr := MapError(err)
				logger.Warn("tool failed", "tool", name, "code", apiErr.Code, "error", err)
				return errorResult(apiErr), nil, nil
			}
			res, err := jsonResult(out)
			if err != nil {
				return nil, nil, err
			}
			return res, nil, nil
		})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, err := json.Marshal(apiErr)
	if err != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func (t *tools) createProject(ctx context.Context, p CreateProjectParams) (any, error) {
	proj, err := t.store.CreateProject(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(proj), nil
}

func (t *tools) renameProject(ctx context.Context, p RenameProjectParams) (any, error) {
	proj, err := t.store.RenameProject(ctx, p.ID, p.Name)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(proj), nil
}

func (t *tools) deleteProject(ctx context.Context, p ProjectIDParams) (any, error) {
	if err := t.store.DeleteProject(ctx, p.ID); err != nil {
		return nil, err
	}
	return DeleteResponse{ID: p.ID, Deleted: true}, nil
}

func (t *tools) getProject(ctx context.Context, p ProjectIDParams) (any, error) {
	proj, err := t.store.GetProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(proj), nil
}

func (t *tools) listProjects(ctx context.Context, _ ListProjectsParams) (any, error) {
	summaries, err := t.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	resp := ListProjectsResponse{Projects: make([]ProjectSummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Projects = append(resp.Projects, ProjectSummaryResponse{
			ID:             s.ID,
			Name:           s.Name,
			CreatedAt:      s.CreatedAt,
			ContentCount:   s.ContentCount,
			LastActivityAt: s.LastActivityAt,
		})
	}
	return resp, nil
}

func (t *tools) addContent(ctx context.Context, p AddContentParams) (any, error) {
	file, err := decodeFile(p.File)
	if err != nil {
		return nil, err
	}
	c, err := t.store.AddContent(ctx, p.ProjectID, p.Text, file)
	if err != nil {
		return nil, err
	}
	return toContentResponse(c, false), nil
}

func (t *tools) updateContent(ctx context.Context, p UpdateContentParams) (any, error) {
	file, err := decodeFile(p.File)
	if err != nil {
		return nil, err
	}
	c, err := t.store.UpdateContent(ctx, p.ID, content.UpdateRequest{
		Text:      p.Text,
		File:      file,
		ClearFile: p.ClearFile,
	})
	if err != nil {
		return nil, err
	}
	return toContentResponse(c, false), nil
}

func (t *tools) deleteContent(ctx context.Context, p ContentIDParams) (any, error) {
	if err := t.store.DeleteContent(ctx, p.ID); err != nil {
		return nil, err
	}
	return DeleteResponse{ID: p.ID, Deleted: true}, nil
}

func (t *tools) getContent(ctx context.Context, p GetContentParams) (any, error) {
	c, err := t.store.GetContent(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toContentResponse(c, p.IncludeFileContent), nil
}

func (t *tools) listContent(ctx context.Context, p ListContentParams) (any, error) {
	items, err := t.store.ListContentForProject(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	resp := ListContentResponse{ProjectID: p.ProjectID, Items: make([]ContentResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, toContentResponse(&items[i], p.IncludeFileContent))
	}
	return resp, nil
}

func (t *tools) getStats(ctx context.Context, p GetStatsParams) (any, error) {
	s, err := t.store.Stats(ctx, p.WindowDays)
	if err != nil {
		return nil, err
	}
	storeID, err := t.store.StoreID(ctx)
	if err != nil {
		return nil, err
	}
	return StatsResponse{
		Projects:               s.Projects,
		Contents:               s.Contents,
		RecentlyActiveProjects: s.RecentlyActive,
		WindowDays:             s.WindowDays,
		StoreID:                storeID,
	}, nil
}

func decodeFile(f *FileParams) (*content.FilePayload, error) {
	if f == nil {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(f.ContentBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: file content is not valid base64: %v", repository.ErrValidation, err)
	}
	return &content.FilePayload{
		Name:     f.Name,
		MimeType: f.MimeType,
		Content:  data,
	}, nil
}

func toProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toContentResponse(c *content.Content, withBytes bool) ContentResponse {
	resp := ContentResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.File != nil {
		resp.File = &FileResponse{
			Name:      c.File.Name,
			MimeType:  c.File.MimeType,
			SizeBytes: c.File.SizeBytes,
			Extension: c.File.Extension,
			IsImage:   c.File.IsImage,
		}
		if withBytes {
			resp.File.ContentBase64 = base64.StdEncoding.EncodeToString(c.File.Content)
		}
	}
	return resp
}
