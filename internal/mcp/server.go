package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/domain/stats"
)

// Store defines the persistence operations exposed as tools.
type Store interface {
	CreateProject(ctx context.Context, name string) (*project.Project, error)
	RenameProject(ctx context.Context, id int64, name string) (*project.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	GetProject(ctx context.Context, id int64) (*project.Project, error)
	ListProjects(ctx context.Context) ([]project.ProjectSummary, error)

	AddContent(ctx context.Context, projectID int64, text string, file *content.FilePayload) (*content.Content, error)
	UpdateContent(ctx context.Context, id int64, req content.UpdateRequest) (*content.Content, error)
	DeleteContent(ctx context.Context, id int64) error
	GetContent(ctx context.Context, id int64) (*content.Content, error)
	ListContentForProject(ctx context.Context, projectID int64) ([]content.Content, error)

	Stats(ctx context.Context, windowDays int) (stats.Stats, error)
	StoreID(ctx context.Context) (string, error)
}

// Config contains server configuration.
type Config struct {
	Store   Store
	Logger  *slog.Logger
	Version string
}

// NewServer creates and configures an MCP server with all tools and resources.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "ideabox",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{store: cfg.Store, logger: cfg.Logger})

	return server
}
