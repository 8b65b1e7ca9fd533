// Package mcptools exposes the portfolio assistant as MCP tools so that
// other agents can query it over stdio.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/assistant"
	"cosmic-portfolio/internal/knowledge"
)

type AskParams struct {
	Message string `json:"message" mcp:"question about the portfolio owner, skills or projects"`
}

type ListProjectsParams struct {
	Category string `json:"category,omitempty" mcp:"optional category: data-analytics, ml, deep-learning or python-oop"`
}

type FindProjectParams struct {
	Name string `json:"name" mcp:"part of the project name, case-insensitive"`
}

// Tools holds the handlers registered on the MCP server.
type Tools struct {
	engine *assistant.Engine
	logger *zap.Logger
}

func New(engine *assistant.Engine, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{engine: engine, logger: logger.Named("mcp")}
}

// NewServer registers ask_portfolio, list_projects and find_project.
func (t *Tools) NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cosmic-portfolio-mcp",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_portfolio",
		Description: "Answers a question with the portfolio assistant's canned replies",
	}, t.AskPortfolio)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "Lists portfolio projects, optionally filtered by category",
	}, t.ListProjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_project",
		Description: "Finds the first project whose name contains the query",
	}, t.FindProject)

	return server
}

// Serve runs the tools on stdin/stdout until ctx is done.
func (t *Tools) Serve(ctx context.Context, version string) error {
	t.logger.Info("mcp server starting on stdio")
	return t.NewServer(version).Run(ctx, mcp.NewStdioTransport())
}

func (t *Tools) AskPortfolio(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AskParams]) (*mcp.CallToolResultFor[any], error) {
	msg := strings.TrimSpace(params.Arguments.Message)
	if msg == "" {
		return errorResult("message is required"), nil
	}
	r := t.engine.Reply(msg)
	t.logger.Debug("ask_portfolio", zap.String("directive", r.Directive.ID()))
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: r.Text}},
		Meta:    map[string]any{"directive": r.Directive.ID()},
	}, nil
}

func (t *Tools) ListProjects(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListProjectsParams]) (*mcp.CallToolResultFor[any], error) {
	kb := t.engine.Knowledge()
	projects := kb.Projects()
	title := "All projects"
	if raw := strings.TrimSpace(params.Arguments.Category); raw != "" {
		cat, err := knowledge.ParseCategory(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		projects = kb.ProjectsByCategory(cat)
		title = cat.Title()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%d)\n", title, len(projects))
	for _, p := range projects {
		b.WriteString(projectLine(p))
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
		Meta:    map[string]any{"count": len(projects)},
	}, nil
}

func (t *Tools) FindProject(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FindProjectParams]) (*mcp.CallToolResultFor[any], error) {
	p, ok := t.engine.Knowledge().FindProjectByName(params.Arguments.Name)
	if !ok {
		return errorResult(fmt.Sprintf("no project matches %q", params.Arguments.Name)), nil
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: projectCard(p)}},
	}, nil
}

func projectLine(p knowledge.Project) string {
	if p.Kind != "" {
		return fmt.Sprintf("- %s (%s)\n", p.Name, p.Kind)
	}
	return fmt.Sprintf("- %s\n", p.Name)
}

func projectCard(p knowledge.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", p.Name)
	if p.Kind != "" {
		fmt.Fprintf(&b, "Type: %s\n", p.Kind)
	}
	fmt.Fprintf(&b, "%s\n", p.Description)
	if len(p.Tech) > 0 {
		fmt.Fprintf(&b, "Tech: %s\n", strings.Join(p.Tech, ", "))
	}
	if p.Stats != "" {
		fmt.Fprintf(&b, "Stats: %s\n", p.Stats)
	}
	if p.Links.Repo != "" {
		fmt.Fprintf(&b, "Repo: %s\n", p.Links.Repo)
	}
	if p.Links.LiveDemo != "" {
		fmt.Fprintf(&b, "Demo: %s\n", p.Links.LiveDemo)
	}
	return b.String()
}

func errorResult(msg string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "❌ " + msg}},
	}
}
