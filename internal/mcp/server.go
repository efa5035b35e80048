package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/output"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/search"
	"github.com/Aman-CERP/physref/internal/store"
	"github.com/Aman-CERP/physref/internal/telemetry"
	"github.com/Aman-CERP/physref/internal/ui"
	"github.com/Aman-CERP/physref/pkg/version"
)

// Search limits.
const (
	DefaultLimit   = 10
	MaxLimit       = 50
	MaxQueryLength = 200
)

// Server is the MCP server. It exposes the reference tables as the search
// and list_domains tools plus CSV and metrics resources.
type Server struct {
	mcp     *mcp.Server
	catalog *store.Catalog
	engine  *search.Engine
	// images resolves portraits; nil when images are disabled.
	images  *search.Engine
	metrics *telemetry.QueryMetrics
	logger  *slog.Logger

	resources map[string]registeredResource
}

type registeredResource struct {
	info ResourceInfo
	read resourceReader
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// ResourceInfo contains information about a resource.
type ResourceInfo struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// ResourceContent contains the content of a resource.
type ResourceContent struct {
	URI      string
	Content  string
	MIMEType string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithImageEngine sets the engine used when a client asks for images.
func WithImageEngine(e *search.Engine) ServerOption {
	return func(s *Server) {
		s.images = e
	}
}

// WithMetrics exposes m as the metrics resource. The engines should record
// into the same collector.
func WithMetrics(m *telemetry.QueryMetrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

var tools = []ToolInfo{
	{
		Name: "search",
		Description: "Search one physics reference table (formulas, constants, scientists, dimensions) " +
			"by case-insensitive substring. An empty query lists the whole table. " +
			"Math is returned as LaTeX between $$ delimiters.",
	},
	{
		Name:        "list_domains",
		Description: "List the reference tables with record counts, load status and the fields each search matches against.",
	},
}

// NewServer creates a new MCP server over catalog.
func NewServer(catalog *store.Catalog, engine *search.Engine, opts ...ServerOption) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if engine == nil {
		return nil, errors.New("search engine is required")
	}

	s := &Server{
		catalog:   catalog,
		engine:    engine,
		logger:    slog.Default(),
		resources: make(map[string]registeredResource),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    version.Name,
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	s.registerTableResources()
	if s.metrics != nil {
		s.registerMetricsResource()
	}

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return version.Name, version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	out := make([]ToolInfo, len(tools))
	copy(out, tools)
	return out
}

// CallTool invokes a tool by name with JSON-style arguments, the way a
// client request would.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "search":
		var in SearchInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		_, out, err := s.search(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	case "list_domains":
		_, out := s.listDomains()
		return out, nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func decodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(err.Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// search runs the search tool and returns its markdown and structured
// output.
func (s *Server) search(ctx context.Context, in SearchInput) (string, SearchOutput, error) {
	start := time.Now()
	requestID := generateRequestID()

	domain, ok := record.ParseDomain(in.Domain)
	if !ok {
		return "", SearchOutput{}, MapError(amerrors.UnknownDomainError(in.Domain))
	}
	if utf8.RuneCountInString(in.Query) > MaxQueryLength {
		return "", SearchOutput{}, MapError(amerrors.New(amerrors.ErrCodeQueryTooLong,
			fmt.Sprintf("query longer than %d characters", MaxQueryLength), nil))
	}
	limit := clampLimit(in.Limit, DefaultLimit, 1, MaxLimit)

	useImages := in.IncludeImages && s.images != nil
	engine := s.engine
	if useImages {
		engine = s.images
	}

	s.logger.Info("mcp_search_started",
		slog.String("request_id", requestID),
		slog.String("domain", domain.String()),
		slog.String("query", in.Query),
		slog.Int("limit", limit),
		slog.Bool("images", useImages))

	full := engine.SearchLimit(ctx, s.catalog.Store(domain), in.Query, limit)
	res := output.Limit(full, limit)
	hint := engine.Hint(full)

	out := ToSearchOutput(res, full.Count, hint, in.Details)
	var notice string
	if err := s.catalog.NoticeFor(domain); err != nil {
		notice = amerrors.FormatNotice(err)
		out.Warnings = append(out.Warnings, notice)
	}
	if in.IncludeImages && s.images == nil && record.SchemaFor(domain).Image != "" {
		out.Warnings = append(out.Warnings, "images are disabled on this server")
	}

	s.logger.Info("mcp_search_completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("result_count", res.Count),
		slog.Int("total", full.Count))

	return FormatSearchResult(res, full.Count, hint, in.Details, notice), out, nil
}

// listDomains runs the list_domains tool.
func (s *Server) listDomains() (string, ListDomainsOutput) {
	statuses := ui.DomainStatuses(s.catalog)
	out := ListDomainsOutput{Domains: make([]DomainOutput, 0, len(statuses))}
	for i, st := range statuses {
		d := record.Domains[i]
		schema := record.SchemaFor(d)
		out.Domains = append(out.Domains, DomainOutput{
			Name:         st.Domain,
			Title:        d.Title(),
			Records:      st.Records,
			Status:       st.Status,
			Notice:       st.Notice,
			SearchFields: schema.Search,
			HasImages:    schema.Image != "",
		})
	}
	return FormatDomains(out.Domains), out
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpSearchHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpListDomainsHandler)
	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

// mcpSearchHandler is the MCP SDK handler for the search tool.
func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	md, out, err := s.search(ctx, input)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return textResult(md), out, nil
}

// mcpListDomainsHandler is the MCP SDK handler for the list_domains tool.
func (s *Server) mcpListDomainsHandler(_ context.Context, _ *mcp.CallToolRequest, _ ListDomainsInput) (
	*mcp.CallToolResult,
	ListDomainsOutput,
	error,
) {
	md, out := s.listDomains()
	return textResult(md), out, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ListResources returns all registered resources.
func (s *Server) ListResources() []ResourceInfo {
	out := make([]ResourceInfo, 0, len(s.resources))
	for _, d := range record.Domains {
		if r, ok := s.resources[TableURI(d)]; ok {
			out = append(out, r.info)
		}
	}
	if r, ok := s.resources[MetricsURI]; ok {
		out = append(out, r.info)
	}
	return out
}

// ReadResource reads a resource by URI.
func (s *Server) ReadResource(ctx context.Context, uri string) (*ResourceContent, error) {
	r, ok := s.resources[uri]
	if !ok {
		return nil, NewResourceNotFoundError(uri)
	}
	text, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	return &ResourceContent{URI: uri, Content: text, MIMEType: r.info.MIMEType}, nil
}

// Serve runs the server on the given transport until ctx is canceled or
// the client disconnects.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("mcp_server_starting", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("mcp_server_stopped")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// clampLimit returns def for v <= 0, otherwise v bounded to [lo, hi].
func clampLimit(v, def, lo, hi int) int {
	if v <= 0 {
		return def
	}
	return min(max(v, lo), hi)
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
