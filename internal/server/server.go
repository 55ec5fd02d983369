package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/groundviz/internal/config"
	"github.com/ironsheep/groundviz/internal/imaging"
	"github.com/ironsheep/groundviz/internal/palette"
	"github.com/ironsheep/groundviz/internal/render"
)

// Name and Version identify the server during the initialize handshake.
var (
	Name    = "groundviz"
	Version = "dev"
)

// defaultGridStep is the grid spacing, in model units, used when a render
// request asks for a grid and the configuration does not set one.
const defaultGridStep = 10

// Server handles MCP protocol communication
type Server struct {
	cfg          *config.Config
	cache        *imaging.ImageCache
	palette      *palette.Palette
	renderer     *render.Renderer
	gridRenderer *render.Renderer
	logger       *log.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server for cfg. A nil cfg uses config.Default(); a nil logger
// uses the default charm logger.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}

	pal, err := palette.New(cfg.Palette)
	if err != nil {
		return nil, err
	}

	cache := imaging.NewImageCache()
	renderer, err := cfg.NewRenderer(cache)
	if err != nil {
		return nil, err
	}

	gridCfg := *cfg
	if gridCfg.GridStep == 0 {
		gridCfg.GridStep = defaultGridStep
	}
	gridRenderer, err := gridCfg.NewRenderer(cache)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:          cfg,
		cache:        cache,
		palette:      pal,
		renderer:     renderer,
		gridRenderer: gridRenderer,
		logger:       logger,
	}, nil
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error("failed to parse request", "err", err)
			continue
		}

		s.logger.Debug("request", "method", req.Method, "id", req.ID)
		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "err", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": Version,
			},
		},
	}
}
