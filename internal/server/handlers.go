package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/imaging"
	"github.com/ironsheep/groundviz/internal/layout"
	"github.com/ironsheep/groundviz/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "annotation_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "annotation_render":
		return s.handleAnnotationRender(args)
	case "annotation_crop":
		return s.handleAnnotationCrop(args)
	case "annotation_parse":
		return s.handleAnnotationParse(args)
	case "annotation_mask_region":
		return s.handleAnnotationMaskRegion(args)
	case "palette_list":
		return s.handlePaletteList()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	return json.Unmarshal(args, v)
}

// === Rendering Handlers ===

type annotationRenderArgs struct {
	Text      string `json:"text"`
	ImagePath string `json:"image_path"`
	SaveDir   string `json:"save_dir"`
	Grid      bool   `json:"grid"`
}

// RenderResult is the output of annotation_render.
type RenderResult struct {
	Mode        annotation.Mode      `json:"mode"`
	Entities    []annotation.Entity  `json:"entities"`
	Labels      []layout.PlacedLabel `json:"labels"`
	ColoredText string               `json:"colored_text"`
	Width       int                  `json:"width,omitempty"`
	Height      int                  `json:"height,omitempty"`
	ImageBase64 string               `json:"image_base64,omitempty"`
	MimeType    string               `json:"mime_type,omitempty"`
	ImagePath   string               `json:"image_path,omitempty"`
}

func (s *Server) handleAnnotationRender(args json.RawMessage) (interface{}, error) {
	var a annotationRenderArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ImagePath == "" {
		return nil, errors.New("image_path is required")
	}

	renderer := s.renderer
	if a.Grid {
		renderer = s.gridRenderer
	}

	res, err := renderer.Visualize(a.Text, imaging.FromPath(a.ImagePath))
	if err != nil {
		return nil, err
	}

	out := &RenderResult{
		Mode:        res.Mode,
		Entities:    res.Entities,
		Labels:      res.Labels,
		ColoredText: res.Text,
	}
	if res.Image == nil {
		return out, nil
	}

	dims := imaging.DimensionsOf(res.Image)
	out.Width, out.Height = dims.Width, dims.Height

	if a.SaveDir != "" {
		path, err := imaging.SaveTemp(res.Image, a.SaveDir, s.cfg.Extension())
		if err != nil {
			return nil, err
		}
		out.ImagePath = path
		return out, nil
	}

	enc, err := imaging.EncodePNG(res.Image)
	if err != nil {
		return nil, err
	}
	out.ImageBase64 = enc.ImageBase64
	out.MimeType = enc.MimeType
	return out, nil
}

type annotationCropArgs struct {
	Text      string  `json:"text"`
	ImagePath string  `json:"image_path"`
	Entity    string  `json:"entity"`
	Scale     float64 `json:"scale"`
}

// BoxCrop is one cropped box.
type BoxCrop struct {
	Entity string         `json:"entity"`
	Index  int            `json:"index"`
	Box    annotation.Box `json:"box"`
	*imaging.EncodedImage
}

func (s *Server) handleAnnotationCrop(args json.RawMessage) (interface{}, error) {
	var a annotationCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := imaging.FromPath(a.ImagePath).Decode(s.cache)
	if err != nil {
		return nil, err
	}
	display := s.renderer.Display(img)
	dims := imaging.DimensionsOf(display)
	res := s.renderer.Parse(a.Text, dims.Width, dims.Height)

	crops := []BoxCrop{}
	for _, e := range res.Entities {
		if a.Entity != "" && palette.Key(e.Name) != palette.Key(a.Entity) {
			continue
		}
		for i, box := range e.Boxes {
			enc, err := imaging.Crop(display, box.Rect(), a.Scale)
			if err != nil {
				s.logger.Debug("skipping box outside image", "entity", e.Name, "box", box, "err", err)
				continue
			}
			crops = append(crops, BoxCrop{Entity: e.Name, Index: i, Box: box, EncodedImage: enc})
		}
	}

	return map[string]interface{}{
		"mode":  res.Mode,
		"crops": crops,
	}, nil
}

// === Parsing Handlers ===

type annotationParseArgs struct {
	Text      string `json:"text"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImagePath string `json:"image_path"`
}

func (s *Server) handleAnnotationParse(args json.RawMessage) (interface{}, error) {
	var a annotationParseArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	if a.ImagePath != "" {
		img, err := s.cache.Load(a.ImagePath)
		if err != nil {
			return nil, err
		}
		dims := imaging.DimensionsOf(s.renderer.Display(img))
		a.Width, a.Height = dims.Width, dims.Height
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", a.Width, a.Height)
	}

	return s.renderer.Parse(a.Text, a.Width, a.Height), nil
}

type annotationMaskRegionArgs struct {
	MaskPath string `json:"mask_path"`
	Message  string `json:"message"`
}

func (s *Server) handleAnnotationMaskRegion(args json.RawMessage) (interface{}, error) {
	var a annotationMaskRegionArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	mask, err := s.cache.Load(a.MaskPath)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"region": annotation.MaskToRegion(mask),
	}
	if a.Message != "" {
		out["message"] = annotation.AppendRegion(a.Message, mask)
	}
	return out, nil
}

// === Palette Handlers ===

func (s *Server) handlePaletteList() (interface{}, error) {
	return map[string]interface{}{
		"categories":         s.palette.Entries(),
		"default_box_color":  palette.DefaultBoxColor.Hex(),
		"default_text_color": palette.DefaultTextColor.Hex(),
	}, nil
}
