package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Rendering
		{
			Name: "annotation_render",
			Description: "Draw the bounding boxes embedded in a model answer onto an image. " +
				"Understands <p>phrase</p>{<x0><y0><x1><y1>} markup with coordinates on a 0-100 grid, " +
				"chained groups joined by <delim>, and bare four-number boxes. Returns the annotated image " +
				"(base64 PNG, or a file path when save_dir is set), the parsed entities, the placed labels, " +
				"and the answer text with markup replaced by colored spans.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Model answer containing annotation markup",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image the answer refers to",
					},
					"save_dir": map[string]interface{}{
						"type":        "string",
						"description": "Optional directory to write the rendered image into instead of returning it inline",
					},
					"grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Overlay the model coordinate grid, labelled in model units",
						"default":     false,
					},
				},
				"required": []string{"text", "image_path"},
			},
		},
		{
			Name:        "annotation_crop",
			Description: "Cut out every box the answer reports, optionally only for one entity, from the display-sized image. Use this to check what a phrase actually points at.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Model answer containing annotation markup",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image the answer refers to",
					},
					"entity": map[string]interface{}{
						"type":        "string",
						"description": "Optional entity name; articles and case are ignored",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"text", "image_path"},
			},
		},

		// Parsing
		{
			Name:        "annotation_parse",
			Description: "Parse annotation markup into entities and pixel-space boxes without drawing. Give either width and height, or image_path to resolve against that image's display size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Model answer containing annotation markup",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the image the boxes are resolved against",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the image the boxes are resolved against",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional image whose display size replaces width and height",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "annotation_mask_region",
			Description: "Turn a binary mask image into the {<x0><y0><x1><y1>} region token, and optionally append it to an [identify] question that does not carry a box yet.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the mask image; non-zero red channel marks the region",
					},
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Optional user message to append the region to",
					},
				},
				"required": []string{"mask_path"},
			},
		},

		// Palette
		{
			Name:        "palette_list",
			Description: "List the known threat categories and the colors their boxes, labels, and text spans are drawn in.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
