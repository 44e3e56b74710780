package server

import "github.com/ironsheep/cellseg-mcp/internal/segment"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// pipelineProperties returns the input properties shared by every tool that
// runs the segmentation pipeline: optional crop, scale and tuning knobs.
func pipelineProperties() map[string]interface{} {
	cfg := segment.DefaultConfig()
	return map[string]interface{}{
		"path": pathProperty(),
		"x1": map[string]interface{}{
			"type":        "integer",
			"description": "Optional crop: left edge X coordinate (0-based). Crop applies only when x1, y1, x2 and y2 are all given.",
		},
		"y1": map[string]interface{}{
			"type":        "integer",
			"description": "Optional crop: top edge Y coordinate (0-based)",
		},
		"x2": map[string]interface{}{
			"type":        "integer",
			"description": "Optional crop: right edge X coordinate (exclusive)",
		},
		"y2": map[string]interface{}{
			"type":        "integer",
			"description": "Optional crop: bottom edge Y coordinate (exclusive)",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor applied after cropping (e.g., 0.5 to halve size). Default 1.0",
			"default":     1.0,
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Random seed for seed placement. Equal seeds give identical results. Defaults to the server seed.",
		},
		"seed_count": map[string]interface{}{
			"type":        "integer",
			"description": "Number of seed placement attempts. Higher values find smaller cells but cost more time.",
			"default":     cfg.SeedCount,
			"minimum":     0,
			"maximum":     segment.MaxSeedCount,
		},
		"blur_passes": map[string]interface{}{
			"type":        "integer",
			"description": "Number of 3x3 mean filter passes before edge detection. Use 0 for clean synthetic images.",
			"default":     cfg.BlurPasses,
		},
		"edge_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Gradient magnitude (0-255) at which a pixel becomes a cell boundary. Lower values close gaps in faint outlines.",
			"default":     int(cfg.EdgeThreshold),
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	segmentProps := pipelineProperties()
	segmentProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to save the region image as PNG. When set, the image is not returned inline.",
	}

	statsProps := pipelineProperties()
	statsProps["limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of regions to list, largest first (default 20, 0 for all)",
		"default":     20,
	}

	overlayProps := pipelineProperties()
	overlayProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex color used to tint cell boundaries",
		"default":     "#FF0000",
	}
	overlayProps["opacity"] = map[string]interface{}{
		"type":        "number",
		"description": "Boundary tint opacity from 0 to 1",
		"default":     0.6,
	}
	overlayProps["show_labels"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Draw each region's rank next to its seed",
		"default":     true,
	}

	edgeProps := map[string]interface{}{
		"path":  pathProperty(),
		"scale": pipelineProperties()["scale"],
		"blur_passes": map[string]interface{}{
			"type":        "integer",
			"description": "Number of 3x3 mean filter passes before edge detection",
			"default":     segment.DefaultConfig().BlurPasses,
		},
		"edge_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Gradient magnitude (0-255) at which a pixel becomes a boundary",
			"default":     int(segment.DefaultEdgeThreshold),
		},
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the size of the buffer segmentation will allocate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Segment a micrograph into cells. Detects cell boundaries, grows a region from random seeds inside each enclosed area, and returns the estimated cell count with a false-colored region image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segmentProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_edge_mask",
			Description: "Return the boundary mask segmentation would grow regions against. White pixels are boundaries. Use this to tune blur_passes and edge_threshold before a full run.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": edgeProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_region_stats",
			Description: "Segment an image and report per-region measurements: area statistics, coverage, and each region's color and seed position.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": statsProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_segment_overlay",
			Description: "Segment an image and return the source image with cell boundaries tinted and regions numbered, for visual verification.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
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
