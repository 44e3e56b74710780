package server

import (
	"encoding/json"
	"fmt"
	"image"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/cellseg-mcp/internal/imaging"
	"github.com/ironsheep/cellseg-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := log.WithFields(log.Fields{
		"tool":    params.Name,
		"elapsed": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	entry.Debug("Tool executed")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)
	case "image_edge_mask":
		return s.handleImageEdgeMask(args)
	case "image_region_stats":
		return s.handleImageRegionStats(args)
	case "image_segment_overlay":
		return s.handleImageSegmentOverlay(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Segmentation Handlers ===

// pipelineArgs holds the arguments shared by every segmentation tool.
// Optional numeric fields are pointers because zero is a meaningful value
// for all of them.
type pipelineArgs struct {
	Path          string  `json:"path"`
	X1            *int    `json:"x1"`
	Y1            *int    `json:"y1"`
	X2            *int    `json:"x2"`
	Y2            *int    `json:"y2"`
	Scale         float64 `json:"scale"`
	Seed          *uint64 `json:"seed"`
	SeedCount     *int    `json:"seed_count"`
	BlurPasses    *int    `json:"blur_passes"`
	EdgeThreshold *int    `json:"edge_threshold"`
}

// region returns the crop rectangle, nil when no crop was requested.
func (a *pipelineArgs) region() (*imaging.Region, error) {
	set := 0
	for _, v := range []*int{a.X1, a.Y1, a.X2, a.Y2} {
		if v != nil {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 4:
		return &imaging.Region{X1: *a.X1, Y1: *a.Y1, X2: *a.X2, Y2: *a.Y2}, nil
	default:
		return nil, fmt.Errorf("crop requires all of x1, y1, x2, y2")
	}
}

// config applies defaults for omitted tuning parameters.
func (a *pipelineArgs) config() (segment.Config, error) {
	cfg := segment.DefaultConfig()
	if a.SeedCount != nil {
		cfg.SeedCount = *a.SeedCount
	}
	if a.BlurPasses != nil {
		cfg.BlurPasses = *a.BlurPasses
	}
	if a.EdgeThreshold != nil {
		if *a.EdgeThreshold < 0 || *a.EdgeThreshold > 255 {
			return cfg, fmt.Errorf("%w: edge_threshold must be in [0,255], got %d",
				segment.ErrInvalidConfig, *a.EdgeThreshold)
		}
		cfg.EdgeThreshold = uint8(*a.EdgeThreshold)
	}
	return cfg, cfg.Validate()
}

// prepare loads, crops and scales the image named by a.
func (s *Server) prepare(a *pipelineArgs) (image.Image, error) {
	region, err := a.region()
	if err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Prepare(img, region, a.Scale)
}

// runPipeline runs the full pipeline for a and returns the prepared image
// alongside the result, with the config and seed actually used.
func (s *Server) runPipeline(a *pipelineArgs) (image.Image, *segment.Result, segment.Config, uint64, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, cfg, 0, err
	}
	seed := s.defaultSeed
	if a.Seed != nil {
		seed = *a.Seed
	}

	img, err := s.prepare(a)
	if err != nil {
		return nil, nil, cfg, seed, err
	}
	res, err := imaging.RunSegmentation(img, cfg, seed)
	if err != nil {
		return nil, nil, cfg, seed, err
	}

	log.WithFields(log.Fields{
		"path":  a.Path,
		"seed":  seed,
		"count": res.Count,
	}).Info("Image segmented")
	return img, res, cfg, seed, nil
}

type imageSegmentArgs struct {
	pipelineArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, cfg, seed, err := s.runPipeline(&a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Summarize(res, cfg, seed, a.OutputPath)
}

func (s *Server) handleImageEdgeMask(args json.RawMessage) (interface{}, error) {
	var a pipelineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	img, err := s.prepare(&a)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeMask(img, cfg.BlurPasses, cfg.EdgeThreshold)
}

type imageRegionStatsArgs struct {
	pipelineArgs
	Limit *int `json:"limit"`
}

func (s *Server) handleImageRegionStats(args json.RawMessage) (interface{}, error) {
	var a imageRegionStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	limit := 20
	if a.Limit != nil {
		limit = *a.Limit
	}
	_, res, _, _, err := s.runPipeline(&a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	return imaging.RegionStats(res, limit), nil
}

type imageSegmentOverlayArgs struct {
	pipelineArgs
	Color      string   `json:"color"`
	Opacity    *float64 `json:"opacity"`
	ShowLabels *bool    `json:"show_labels"`
}

func (s *Server) handleImageSegmentOverlay(args json.RawMessage) (interface{}, error) {
	var a imageSegmentOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}
	opacity := 0.6
	if a.Opacity != nil {
		opacity = *a.Opacity
	}
	showLabels := true
	if a.ShowLabels != nil {
		showLabels = *a.ShowLabels
	}

	img, res, _, _, err := s.runPipeline(&a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(img, res, a.Color, opacity, showLabels)
}
