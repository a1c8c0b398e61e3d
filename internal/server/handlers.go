package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/ironsheep/image-color-mcp/internal/colorcube"
	"github.com/ironsheep/image-color-mcp/internal/colormetric"
	"github.com/ironsheep/image-color-mcp/internal/colorstats"
	"github.com/ironsheep/image-color-mcp/internal/filter"
	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// Tool argument defaults not covered by colorstats.Config.
const (
	defaultColorThresh  = 40
	defaultGrayMaxLimit = 255
	defaultGraySatLimit = 20
	defaultSigBits      = 4
	defaultTopColors    = 16
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "color_fraction").
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
		return errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for omitted parameters
//  3. Loads the image from cache and crops it to the optional region
//  4. Calls the colorcube/colormetric/colorstats function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Per-pixel Color Metrics
	case "color_content":
		return s.handleColorContent(args)
	case "color_magnitude":
		return s.handleColorMagnitude(args)

	// Masks
	case "color_mask":
		return s.handleColorMask(args)
	case "gray_mask":
		return s.handleGrayMask(args)
	case "color_range_mask":
		return s.handleColorRangeMask(args)

	// Statistics
	case "color_fraction":
		return s.handleColorFraction(args)
	case "significant_gray_levels":
		return s.handleSignificantGrayLevels(args)
	case "colors_for_quantization":
		return s.handleColorsForQuantization(args)
	case "num_colors":
		return s.handleNumColors(args)

	// Cube Histogram
	case "top_colors":
		return s.handleTopColors(args)
	case "simple_quantize":
		return s.handleSimpleQuantize(args)

	case "color_diagnose":
		return s.handleColorDiagnose(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared argument handling ===

// regionArgs is a rectangle with exclusive x2, y2.
type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// imageArgs is embedded by every tool that analyses an image.
type imageArgs struct {
	Path   string      `json:"path"`
	Region *regionArgs `json:"region"`
}

// load returns the cached image for a.Path, cropped to a.Region if given.
func (s *Server) load(a imageArgs) (*raster.Image, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", raster.ErrInvalidInput)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region == nil {
		return img, nil
	}
	r := a.Region
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("%w: invalid region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2",
			raster.ErrInvalidInput, r.X1, r.Y1, r.X2, r.Y2)
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > img.Width || r.Y2 > img.Height {
		return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			raster.ErrInvalidInput, r.X1, r.Y1, r.X2, r.Y2, img.Width, img.Height)
	}
	return img.Crop(image.Rect(r.X1, r.Y1, r.X2, r.Y2))
}

// intOr returns *p, or def when the argument was omitted.
func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// factorOr returns *p, or the size-based sampling factor for img.
func factorOr(p *int, img *raster.Image) int {
	if p == nil {
		return colorstats.SamplingFactor(img)
	}
	return *p
}

// encodePNG returns img as base64-encoded PNG.
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// GrayStats summarises a single-channel result image.
type GrayStats struct {
	Mean        float64 `json:"mean"`
	Max         int     `json:"max"`
	ImageBase64 string  `json:"image_base64,omitempty"`
}

func summarizeGray(g *image.Gray, includeImage bool) (*GrayStats, error) {
	b := g.Bounds()
	var sum, hi int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := int(g.GrayAt(x, y).Y)
			sum += v
			hi = max(hi, v)
		}
	}
	st := &GrayStats{Max: hi}
	if n := b.Dx() * b.Dy(); n > 0 {
		st.Mean = float64(sum) / float64(n)
	}
	if includeImage {
		enc, err := encodePNG(g)
		if err != nil {
			return nil, err
		}
		st.ImageBase64 = enc
	}
	return st, nil
}

// MaskResult summarises a binary mask.
type MaskResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Selected    int     `json:"selected"`
	Fraction    float64 `json:"fraction"`
	ImageBase64 string  `json:"image_base64,omitempty"`
	MimeType    string  `json:"mime_type,omitempty"`
}

func maskResult(m *raster.Mask, includeImage bool) (*MaskResult, error) {
	res := &MaskResult{
		Width:    m.Width,
		Height:   m.Height,
		Selected: m.Count(),
		Fraction: m.Fraction(),
	}
	if includeImage {
		enc, err := encodePNG(m.ToGray())
		if err != nil {
			return nil, err
		}
		res.ImageBase64 = enc
		res.MimeType = "image/png"
	}
	return res, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", raster.ErrInvalidInput)
	}
	return raster.LoadImageInfo(s.cache, a.Path)
}

// === Per-pixel Color Metric Handlers ===

type colorMetricArgs struct {
	imageArgs
	WhitePoint   colormetric.WhitePoint `json:"white_point"`
	MinGray      *int                   `json:"mingray"`
	IncludeImage bool                   `json:"include_image"`
}

// ContentResult summarises the three content channels.
type ContentResult struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Red    *GrayStats `json:"red"`
	Green  *GrayStats `json:"green"`
	Blue   *GrayStats `json:"blue"`
}

func (s *Server) handleColorContent(args json.RawMessage) (interface{}, error) {
	var a colorMetricArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	content, err := colormetric.ColorContent(img, a.WhitePoint, intOr(a.MinGray, 0))
	if err != nil {
		return nil, err
	}

	res := &ContentResult{Width: img.Width, Height: img.Height}
	for _, ch := range []struct {
		src *image.Gray
		dst **GrayStats
	}{{content.R, &res.Red}, {content.G, &res.Green}, {content.B, &res.Blue}} {
		if *ch.dst, err = summarizeGray(ch.src, a.IncludeImage); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type colorMagnitudeArgs struct {
	colorMetricArgs
	Type      string `json:"type"`
	Threshold *int   `json:"threshold"`
}

// MagnitudeResult summarises a magnitude image.
type MagnitudeResult struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Type      string  `json:"type"`
	Threshold int     `json:"threshold"`
	Above     float64 `json:"above_threshold_fraction"`
	GrayStats
}

func (s *Server) handleColorMagnitude(args json.RawMessage) (interface{}, error) {
	var a colorMagnitudeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t := colormetric.MaxDiffFromAverage2
	if a.Type != "" {
		var err error
		if t, err = colormetric.ParseMagnitudeType(a.Type); err != nil {
			return nil, err
		}
	}
	thresh := intOr(a.Threshold, defaultColorThresh)
	if err := raster.CheckThreshold("threshold", thresh); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	mag, err := colormetric.ColorMagnitude(img, a.WhitePoint, intOr(a.MinGray, 0), t)
	if err != nil {
		return nil, err
	}
	st, err := summarizeGray(mag, a.IncludeImage)
	if err != nil {
		return nil, err
	}

	above := 0
	for _, v := range mag.Pix {
		if int(v) >= thresh {
			above++
		}
	}
	return &MagnitudeResult{
		Width:     img.Width,
		Height:    img.Height,
		Type:      t.String(),
		Threshold: thresh,
		Above:     float64(above) / float64(len(mag.Pix)),
		GrayStats: *st,
	}, nil
}

// === Mask Handlers ===

type colorMaskArgs struct {
	imageArgs
	ThreshDiff   *int   `json:"threshdiff"`
	MinDist      *int   `json:"mindist"`
	Erosion      string `json:"erosion"`
	IncludeImage bool   `json:"include_image"`
}

func (s *Server) handleColorMask(args json.RawMessage) (interface{}, error) {
	var a colorMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	mb := s.masks
	if a.Erosion != "" {
		eroder, err := filter.EroderByName(a.Erosion)
		if err != nil {
			return nil, err
		}
		mb = &colormetric.MaskBuilder{Eroder: eroder}
	}
	mask, err := mb.ColorMask(img, intOr(a.ThreshDiff, defaultColorThresh), intOr(a.MinDist, 1))
	if err != nil {
		return nil, err
	}
	return maskResult(mask, a.IncludeImage)
}

type grayMaskArgs struct {
	imageArgs
	MaxLimit     *int `json:"maxlimit"`
	SatLimit     *int `json:"satlimit"`
	IncludeImage bool `json:"include_image"`
}

func (s *Server) handleGrayMask(args json.RawMessage) (interface{}, error) {
	var a grayMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	mask, err := s.masks.GrayMask(img, intOr(a.MaxLimit, defaultGrayMaxLimit), intOr(a.SatLimit, defaultGraySatLimit))
	if err != nil {
		return nil, err
	}
	return maskResult(mask, a.IncludeImage)
}

type colorRangeMaskArgs struct {
	imageArgs
	Low          *raster.RGBColor `json:"low"`
	High         *raster.RGBColor `json:"high"`
	IncludeImage bool             `json:"include_image"`
}

func (s *Server) handleColorRangeMask(args json.RawMessage) (interface{}, error) {
	var a colorRangeMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Low == nil || a.High == nil {
		return nil, fmt.Errorf("%w: low and high are required", raster.ErrInvalidInput)
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	mask, err := s.masks.ColorRangeMask(img, *a.Low, *a.High)
	if err != nil {
		return nil, err
	}
	return maskResult(mask, a.IncludeImage)
}

// === Statistics Handlers ===

type colorFractionArgs struct {
	imageArgs
	DarkThresh  *int `json:"darkthresh"`
	LightThresh *int `json:"lightthresh"`
	DiffThresh  *int `json:"diffthresh"`
	Factor      *int `json:"factor"`
}

// FractionResult is the color_fraction tool result.
type FractionResult struct {
	colorstats.Fraction
	Colorful float64 `json:"colorful"`
	Factor   int     `json:"factor"`
}

func (s *Server) handleColorFraction(args json.RawMessage) (interface{}, error) {
	var a colorFractionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	factor := factorOr(a.Factor, img)
	f, err := colorstats.ColorFraction(img,
		intOr(a.DarkThresh, colorstats.ColorTestDarkThresh),
		intOr(a.LightThresh, colorstats.ColorTestLightThresh),
		intOr(a.DiffThresh, colorstats.ColorTestDiffThresh),
		factor)
	if err != nil {
		return nil, err
	}
	return &FractionResult{Fraction: *f, Colorful: f.Colorful(), Factor: factor}, nil
}

type significantGrayArgs struct {
	imageArgs
	DarkThresh  *int     `json:"darkthresh"`
	LightThresh *int     `json:"lightthresh"`
	MinFract    *float64 `json:"minfract"`
	Factor      *int     `json:"factor"`
}

func (s *Server) handleSignificantGrayLevels(args json.RawMessage) (interface{}, error) {
	var a significantGrayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	cfg := s.analyzer.Config
	minfract := cfg.MinFract
	if a.MinFract != nil {
		minfract = *a.MinFract
		if minfract < 0 {
			return nil, fmt.Errorf("%w: minfract %g not in (0,1)", raster.ErrParameterOutOfRange, minfract)
		}
	}
	factor := factorOr(a.Factor, img)
	n, err := colorstats.NumSignificantGrayColors(img,
		intOr(a.DarkThresh, cfg.DarkThresh),
		intOr(a.LightThresh, cfg.LightThresh),
		minfract, factor)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"num_levels": n,
		"factor":     factor,
	}, nil
}

type colorsForQuantizationArgs struct {
	imageArgs
	Thresh   *int   `json:"thresh"`
	Gradient string `json:"gradient"`
}

// analyzerFor returns the server's analyzer, or a copy using the named
// gradient operator.
func (s *Server) analyzerFor(gradient string) (*colorstats.Analyzer, error) {
	if gradient == "" {
		return s.analyzer, nil
	}
	op, err := filter.GradientByName(gradient)
	if err != nil {
		return nil, err
	}
	return &colorstats.Analyzer{Config: s.analyzer.Config, Gradient: op}, nil
}

func (s *Server) handleColorsForQuantization(args json.RawMessage) (interface{}, error) {
	var a colorsForQuantizationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	an, err := s.analyzerFor(a.Gradient)
	if err != nil {
		return nil, err
	}
	return an.ColorsForQuantization(img, intOr(a.Thresh, colorstats.UseDefault))
}

type numColorsArgs struct {
	imageArgs
	Factor *int `json:"factor"`
}

func (s *Server) handleNumColors(args json.RawMessage) (interface{}, error) {
	var a numColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	factor := factorOr(a.Factor, img)
	n, err := colorstats.NumColors(img, factor)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"num_colors":    n,
		"exceeds_limit": n == 0 && img.IsRGB(),
		"factor":        factor,
	}, nil
}

// === Cube Histogram Handlers ===

type cubeArgs struct {
	imageArgs
	SigBits *int `json:"sigbits"`
	NColors *int `json:"ncolors"`
	Factor  *int `json:"factor"`
}

// TopColorsResult is the top_colors tool result.
type TopColorsResult struct {
	SigBits int                    `json:"sigbits"`
	Factor  int                    `json:"factor"`
	Total   int                    `json:"total_sampled"`
	Colors  []colorcube.ColorEntry `json:"colors"`
}

func (s *Server) handleTopColors(args json.RawMessage) (interface{}, error) {
	var a cubeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	sigbits := intOr(a.SigBits, defaultSigBits)
	factor := factorOr(a.Factor, img)
	h, err := colorcube.BuildHistogram(img, sigbits, factor)
	if err != nil {
		return nil, err
	}
	entries, err := colorcube.TopColors(h, intOr(a.NColors, defaultTopColors))
	if err != nil {
		return nil, err
	}
	return &TopColorsResult{
		SigBits: sigbits,
		Factor:  factor,
		Total:   h.Total(),
		Colors:  entries,
	}, nil
}

// QuantizeResult is the simple_quantize tool result.
type QuantizeResult struct {
	Width       int                    `json:"width"`
	Height      int                    `json:"height"`
	Palette     []colorcube.ColorEntry `json:"palette"`
	ImageBase64 string                 `json:"image_base64"`
	MimeType    string                 `json:"mime_type"`
}

func (s *Server) handleSimpleQuantize(args json.RawMessage) (interface{}, error) {
	var a cubeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	out, entries, err := colorcube.SimpleQuantize(img,
		intOr(a.SigBits, defaultSigBits),
		factorOr(a.Factor, img),
		intOr(a.NColors, colorcube.MaxPaletteColors))
	if err != nil {
		return nil, err
	}
	enc, err := encodePNG(out.ToImage())
	if err != nil {
		return nil, err
	}
	return &QuantizeResult{
		Width:       out.Width,
		Height:      out.Height,
		Palette:     entries,
		ImageBase64: enc,
		MimeType:    "image/png",
	}, nil
}

// === Diagnosis Handler ===

type colorDiagnoseArgs struct {
	imageArgs
	Gradient string `json:"gradient"`
}

func (s *Server) handleColorDiagnose(args json.RawMessage) (interface{}, error) {
	var a colorDiagnoseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	an, err := s.analyzerFor(a.Gradient)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	return an.Diagnose(img)
}
