package server

import "github.com/ironsheep/image-color-mcp/internal/colorstats"

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

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional rectangle restricting the analysis; x2 and y2 are exclusive",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

func rgbProperty(description string) map[string]interface{} {
	channel := map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255}
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"r": channel,
			"g": channel,
			"b": channel,
		},
		"required": []string{"r", "g", "b"},
	}
}

func intProperty(description string, def, lo, hi int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"default":     def,
		"minimum":     lo,
		"maximum":     hi,
	}
}

func gradientProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Gradient operator used to find smooth regions",
		"enum":        []string{"sobel", "sobel_smooth", "bild"},
		"default":     "sobel",
	}
}

func erosionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Erosion used for mindist: minimum (exact square element) or disk",
		"enum":        []string{"minimum", "disk"},
		"default":     "minimum",
	}
}

func factorProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Sample every factor-th pixel in each direction. Default keeps about 400 samples along the shorter side",
		"minimum":     1,
	}
}

func imageFlagProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Also return the result image as base64-encoded PNG",
		"default":     false,
	}
}

// toolSchema builds an object schema whose first properties are path and
// region; path is always required.
func toolSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{
		"path":   pathProperty(),
		"region": regionProperty(),
	}
	for k, v := range props {
		all[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   append([]string{"path"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, analysis depth and palette size. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Per-pixel Color Metrics
		{
			Name:        "color_content",
			Description: "Measure how far each channel rises above the average of the other two, per pixel. Returns mean and max per channel, optionally the three content images.",
			InputSchema: toolSchema(map[string]interface{}{
				"white_point":   rgbProperty("Color that should map to white; omit or use all zeros to disable correction"),
				"mingray":       intProperty("Pixels whose brightest channel is below this report zero content", 0, 0, 255),
				"include_image": imageFlagProperty(),
			}),
		},
		{
			Name:        "color_magnitude",
			Description: "Summarise each pixel's deviation from gray as one value. Returns mean, max and the share of pixels at or above 'threshold', optionally the magnitude image.",
			InputSchema: toolSchema(map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Magnitude policy",
					"enum":        []string{"max_diff_from_average_2", "max_min_diff_from_2", "max_diff"},
					"default":     "max_diff_from_average_2",
				},
				"white_point":   rgbProperty("Color that should map to white; omit or use all zeros to disable correction"),
				"mingray":       intProperty("Pixels whose brightest channel is below this report zero magnitude", 0, 0, 255),
				"threshold":     intProperty("Magnitude counted as colorful in the summary", defaultColorThresh, 0, 255),
				"include_image": imageFlagProperty(),
			}),
		},

		// Masks
		{
			Name:        "color_mask",
			Description: "Select pixels whose channel spread (max-min) is at least 'threshdiff', keeping only those at least 'mindist' pixels from any non-color pixel.",
			InputSchema: toolSchema(map[string]interface{}{
				"threshdiff":    intProperty("Minimum max-min channel spread", defaultColorThresh, 0, 255),
				"mindist":       intProperty("Minimum distance from non-color pixels; 0 or 1 disables erosion", 1, 0, 1<<16),
				"erosion":       erosionProperty(),
				"include_image": imageFlagProperty(),
			}),
		},
		{
			Name:        "gray_mask",
			Description: "Select near-gray pixels: brightest channel at most 'maxlimit' and channel spread at most 'satlimit'.",
			InputSchema: toolSchema(map[string]interface{}{
				"maxlimit":      intProperty("Maximum brightest channel", defaultGrayMaxLimit, 0, 255),
				"satlimit":      intProperty("Maximum max-min channel spread", defaultGraySatLimit, 0, 255),
				"include_image": imageFlagProperty(),
			}),
		},
		{
			Name:        "color_range_mask",
			Description: "Select pixels whose every channel lies between 'low' and 'high' inclusive.",
			InputSchema: toolSchema(map[string]interface{}{
				"low":           rgbProperty("Lower channel bounds"),
				"high":          rgbProperty("Upper channel bounds"),
				"include_image": imageFlagProperty(),
			}, "low", "high"),
		},

		// Statistics
		{
			Name:        "color_fraction",
			Description: "Return the share of pixels that are neither near-black nor near-white (pix_fract) and the share of those that are colorful (color_fract).",
			InputSchema: toolSchema(map[string]interface{}{
				"darkthresh":  intProperty("Pixels whose brightest channel is below this are ignored", colorstats.ColorTestDarkThresh, 0, 255),
				"lightthresh": intProperty("Pixels whose darkest channel is above this are ignored", colorstats.ColorTestLightThresh, 0, 255),
				"diffthresh":  intProperty("Minimum max-min spread for a colorful pixel", colorstats.ColorTestDiffThresh, 0, 255),
				"factor":      factorProperty(),
			}),
		},
		{
			Name:        "significant_gray_levels",
			Description: "Count gray levels between 'darkthresh' and 'lightthresh' that hold at least 'minfract' of the pixels. Requires an 8-bit grayscale image.",
			InputSchema: toolSchema(map[string]interface{}{
				"darkthresh":  intProperty("Lowest level counted", colorstats.DefaultDarkThresh, 0, 255),
				"lightthresh": intProperty("Highest level counted", colorstats.DefaultLightThresh, 0, 255),
				"minfract": map[string]interface{}{
					"type":        "number",
					"description": "Minimum share of pixels for a level to count, in (0,1)",
					"default":     colorstats.DefaultMinFract,
				},
				"factor": factorProperty(),
			}),
		},
		{
			Name:        "colors_for_quantization",
			Description: "Estimate how many colors (or gray levels) appear in smooth, low-gradient regions, where quantization is most likely to show banding.",
			InputSchema: toolSchema(map[string]interface{}{
				"thresh":   intProperty("Gradient magnitude below which a pixel is smooth", colorstats.DefaultGradientThresh, 0, 255),
				"gradient": gradientProperty(),
			}),
		},
		{
			Name:        "num_colors",
			Description: "Count distinct colors exactly. Returns 0 for 32-bit images with more than 256 colors.",
			InputSchema: toolSchema(map[string]interface{}{
				"factor": factorProperty(),
			}),
		},

		// Cube Histogram
		{
			Name:        "top_colors",
			Description: "Histogram colors into cubes of side 2^(8-sigbits) and return the most populated cubes with their center colors and counts.",
			InputSchema: toolSchema(map[string]interface{}{
				"sigbits": intProperty("Bits kept per channel", defaultSigBits, 2, 6),
				"ncolors": intProperty("Number of cubes to return", defaultTopColors, 1, 1<<18),
				"factor":  factorProperty(),
			}),
		},
		{
			Name:        "simple_quantize",
			Description: "Map the image onto its most populated cubes and return the palette and the quantized image as base64-encoded PNG.",
			InputSchema: toolSchema(map[string]interface{}{
				"sigbits": intProperty("Bits kept per channel", defaultSigBits, 2, 4),
				"ncolors": intProperty("Palette size", 256, 1, 256),
				"factor":  factorProperty(),
			}),
		},

		// Diagnosis
		{
			Name:        "color_diagnose",
			Description: "Run the color statistics together and suggest an encoding: palette, grayscale, quantized or truecolor.",
			InputSchema: toolSchema(map[string]interface{}{
				"gradient": gradientProperty(),
			}),
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
