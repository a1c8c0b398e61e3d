// Package server implements the MCP (Model Context Protocol) server for the
// color analysis tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and report size, format, depth and palette size
//
// Per-pixel Color Metrics:
//   - color_content: Per-channel rise above the other two channels
//   - color_magnitude: Single-value deviation from gray
//
// Masks:
//   - color_mask: Pixels with enough channel spread, optionally eroded
//   - gray_mask: Near-gray pixels
//   - color_range_mask: Pixels inside an RGB box
//
// Statistics:
//   - color_fraction: Mid-tone share and colorful share
//   - significant_gray_levels: Gray levels holding a meaningful share
//   - colors_for_quantization: Colors present in smooth regions
//   - num_colors: Exact color count up to 256
//
// Cube Histogram:
//   - top_colors: Most populated color cubes
//   - simple_quantize: Palette image from the most populated cubes
//
// Diagnosis:
//   - color_diagnose: All statistics with a suggested encoding
//
// Every tool except image_load accepts an optional region {x1,y1,x2,y2}
// (x2, y2 exclusive). Omitted thresholds take the defaults reported in the
// tool schemas; the statistics defaults come from colorstats.Config, which
// the binary reads from IMAGE_COLOR_* environment variables.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server process.
// Regions are cropped from the cached image on every call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params), -32601 (unknown method) or -32700 (unparsable request line)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithConfig(cfg), server.WithVersion(Version))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
