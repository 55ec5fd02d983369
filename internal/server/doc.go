// Package server implements the MCP (Model Context Protocol) server that exposes
// the annotation pipeline to chat front ends and agents.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr through the charm logger, never to stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Rendering:
//   - annotation_render: Draw boxes and labels, return image and colored text
//   - annotation_crop: Cut out the boxes an answer reports
//
// Parsing:
//   - annotation_parse: Entities and pixel boxes without drawing
//   - annotation_mask_region: Region token from a mask image
//
// Palette:
//   - palette_list: Category colors
//
// # Image Caching
//
// Images and masks loaded by path are cached for the lifetime of the server
// process, so repeated questions about the same scan decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: the Go error string
//
// An answer without annotations is not an error: annotation_render then
// returns mode "none" and no image.
package server
