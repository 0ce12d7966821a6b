// Package shaders embeds the GLSL sources shipped with the demo. The files
// on disk take precedence when present so they can be edited without a
// rebuild.
package shaders

import "embed"

// Vertex and fragment shader names for the windmill.
const (
	SimpleColorVert = "SimpleColor.vert"
	SimpleColorFrag = "SimpleColor.frag"
)

//go:embed *.vert *.frag
var FS embed.FS
