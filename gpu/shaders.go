package gpu

import _ "embed"

// Blend pipeline shader sources. Unlike the teacher's inline SPIR-V byte
// literals, these are embedded as GLSL source and compiled to SPIR-V at
// build time rather than hand-fabricated as binary — generate the .spv
// artefacts once with glslc before building a non-headless binary:
//
//go:generate glslc -fshader-stage=vertex shaders/blend.vert -o shaders/blend.vert.spv
//go:generate glslc -fshader-stage=fragment shaders/blend.frag -o shaders/blend.frag.spv

//go:embed shaders/blend.vert
var blendVertSource string

//go:embed shaders/blend.frag
var blendFragSource string
