// Package soft implements gpu.Device as a pure-Go rasterizer.
//
// It accepts the GLSL ES 1.00 subset the dashboard uses and interprets a
// linked program by its declarations rather than by executing shader code:
//
//   - the first attribute that is not a color or texture coordinate is the
//     vertex position (2 to 4 components, clip space unless u_resolution is
//     set)
//   - an attribute whose name contains "color" is the vertex color
//   - an attribute whose name contains "texcoord" or "uv" is the texture
//     coordinate
//   - the first sampler2D uniform selects the sampled texture unit
//   - a vec2 uniform named u_resolution maps pixel positions (top-left
//     origin) to clip space
//
// The fragment color is the interpolated vertex color times the bilinear,
// clamp-to-edge texel. There is no blending and no depth test.
//
// A Device is not safe for concurrent use.
package soft
