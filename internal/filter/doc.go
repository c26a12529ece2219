// Package filter provides the alpha-bleed filter used on texture bake paths.
//
// This package contains:
//   - DilatePass: one sweep pulling colour from the first opaque 4-neighbour
//   - MergeColor: colour-only write back into fully transparent pixels
//   - Dilator: the ping-pong driver tying both together over a View
//
// All operations are O(width*height) per sweep and allocate only the three
// scratch buffers of a Dilator run, obtained from an image.Allocator.
package filter
