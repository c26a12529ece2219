// Package texprep prepares RGBA texture data for GPU upload.
//
// # Overview
//
// texprep is a Pure Go companion to gogpu/gg for asset bake paths. It takes
// raw RGBA buffers, usually straight from an image decoder, and makes them
// safe to sample with bilinear filtering:
//
//   - Dilation bleeds the colour of opaque pixels into the surrounding
//     transparent border without touching alpha.
//   - Resampling rescales buffers with a 4x4 cubic Hermite filter.
//   - Prepare combines both with power-of-two sizing and mipmaps, and hands
//     the result to a gpucontext texture.
//
// # Quick Start
//
//	import "github.com/gogpu/texprep"
//
//	// Bleed colour into the transparent padding of an atlas
//	if err := texprep.DilateAll(pix, width, height); err != nil {
//	    return err
//	}
//
//	// Downscale to half size
//	half, err := texprep.Resize(pix, width, height, width/2, height/2, 4)
//
// # Memory
//
// Scratch buffers come from an Allocator (see WithAllocator). Every
// allocation can fail with ErrOutOfMemory, in which case the input is left
// unmodified. Buffers passed in are never retained.
//
// # Concurrency
//
// All functions are synchronous and keep no shared mutable state apart from
// the allocator pool, which is safe for concurrent use. Calls on disjoint
// buffers may run in parallel.
package texprep

// Release of this module, reported by texprep -version.
const (
	Version      = "0.1.0"
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)
