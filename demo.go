package main

import (
	"github.com/chewxy/math32"

	"fieldview/field"
)

// makeDemoField builds a synthetic n^3 scalar field: two Gaussian blobs
// of opposite sign inside the volume, so slices show obvious structure.
func makeDemoField(n int) *field.ScalarField {
	blob := func(x, y, z, cx, cy, cz, sigma float32) float32 {
		dx, dy, dz := x-cx, y-cy, z-cz
		return math32.Exp(-(dx*dx + dy*dy + dz*dz) / (2 * sigma * sigma))
	}

	f, err := field.Generate(n, n, n, func(x, y, z int) float32 {
		fx := float32(x) / float32(n-1)
		fy := float32(y) / float32(n-1)
		fz := float32(z) / float32(n-1)
		return blob(fx, fy, fz, 0.35, 0.35, 0.5, 0.15) -
			blob(fx, fy, fz, 0.7, 0.65, 0.4, 0.12)
	})
	if err != nil {
		// Only reachable with a non-positive resolution, which the flag
		// parsing rejects first.
		panic(err)
	}
	return f
}
