package model

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-tutorials/common"
)

// IntroTriangles returns two flat triangles in clip space, each with a color per corner.
//
// Returns:
//   - Model: the two triangles
func IntroTriangles() Model {
	vertices := []GPUVertex{
		{Position: [3]float32{-0.4, -0.9, 0}, Color: ColorRGB8(124, 236, 132)},
		{Position: [3]float32{-0.2, 0.2, 0}, Color: ColorRGB8(124, 236, 188)},
		{Position: [3]float32{-0.8, -0.7, 0}, Color: ColorRGB8(124, 228, 236)},

		{Position: [3]float32{0, -0.3, 0}, Color: ColorRGB8(132, 124, 236)},
		{Position: [3]float32{0.3, 0.7, 0}, Color: ColorRGB8(188, 124, 236)},
		{Position: [3]float32{0.8, 0.3, 0}, Color: ColorRGB8(236, 124, 228)},
	}
	return NewModel(WithName("intro"), WithVertices(vertices))
}

// Tetrahedron returns a four-faced solid with one flat color per face.
// Positions are in clip space, where z grows away from the viewer; each face winds
// counter-clockwise on screen when seen from outside.
//
// Returns:
//   - Model: the tetrahedron, 12 vertices
func Tetrahedron() Model {
	var (
		rightBottom  = [3]float32{0.5, -0.4, -0.25}
		leftBottom   = [3]float32{-0.5, -0.4, -0.25}
		centerBottom = [3]float32{0, -0.4, 0.25}
		top          = [3]float32{0, 0.4, 0.25}
	)

	faces := []struct {
		corners [3][3]float32
		color   [4]float32
	}{
		{[3][3]float32{rightBottom, top, leftBottom}, ColorRGB8(236, 188, 124)},    // front
		{[3][3]float32{leftBottom, top, centerBottom}, ColorRGB8(124, 236, 132)},   // left
		{[3][3]float32{centerBottom, top, rightBottom}, ColorRGB8(188, 124, 236)},  // right
		{[3][3]float32{leftBottom, centerBottom, rightBottom}, ColorRGB8(0, 0, 0)}, // bottom
	}

	vertices := make([]GPUVertex, 0, len(faces)*3)
	for _, f := range faces {
		for _, c := range f.corners {
			vertices = append(vertices, GPUVertex{Position: c, Color: f.color})
		}
	}
	return NewModel(WithName("tetrahedron"), WithVertices(vertices))
}

// PlaneColor is the flat color of every Plane vertex.
var PlaneColor = ColorRGB8(124, 228, 236)

// Plane returns a square grid in the XZ plane centred on the origin, used as the sine wave surface.
// The grid has divisions quads per side and two counter-clockwise triangles per quad, seen from +Y.
// Rows are generated in bands on a worker pool; the output does not depend on the worker count.
//
// Parameters:
//   - divisions: quads per side; values < 1 yield an empty model
//   - size: side length of the plane
//   - workers: pool size; values <= 0 use GOMAXPROCS
//
// Returns:
//   - Model: the plane, 6*divisions*divisions vertices
func Plane(divisions int, size float32, workers int) Model {
	if divisions < 1 {
		return NewModel(WithName("plane"))
	}
	workers = common.Coalesce(common.Clamp(workers, 0, divisions), min(runtime.GOMAXPROCS(0), divisions))

	vertices := make([]GPUVertex, 6*divisions*divisions)
	step := size / float32(divisions)
	half := size / 2

	pool := worker.NewDynamicWorkerPool(workers, divisions, 1*time.Second)

	// Each band writes a disjoint range of rows.
	band := (divisions + workers - 1) / workers
	var wg sync.WaitGroup
	for id, first := 0, 0; first < divisions; id, first = id+1, first+band {
		last := min(first+band, divisions)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for row := first; row < last; row++ {
					z0 := -half + float32(row)*step
					z1 := z0 + step
					for col := 0; col < divisions; col++ {
						x0 := -half + float32(col)*step
						x1 := x0 + step
						quad := vertices[(row*divisions+col)*6:][:6]
						quad[0] = planeVertex(x0, z0)
						quad[1] = planeVertex(x0, z1)
						quad[2] = planeVertex(x1, z1)
						quad[3] = planeVertex(x0, z0)
						quad[4] = planeVertex(x1, z1)
						quad[5] = planeVertex(x1, z0)
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	common.Logger().Debug("plane generated", "divisions", divisions, "workers", workers, "vertices", len(vertices))
	return NewModel(WithName("plane"), WithVertices(vertices))
}

func planeVertex(x, z float32) GPUVertex {
	return GPUVertex{Position: [3]float32{x, 0, z}, Color: PlaneColor}
}
