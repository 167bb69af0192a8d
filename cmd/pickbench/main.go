// Benchmark comparing CPU and GPU pick resolution on random scenes
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/compute"
	"pick3d/internal/geom"
	"pick3d/internal/picking"
	"pick3d/internal/scene"
)

const (
	rayCount    = 64
	entityTris  = 4096
	spawnExtent = float32(40)
)

func main() {
	useGPU := true
	info, err := compute.Initialize()
	if err != nil {
		fmt.Printf("GPU unavailable, CPU only: %v\n\n", err)
		useGPU = false
	} else {
		fmt.Printf("GPU: %s | %s | %s\n\n", info.Backend, info.Vendor, info.Name)
	}

	testCounts := []int{1000, 5000, 20000, 50000, 100000, 200000}
	for _, count := range testCounts {
		benchPick(count, useGPU)
	}
}

func benchPick(triangleCount int, useGPU bool) {
	rng := rand.New(rand.NewSource(42))
	snap := randomSnapshot(rng, triangleCount)
	rays := randomRays(rng, rayCount)

	// CPU: BVH walk plus exact ordering rules
	picking.Intersect(rays[0], snap.Entities) // Warm up
	cpuStart := time.Now()
	cpuHits := 0
	for _, r := range rays {
		if _, ok := picking.Intersect(r, snap.Entities); ok {
			cpuHits++
		}
	}
	cpuTime := time.Since(cpuStart) / rayCount

	if !useGPU {
		fmt.Printf("%7d tris: CPU %10v/ray (%2d/%d hits)\n",
			triangleCount, cpuTime.Round(time.Microsecond), cpuHits, rayCount)
		return
	}

	// GPU: one dispatch and readback per ray
	picker, err := compute.NewPicker(uint32(triangleCount))
	if err != nil {
		fmt.Printf("%7d tris: GPU ERROR: %v\n", triangleCount, err)
		return
	}
	defer picker.Release()

	if err := picker.SetScene(snap); err != nil {
		fmt.Printf("%7d tris: GPU ERROR: %v\n", triangleCount, err)
		return
	}

	submitWait := func(gen uint64, r geom.Ray) (picking.HoverResult, error) {
		if err := picker.Submit(picking.HoverRequest{Gen: gen, Ray: r}); err != nil {
			return picking.HoverResult{}, err
		}
		return picker.Wait()
	}

	submitWait(0, rays[0]) // Warm up
	gpuStart := time.Now()
	gpuHits := 0
	for i, r := range rays {
		res, err := submitWait(uint64(i+1), r)
		if err != nil {
			fmt.Printf("%7d tris: GPU ERROR: %v\n", triangleCount, err)
			return
		}
		if res.Ok {
			gpuHits++
		}
	}
	gpuTime := time.Since(gpuStart) / rayCount

	speedup := float64(cpuTime) / float64(gpuTime)
	fmt.Printf("%7d tris: GPU %8v/ray (%2d hits) | CPU %10v/ray (%2d hits) | %.1fx speedup\n",
		triangleCount, gpuTime.Round(time.Microsecond), gpuHits,
		cpuTime.Round(time.Microsecond), cpuHits, speedup)
}

// randomSnapshot scatters triangles in a cube around the origin,
// chunked into entities so both resolvers see a realistic layout.
func randomSnapshot(rng *rand.Rand, triangleCount int) *scene.Snapshot {
	snap := &scene.Snapshot{}
	id := scene.EntityID(1)

	for remaining := triangleCount; remaining > 0; {
		n := entityTris
		if remaining < n {
			n = remaining
		}
		remaining -= n

		vertices := make([]mgl32.Vec3, 0, n*3)
		for i := 0; i < n; i++ {
			c := randomPoint(rng, spawnExtent)
			e1 := randomPoint(rng, 1.5)
			e2 := randomPoint(rng, 1.5)
			vertices = append(vertices, c, c.Add(e1), c.Add(e2))
		}

		mesh := scene.MeshFromSoup(vertices)
		snap.Add(scene.NewEntity(id, fmt.Sprintf("chunk-%d", id), mesh, mgl32.Ident4()))
		id++
	}
	return snap
}

// randomRays aims from a fixed eye outside the cloud at random points
// inside it, so runs mix hits and misses.
func randomRays(rng *rand.Rand, n int) []geom.Ray {
	eye := mgl32.Vec3{0, 0, spawnExtent * 1.5}
	rays := make([]geom.Ray, n)
	for i := range rays {
		target := randomPoint(rng, spawnExtent)
		rays[i] = geom.NewRay(eye, target.Sub(eye))
	}
	return rays
}

func randomPoint(rng *rand.Rand, extent float32) mgl32.Vec3 {
	return mgl32.Vec3{
		rng.Float32()*2*extent - extent,
		rng.Float32()*2*extent - extent,
		rng.Float32()*2*extent - extent,
	}
}
