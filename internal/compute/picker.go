// GPU-accelerated pick resolution for the asynchronous hover path
package compute

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"pick3d/internal/picking"
	"pick3d/internal/scene"
)

// Picker resolves generation-stamped pick rays against a triangle
// snapshot on the GPU. It keeps a single request in flight; a newer
// Submit simply supersedes the previous pending one, so the readback
// always answers the newest ray. Results carry an entity id only and
// may lag the CPU pick by a few frames.
type Picker struct {
	system   *System
	pipeline *Pipeline

	// Buffers
	triangleBuffer *Buffer // Input: world-space triangles, entity ids
	bestBuffer     *Buffer // Output: packed nearest-hit key
	paramsBuffer   *Buffer // Input: ray origin, direction, count

	capacity uint32
	count    uint32

	pending    picking.HoverRequest
	hasPending bool
}

// MaxEntityID is the largest entity id the packed hit key can carry.
const MaxEntityID = 0xFFF

// noHitKey is the reset value of the best-hit buffer. Any real hit
// packs to a smaller key because positive float bits never reach the
// top of the u32 range.
const noHitKey = 0xFFFFFFFF

// gpuTriangle mirrors the WGSL Triangle layout: three padded vertex
// positions plus the owning entity id.
type gpuTriangle struct {
	V0   [4]float32
	V1   [4]float32
	V2   [4]float32
	Meta [4]uint32
}

// pickParams mirrors the WGSL PickParams uniform.
type pickParams struct {
	Origin [4]float32
	Dir    [4]float32
	Count  uint32
	Pad    [3]uint32
}

const pickShader = `
// Nearest-hit ray pick shader
// Each thread intersects one triangle and races a packed key into the
// shared best-hit word. The key's high 20 bits are the hit distance's
// float bits, the low 12 bits the entity id: positive floats keep
// their order under integer comparison, so atomicMin leaves the
// nearest hit, and exact distance ties fall to the lower entity id.

struct Triangle {
    v0: vec4<f32>,
    v1: vec4<f32>,
    v2: vec4<f32>,
    meta: vec4<u32>,
}

struct PickParams {
    origin: vec4<f32>,
    dir: vec4<f32>,
    count: u32,
    pad0: u32,
    pad1: u32,
    pad2: u32,
}

@group(0) @binding(0) var<storage, read> triangles: array<Triangle>;
@group(0) @binding(1) var<storage, read_write> best: atomic<u32>;
@group(0) @binding(2) var<uniform> params: PickParams;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.count) {
        return;
    }

    let tri = triangles[i];
    let edge1 = tri.v1.xyz - tri.v0.xyz;
    let edge2 = tri.v2.xyz - tri.v0.xyz;

    let p = cross(params.dir.xyz, edge2);
    let det = dot(edge1, p);
    if (abs(det) < 1e-7) {
        return;
    }

    let invDet = 1.0 / det;
    let s = params.origin.xyz - tri.v0.xyz;
    let u = dot(s, p) * invDet;
    if (u < 0.0 || u > 1.0) {
        return;
    }

    let q = cross(s, edge1);
    let v = dot(params.dir.xyz, q) * invDet;
    if (v < 0.0 || u + v > 1.0) {
        return;
    }

    let t = dot(edge2, q) * invDet;
    if (t < 1e-7) {
        return;
    }

    let key = (bitcast<u32>(t) & 0xFFFFF000u) | (tri.meta.x & 0xFFFu);
    atomicMin(&best, key);
}
`

// NewPicker builds a GPU picker with room for maxTriangles. The
// compute system must be initialized first.
func NewPicker(maxTriangles uint32) (*Picker, error) {
	sys := Get()
	if sys == nil {
		return nil, fmt.Errorf("compute system not initialized")
	}

	pipeline, err := sys.CreatePipeline("pick", pickShader, "main", []wgpu.BufferBindingType{
		wgpu.BufferBindingTypeReadOnlyStorage,
		wgpu.BufferBindingTypeStorage,
		wgpu.BufferBindingTypeUniform,
	})
	if err != nil {
		return nil, err
	}

	triangleBuffer, err := sys.CreateBuffer("pick_triangles", uint64(maxTriangles)*64,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	bestBuffer, err := sys.CreateBuffer("pick_best", 4,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	if err != nil {
		triangleBuffer.Release()
		return nil, err
	}

	paramsBuffer, err := sys.CreateBuffer("pick_params", 48,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		triangleBuffer.Release()
		bestBuffer.Release()
		return nil, err
	}

	return &Picker{
		system:         sys,
		pipeline:       pipeline,
		triangleBuffer: triangleBuffer,
		bestBuffer:     bestBuffer,
		paramsBuffer:   paramsBuffer,
		capacity:       maxTriangles,
	}, nil
}

// SetScene uploads the snapshot's world triangles. Call again only
// when the scene changes.
func (p *Picker) SetScene(snap *scene.Snapshot) error {
	tris := make([]gpuTriangle, 0, snap.TriangleCount())
	for ei := range snap.Entities {
		ent := &snap.Entities[ei]
		if ent.ID > MaxEntityID {
			return fmt.Errorf("entity id %d exceeds GPU pick limit %d", ent.ID, MaxEntityID)
		}
		for _, tri := range ent.WorldTriangles() {
			tris = append(tris, gpuTriangle{
				V0:   [4]float32{tri.V0.X(), tri.V0.Y(), tri.V0.Z(), 0},
				V1:   [4]float32{tri.V1.X(), tri.V1.Y(), tri.V1.Z(), 0},
				V2:   [4]float32{tri.V2.X(), tri.V2.Y(), tri.V2.Z(), 0},
				Meta: [4]uint32{uint32(ent.ID), 0, 0, 0},
			})
		}
	}
	if uint32(len(tris)) > p.capacity {
		return fmt.Errorf("snapshot has %d triangles, picker capacity is %d", len(tris), p.capacity)
	}

	p.count = uint32(len(tris))
	if p.count > 0 {
		p.system.WriteBuffer(p.triangleBuffer, 0, ToBytes(tris))
	}
	return nil
}

// Submit dispatches the kernel for a stamped ray. A request already
// in flight is superseded; its readback is skipped entirely.
func (p *Picker) Submit(req picking.HoverRequest) error {
	params := pickParams{
		Origin: [4]float32{req.Ray.Origin.X(), req.Ray.Origin.Y(), req.Ray.Origin.Z(), 1},
		Dir:    [4]float32{req.Ray.Dir.X(), req.Ray.Dir.Y(), req.Ray.Dir.Z(), 0},
		Count:  p.count,
	}
	p.system.WriteBuffer(p.paramsBuffer, 0, ToBytes([]pickParams{params}))
	p.system.WriteBuffer(p.bestBuffer, 0, ToBytes([]uint32{noHitKey}))

	if p.count > 0 {
		err := p.system.Dispatch(DispatchParams{
			Pipeline:    p.pipeline,
			Buffers:     []*Buffer{p.triangleBuffer, p.bestBuffer, p.paramsBuffer},
			WorkgroupsX: (p.count + 255) / 256,
		})
		if err != nil {
			return err
		}
	}

	p.pending = req
	p.hasPending = true
	return nil
}

// Pending reports whether a submitted request still awaits readback.
func (p *Picker) Pending() bool {
	return p.hasPending
}

// Poll tries to collect the pending result without blocking. The
// second return is false while the GPU is still working or nothing
// is in flight.
func (p *Picker) Poll() (picking.HoverResult, bool, error) {
	if !p.hasPending {
		return picking.HoverResult{}, false, nil
	}
	data, err := p.system.ReadBufferNonBlocking(p.bestBuffer)
	if err != nil {
		p.hasPending = false
		return picking.HoverResult{}, false, err
	}
	if data == nil {
		return picking.HoverResult{}, false, nil
	}
	p.hasPending = false
	return p.decode(data), true, nil
}

// Wait blocks until the pending result is ready.
func (p *Picker) Wait() (picking.HoverResult, error) {
	if !p.hasPending {
		return picking.HoverResult{}, nil
	}
	data, err := p.system.ReadBuffer(p.bestBuffer)
	p.hasPending = false
	if err != nil {
		return picking.HoverResult{}, err
	}
	return p.decode(data), nil
}

func (p *Picker) decode(data []byte) picking.HoverResult {
	key := FromBytes[uint32](data)[0]
	res := picking.HoverResult{Gen: p.pending.Gen}
	if key != noHitKey {
		res.Entity = scene.EntityID(key & MaxEntityID)
		res.Ok = true
	}
	return res
}

// Release frees GPU resources.
func (p *Picker) Release() {
	if p.triangleBuffer != nil {
		p.triangleBuffer.Release()
	}
	if p.bestBuffer != nil {
		p.bestBuffer.Release()
	}
	if p.paramsBuffer != nil {
		p.paramsBuffer.Release()
	}
}
