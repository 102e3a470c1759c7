// Package renderer owns the window and all GPU-side resources and submits
// exactly one frame per Render call from an interpolated world snapshot plus
// the overlay paint commands. Nothing else in the engine touches raylib
// drawing state.
package renderer

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/colon-crab-colon/game/internal/gui"
	"github.com/colon-crab-colon/game/internal/worldstate"
)

// ErrSurfaceUnavailable means the presentation surface could not accept a
// frame this iteration. Non-fatal: the scheduler skips the frame and retries
// next tick.
var ErrSurfaceUnavailable = errors.New("renderer: surface unavailable")

// ErrDeviceLost means the rendering device is gone for good. Fatal.
var ErrDeviceLost = errors.New("renderer: device lost")

var backgroundColor = rl.NewColor(26, 51, 77, 255)

const gridSlices = 100

// Renderer drives the window and draws world snapshots. Not safe for
// concurrent use; all methods must run on the thread that owns the window.
type Renderer struct {
	log *slog.Logger
	cam *Camera

	// Cube mesh and material, created lazily on first Render so GPU
	// resources are allocated after the GL context exists.
	meshReady bool
	cubeMesh  rl.Mesh
	cubeMtl   rl.Material

	// Resize requests are queued and applied at the top of Render, never
	// mid-submit.
	resizePending bool
	pendingW      int32
	pendingH      int32

	GridVisible bool
}

// Open creates the window and returns a renderer bound to it. Fails with
// ErrDeviceLost if the window cannot be created at all.
func Open(title string, width, height int32, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, title)
	if !rl.IsWindowReady() {
		return nil, ErrDeviceLost
	}
	rl.SetExitKey(rl.KeyNull) // close via window button; keys belong to the game
	rl.DisableCursor()        // capture the pointer for mouse-look

	return &Renderer{
		log:         log,
		cam:         NewCamera(),
		GridVisible: true,
	}, nil
}

// Close releases GPU resources and the window. Call last during teardown;
// after Close the renderer is unusable.
func (r *Renderer) Close() {
	if r.meshReady {
		rl.UnloadMesh(&r.cubeMesh)
		rl.UnloadMaterial(r.cubeMtl)
		r.meshReady = false
	}
	rl.CloseWindow()
}

// Camera returns the renderer's fly camera.
func (r *Renderer) Camera() *Camera {
	return r.cam
}

// QueueResize records a new surface size to apply before the next submit.
func (r *Renderer) QueueResize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	r.resizePending = true
	r.pendingW = width
	r.pendingH = height
}

// Render submits one frame: the interpolated snapshot in 3D, then the
// overlay panels. A pending resize is applied first. If the surface is not
// ready the submit is retried once after reconfiguring; if it still is not,
// Render returns ErrSurfaceUnavailable and draws nothing.
func (r *Renderer) Render(snap *worldstate.Snapshot, cmds gui.Commands) error {
	r.applyResize()

	if !r.surfaceReady() {
		r.applyResize()
		if !r.surfaceReady() {
			return ErrSurfaceUnavailable
		}
	}

	r.ensureMeshes()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(r.cam.raylib())
	if r.GridVisible {
		rl.DrawGrid(gridSlices, 1)
	}
	for _, st := range snap.Entities {
		r.drawBody(st)
	}
	rl.EndMode3D()

	drawPanels(cmds)

	rl.EndDrawing()
	return nil
}

// surfaceReady reports whether a frame can be presented right now. A
// minimized window has a zero-area surface and cannot accept a submit.
func (r *Renderer) surfaceReady() bool {
	if !rl.IsWindowReady() {
		return false
	}
	if rl.IsWindowMinimized() {
		return false
	}
	return rl.GetScreenWidth() > 0 && rl.GetScreenHeight() > 0
}

func (r *Renderer) applyResize() {
	if !r.resizePending {
		return
	}
	r.resizePending = false
	if r.pendingW == int32(rl.GetScreenWidth()) && r.pendingH == int32(rl.GetScreenHeight()) {
		return
	}
	rl.SetWindowSize(int(r.pendingW), int(r.pendingH))
}

// ensureMeshes creates the shared unit cube mesh and material on first use.
func (r *Renderer) ensureMeshes() {
	if r.meshReady {
		return
	}
	r.cubeMesh = rl.GenMeshCube(1, 1, 1)
	r.cubeMtl = rl.LoadMaterialDefault()
	r.meshReady = true
}

// drawBody draws one entity as a scaled, rotated, tinted unit cube.
func (r *Renderer) drawBody(st worldstate.EntityState) {
	tr := st.Transform
	if albedo := r.cubeMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(st.Color[0], st.Color[1], st.Color[2], st.Color[3])
	}

	scale := rl.MatrixScale(tr.Scale.X, tr.Scale.Y, tr.Scale.Z)
	rot := rl.QuaternionToMatrix(rl.NewQuaternion(
		tr.Orientation.X, tr.Orientation.Y, tr.Orientation.Z, tr.Orientation.W))
	trans := rl.MatrixTranslate(tr.Position.X, tr.Position.Y, tr.Position.Z)

	m := rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
	rl.DrawMesh(r.cubeMesh, r.cubeMtl, m)
}
