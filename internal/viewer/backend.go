package viewer

import (
	"fmt"
	"math"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/scene"
)

// Mesh resolution for round shapes.
const (
	sphereRings     = 16
	sphereSlices    = 16
	cylinderSlices  = 16
	planeResolution = 1
)

// drawable is the GPU side of one floor or mesh node.
type drawable struct {
	mesh      rl.Mesh
	material  rl.Material
	transform rl.Matrix
	// baseShader is the material's own default shader, restored before
	// unloading so the shared lit shader is not freed with it.
	baseShader rl.Shader
}

// Backend acquires raylib meshes and materials for scene graphs. It must be
// used on the thread that owns the window, after the window is open.
type Backend struct {
	mu     sync.Mutex
	lit    rl.Shader
	litOK  bool
	loaded map[*scene.Graph][]drawable
}

// NewBackend returns a backend with nothing loaded.
func NewBackend() *Backend {
	return &Backend{loaded: make(map[*scene.Graph][]drawable)}
}

// Load creates one mesh and one material per floor and mesh node of g.
func (b *Backend) Load(g *scene.Graph) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.loaded[g]; ok {
		return fmt.Errorf("graph already loaded")
	}
	b.ensureShader()

	nodes := g.Meshes()
	ds := make([]drawable, 0, len(nodes))
	for _, n := range nodes {
		d, err := b.newDrawable(n)
		if err != nil {
			for _, loaded := range ds {
				unloadDrawable(loaded)
			}
			return err
		}
		ds = append(ds, d)
	}
	b.loaded[g] = ds
	return nil
}

// Unload releases everything Load acquired for g.
func (b *Backend) Unload(g *scene.Graph) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ds, ok := b.loaded[g]
	if !ok {
		return fmt.Errorf("graph not loaded")
	}
	for _, d := range ds {
		unloadDrawable(d)
	}
	delete(b.loaded, g)
	return nil
}

// Close releases the shared shader. Graphs must be unloaded first.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.litOK {
		rl.UnloadShader(b.lit)
		b.litOK = false
	}
}

// Draw renders g's loaded meshes lit by g's lights as seen from eye. Call
// it between BeginMode3D and EndMode3D.
func (b *Backend) Draw(g *scene.Graph, eye room.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.litOK {
		b.setLightUniforms(g, eye)
	}
	for _, d := range b.loaded[g] {
		rl.DrawMesh(d.mesh, d.material, d.transform)
	}
}

func (b *Backend) ensureShader() {
	if b.litOK {
		return
	}
	s := rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(s) {
		b.lit, b.litOK = s, true
	}
}

func (b *Backend) newDrawable(n scene.Node) (drawable, error) {
	mesh, offset, err := unitMesh(n.Shape)
	if err != nil {
		return drawable{}, fmt.Errorf("node %s: %w", n.ID, err)
	}
	mtl := rl.LoadMaterialDefault()
	base := mtl.Shader
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(n.Color)
	}
	if b.litOK {
		mtl.Shader = b.lit
	}
	return drawable{
		mesh:       mesh,
		material:   mtl,
		transform:  nodeTransform(n, offset),
		baseShader: base,
	}, nil
}

func unloadDrawable(d drawable) {
	rl.UnloadMesh(&d.mesh)
	d.material.Shader = d.baseShader
	rl.UnloadMaterial(d.material)
}

// unitMesh generates a mesh of unit size for shape, plus the model-space
// offset that centers it on the origin.
func unitMesh(shape room.Shape) (rl.Mesh, [3]float32, error) {
	switch shape {
	case room.ShapeBox:
		return rl.GenMeshCube(1, 1, 1), [3]float32{}, nil
	case room.ShapeSphere:
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices), [3]float32{}, nil
	case room.ShapeCylinder:
		// Base at y=0 and top at y=1; shift down to center.
		return rl.GenMeshCylinder(0.5, 1, cylinderSlices), [3]float32{0, -0.5, 0}, nil
	case room.ShapePlane:
		return rl.GenMeshPlane(1, 1, planeResolution, planeResolution), [3]float32{}, nil
	default:
		return rl.Mesh{}, [3]float32{}, fmt.Errorf("unsupported shape %q", shape)
	}
}

// nodeTransform scales the unit mesh to the node's size, turns it about Y
// and moves it into place. raylib planes already lie in XZ, so the floor's
// X rotation is not applied.
func nodeTransform(n scene.Node, offset [3]float32) rl.Matrix {
	sx, sy, sz := float32(n.Size.X()), float32(n.Size.Y()), float32(n.Size.Z())
	if sy == 0 {
		sy = 1
	}
	m := rl.MatrixTranslate(offset[0], offset[1], offset[2])
	m = rl.MatrixMultiply(m, rl.MatrixScale(sx, sy, sz))
	if ry := n.Rotation.Y(); ry != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateY(float32(ry)))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(
		float32(n.Position.X()), float32(n.Position.Y()), float32(n.Position.Z())))
}

func (b *Backend) setLightUniforms(g *scene.Graph, eye room.Vec3) {
	ambient, _ := g.Node(scene.AmbientID)
	sun, _ := g.Node(scene.DirectionalID)

	dir := sun.Position
	if l := math.Sqrt(dir.X()*dir.X() + dir.Y()*dir.Y() + dir.Z()*dir.Z()); l > 0 {
		dir = room.Vec3{dir.X() / l, dir.Y() / l, dir.Z() / l}
	} else {
		dir = room.Vec3{0, 1, 0}
	}

	ar, ag, ab := ambient.Color.RGB()
	ai := float32(ambient.Intensity)
	amb := []float32{float32(ar) / 255 * ai, float32(ag) / 255 * ai, float32(ab) / 255 * ai, 1}
	sr, sg, sb := sun.Color.RGB()
	lightColor := []float32{float32(sr) / 255, float32(sg) / 255, float32(sb) / 255}

	set := func(name string, v []float32, typ rl.ShaderUniformDataType) {
		if loc := rl.GetShaderLocation(b.lit, name); loc >= 0 {
			rl.SetShaderValue(b.lit, loc, v, typ)
		}
	}
	set("viewPos", vec(eye), rl.ShaderUniformVec3)
	set("lightDir", vec(dir), rl.ShaderUniformVec3)
	set("ambient", amb, rl.ShaderUniformVec4)
	set("lightColor", lightColor, rl.ShaderUniformVec3)
	set("lightIntensity", []float32{float32(sun.Intensity)}, rl.ShaderUniformFloat)
}

func vec(v room.Vec3) []float32 {
	return []float32{float32(v.X()), float32(v.Y()), float32(v.Z())}
}

func toColor(c room.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

// Lambert lighting: one directional light plus ambient.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  if (dot(N, viewPos - fragPosition) < 0.0) N = -N;
  float NdotL = max(dot(N, normalize(lightDir)), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  finalColor = vec4(ambient.rgb * colDiffuse.rgb + diffuse, colDiffuse.a);
}
`
)
