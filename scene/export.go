package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Terrain layer colours baked into exported vertex colours.
var (
	SandColor  = mgl32.Vec3{0.76, 0.70, 0.50}
	GrassColor = mgl32.Vec3{0.33, 0.50, 0.20}
	RockColor  = mgl32.Vec3{0.45, 0.43, 0.40}
)

// Node names in exported documents.
const (
	IslandNodeName = "island"
	BaseNodeName   = "windmill_base"
	HeadNodeName   = "windmill_head"
	HubNodeName    = "windmill_hub"
)

// BladeNodeName returns the node name of blade i.
func BladeNodeName(i int) string { return fmt.Sprintf("windmill_blade_%d", i) }

// ExportScene is a snapshot of the demo scene for offline export.
type ExportScene struct {
	Terrain  *Terrain
	Blend    BlendParams
	Sun      SunLight
	Windmill WindmillParams
	Time     float32 // animation time of the windmill pose
}

// WriteGLB builds the document for s and writes it as binary glTF.
func WriteGLB(path string, s ExportScene) error {
	doc, err := BuildDocument(s)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}
	return nil
}

// BuildDocument converts the scene into a glTF document. The island carries
// baked blend and sun colours. The windmill keeps its hierarchy: base, head,
// hub and blades are nested nodes holding their local matrices.
func BuildDocument(s ExportScene) (*gltf.Document, error) {
	if s.Terrain == nil || s.Terrain.VertexCount() == 0 {
		return nil, fmt.Errorf("export: no terrain")
	}
	doc := gltf.NewDocument()
	mat := len(doc.Materials)
	doc.Materials = append(doc.Materials, &gltf.Material{Name: "vertex_color", DoubleSided: true})

	island := addMesh(doc, IslandNodeName, mat, terrainAttributes(s), s.Terrain.Indices)
	root := addNode(doc, &gltf.Node{Name: IslandNodeName, Mesh: gltf.Index(island)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, root)

	wm := s.Windmill
	baseMesh := addMesh(doc, BaseNodeName, mat, partAttributes(WindmillBaseVertices(wm)), nil)
	headMesh := addMesh(doc, HeadNodeName, mat, partAttributes(WindmillHeadVertices()), nil)
	bladeMesh := addMesh(doc, "windmill_blade", mat, partAttributes(BladeVertices()), nil)

	base := addNode(doc, &gltf.Node{Name: BaseNodeName, Mesh: gltf.Index(baseMesh), Matrix: gltfMatrix(wm.BaseMatrix())})
	head := addNode(doc, &gltf.Node{Name: HeadNodeName, Mesh: gltf.Index(headMesh), Matrix: gltfMatrix(wm.HeadLocal(s.Time))})
	hub := addNode(doc, &gltf.Node{Name: HubNodeName, Matrix: gltfMatrix(wm.HubLocal(s.Time))})
	doc.Nodes[base].Children = append(doc.Nodes[base].Children, head)
	doc.Nodes[head].Children = append(doc.Nodes[head].Children, hub)
	for i := 0; i < BladeCount; i++ {
		blade := addNode(doc, &gltf.Node{
			Name:   BladeNodeName(i),
			Mesh:   gltf.Index(bladeMesh),
			Matrix: gltfMatrix(wm.BladeLocal(i)),
		})
		doc.Nodes[hub].Children = append(doc.Nodes[hub].Children, blade)
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, base)
	return doc, nil
}

type meshAttributes struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	colors    [][4]uint8
}

func terrainAttributes(s ExportScene) meshAttributes {
	t := s.Terrain
	n := t.VertexCount()
	a := meshAttributes{
		positions: make([][3]float32, n),
		normals:   make([][3]float32, n),
		uvs:       make([][2]float32, n),
		colors:    make([][4]uint8, n),
	}
	for i := 0; i < n; i++ {
		pos, nrm := t.Position(i), t.Normal(i)
		a.positions[i] = pos
		a.normals[i] = nrm
		a.uvs[i] = t.UV(i)
		a.colors[i] = colorBytes(TerrainColor(pos.Y(), nrm, s.Blend, s.Sun))
	}
	return a
}

func partAttributes(verts []float32) meshAttributes {
	n := len(verts) / PartStride
	a := meshAttributes{
		positions: make([][3]float32, n),
		uvs:       make([][2]float32, n),
		colors:    make([][4]uint8, n),
	}
	for i := 0; i < n; i++ {
		v := verts[i*PartStride:]
		a.positions[i] = [3]float32{v[0], v[1], v[2]}
		a.colors[i] = colorBytes(mgl32.Vec3{v[3], v[4], v[5]})
		a.uvs[i] = [2]float32{v[6], v[7]}
	}
	return a
}

// TerrainColor is the lit layer colour of a terrain point, as baked into
// exported vertex colours.
func TerrainColor(height float32, normal mgl32.Vec3, blend BlendParams, sun SunLight) mgl32.Vec3 {
	sand, grass, rock := BlendWeights(height, 1-normal.Y(), blend)
	albedo := SandColor.Mul(sand).Add(GrassColor.Mul(grass)).Add(RockColor.Mul(rock))
	light := sun.Irradiance(normal)
	return mgl32.Vec3{albedo[0] * light[0], albedo[1] * light[1], albedo[2] * light[2]}
}

func colorBytes(c mgl32.Vec3) [4]uint8 {
	var out [4]uint8
	for i := 0; i < 3; i++ {
		out[i] = uint8(mgl32.Clamp(c[i], 0, 1)*255 + 0.5)
	}
	out[3] = 255
	return out
}

func addMesh(doc *gltf.Document, name string, material int, a meshAttributes, indices []uint32) int {
	prim := &gltf.Primitive{
		Attributes: map[string]int{
			"POSITION":   modeler.WritePosition(doc, a.positions),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, a.uvs),
			"COLOR_0":    modeler.WriteColor(doc, a.colors),
		},
		Material: gltf.Index(material),
	}
	if len(a.normals) > 0 {
		prim.Attributes["NORMAL"] = modeler.WriteNormal(doc, a.normals)
	}
	if len(indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1
}

func addNode(doc *gltf.Document, n *gltf.Node) int {
	doc.Nodes = append(doc.Nodes, n)
	return len(doc.Nodes) - 1
}

// gltfMatrix converts a column-major mgl32 matrix to glTF's column-major
// float64 layout.
func gltfMatrix(m mgl32.Mat4) [16]float64 {
	var out [16]float64
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

// MatrixFromGLTF is the inverse of the export conversion.
func MatrixFromGLTF(m [16]float64) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
