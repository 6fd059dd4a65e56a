package ffi

import "unsafe"

// Native mirrors of the structures in rlottie's rlottiecommon.h. Field order,
// width and padding must match the C ABI exactly: these structs are only ever
// read through pointers returned by the native library, and a layout mismatch
// is memory corruption, not a catchable error. Layouts assume a 64-bit
// platform, which is all purego targets here.

const ptrSize = unsafe.Sizeof(uintptr(0))

// struct { const float *ptPtr; size_t ptCount; const char *elmPtr; size_t elmCount; }
type nativePath struct {
	ptPtr    uintptr
	ptCount  uintptr
	elmPtr   uintptr
	elmCount uintptr
}

// LOTMask
type nativeMask struct {
	path  nativePath
	mode  int32
	alpha uint8
	_     [3]byte
}

// struct { T *ptr; size_t size; } used for mask, layer and node lists
type nativeList struct {
	ptr  uintptr
	size uintptr
}

// LOTLayerNode
type nativeLayerNode struct {
	maskList  nativeList
	clipPath  nativePath
	layerList nativeList
	nodeList  nativeList
	matte     int32
	visible   int32
	alpha     uint8
	_         [7]byte
	keypath   uintptr
}

type nativeColor struct {
	r, g, b, a uint8
}

// LOTNode.mStroke
type nativeStroke struct {
	enable        uint8
	_             [3]byte
	width         float32
	cap           int32
	join          int32
	miterLimit    float32
	_             [4]byte
	dashArray     uintptr
	dashArraySize int32
	_             [4]byte
}

// LOTGradientStop
type nativeGradientStop struct {
	pos        float32
	r, g, b, a uint8
}

type nativePoint struct {
	x, y float32
}

// LOTNode.mGradient
type nativeGradient struct {
	typ       int32
	_         [4]byte
	stopPtr   uintptr
	stopCount uintptr
	start     nativePoint
	end       nativePoint
	center    nativePoint
	focal     nativePoint
	cradius   float32
	fradius   float32
}

type nativeMatrix struct {
	m11, m12, m13 float32
	m21, m22, m23 float32
	m31, m32, m33 float32
}

// LOTNode.mImageInfo
type nativeImageInfo struct {
	data   uintptr
	width  uintptr
	height uintptr
	alpha  uint8
	_      [3]byte
	matrix nativeMatrix
}

// LOTNode
type nativeNode struct {
	path      nativePath
	color     nativeColor
	_         [4]byte
	stroke    nativeStroke
	gradient  nativeGradient
	imageInfo nativeImageInfo
	flag      int32
	brushType int32
	fillRule  int32
	_         [4]byte
	keypath   uintptr
}

// LOTMarker
type nativeMarker struct {
	name       uintptr
	startframe uintptr
	endframe   uintptr
}

// LOTMarkerList
type nativeMarkerList struct {
	ptr  uintptr
	size uintptr
}

// Host-owned snapshot types. Everything below is a deep copy: no field keeps
// a reference into native memory.

// Path is a copied path geometry: packed x,y point coordinates plus the
// element opcodes (move/line/cubic/close) that consume them.
type Path struct {
	Points   []float32
	Elements []byte
}

// Mask is one entry of a layer's mask list.
type Mask struct {
	Path  Path
	Mode  int
	Alpha uint8
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Stroke describes the stroke applied to a paint node's path.
type Stroke struct {
	Enabled    bool
	Width      float32
	Cap        int
	Join       int
	MiterLimit float32
	Dash       []float32
}

// GradientStop is one color stop of a gradient ramp.
type GradientStop struct {
	Pos   float32
	Color Color
}

// Point is a 2D coordinate in surface space.
type Point struct {
	X, Y float32
}

// Gradient describes a linear or radial gradient fill.
type Gradient struct {
	Type    int
	Stops   []GradientStop
	Start   Point
	End     Point
	Center  Point
	Focal   Point
	CRadius float32
	FRadius float32
}

// Matrix is a 3x3 transform, row major.
type Matrix struct {
	M11, M12, M13 float32
	M21, M22, M23 float32
	M31, M32, M33 float32
}

// ImageInfo describes an embedded image asset and its placement transform.
// Data is the premultiplied BGRA pixel content, Width*Height*4 bytes.
type ImageInfo struct {
	Data   []byte
	Width  int
	Height int
	Alpha  uint8
	Matrix Matrix
}

// PaintNode is one drawable of a layer: path geometry plus whichever of
// color, gradient or image applies for its brush type.
type PaintNode struct {
	Path      Path
	Color     Color
	Stroke    Stroke
	Gradient  Gradient
	Image     ImageInfo
	Flag      int
	BrushType int
	FillRule  int
	KeyPath   string
}

// LayerNode is a host-owned snapshot of one layer of the scene graph at a
// given frame. Layers are self-referential: precomp layers carry child
// layers of their own.
type LayerNode struct {
	Masks    []Mask
	ClipPath Path
	Layers   []LayerNode
	Nodes    []PaintNode
	Matte    int
	Visible  bool
	Alpha    uint8
	KeyPath  string
}

// Marker is a named frame segment declared by the animation document.
type Marker struct {
	Name       string
	StartFrame int
	EndFrame   int
}

// goString converts a C string pointer to a Go string
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	// Find the null terminator
	var length int
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(length)))
		if b == 0 {
			break
		}
		length++
		if length > 1<<20 { // Safety limit: 1MB
			break
		}
	}
	if length == 0 {
		return ""
	}
	out := make([]byte, length)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
	return string(out)
}

func snapshotPath(p *nativePath) Path {
	var out Path
	if p.ptPtr != 0 && p.ptCount > 0 {
		out.Points = make([]float32, p.ptCount)
		copy(out.Points, unsafe.Slice((*float32)(unsafe.Pointer(p.ptPtr)), p.ptCount))
	}
	if p.elmPtr != 0 && p.elmCount > 0 {
		out.Elements = make([]byte, p.elmCount)
		copy(out.Elements, unsafe.Slice((*byte)(unsafe.Pointer(p.elmPtr)), p.elmCount))
	}
	return out
}

func snapshotNode(ptr uintptr) PaintNode {
	n := (*nativeNode)(unsafe.Pointer(ptr))
	out := PaintNode{
		Path:      snapshotPath(&n.path),
		Color:     Color{R: n.color.r, G: n.color.g, B: n.color.b, A: n.color.a},
		Flag:      int(n.flag),
		BrushType: int(n.brushType),
		FillRule:  int(n.fillRule),
		KeyPath:   goString(n.keypath),
	}

	out.Stroke = Stroke{
		Enabled:    n.stroke.enable != 0,
		Width:      n.stroke.width,
		Cap:        int(n.stroke.cap),
		Join:       int(n.stroke.join),
		MiterLimit: n.stroke.miterLimit,
	}
	if n.stroke.dashArray != 0 && n.stroke.dashArraySize > 0 {
		out.Stroke.Dash = make([]float32, n.stroke.dashArraySize)
		copy(out.Stroke.Dash, unsafe.Slice((*float32)(unsafe.Pointer(n.stroke.dashArray)), n.stroke.dashArraySize))
	}

	out.Gradient = Gradient{
		Type:    int(n.gradient.typ),
		Start:   Point{X: n.gradient.start.x, Y: n.gradient.start.y},
		End:     Point{X: n.gradient.end.x, Y: n.gradient.end.y},
		Center:  Point{X: n.gradient.center.x, Y: n.gradient.center.y},
		Focal:   Point{X: n.gradient.focal.x, Y: n.gradient.focal.y},
		CRadius: n.gradient.cradius,
		FRadius: n.gradient.fradius,
	}
	if n.gradient.stopPtr != 0 && n.gradient.stopCount > 0 {
		out.Gradient.Stops = make([]GradientStop, n.gradient.stopCount)
		for i := range out.Gradient.Stops {
			s := (*nativeGradientStop)(unsafe.Pointer(n.gradient.stopPtr + uintptr(i)*unsafe.Sizeof(nativeGradientStop{})))
			out.Gradient.Stops[i] = GradientStop{Pos: s.pos, Color: Color{R: s.r, G: s.g, B: s.b, A: s.a}}
		}
	}

	out.Image = ImageInfo{
		Width:  int(n.imageInfo.width),
		Height: int(n.imageInfo.height),
		Alpha:  n.imageInfo.alpha,
		Matrix: Matrix{
			M11: n.imageInfo.matrix.m11, M12: n.imageInfo.matrix.m12, M13: n.imageInfo.matrix.m13,
			M21: n.imageInfo.matrix.m21, M22: n.imageInfo.matrix.m22, M23: n.imageInfo.matrix.m23,
			M31: n.imageInfo.matrix.m31, M32: n.imageInfo.matrix.m32, M33: n.imageInfo.matrix.m33,
		},
	}
	if n.imageInfo.data != 0 && n.imageInfo.width > 0 && n.imageInfo.height > 0 {
		size := int(n.imageInfo.width) * int(n.imageInfo.height) * 4
		out.Image.Data = make([]byte, size)
		copy(out.Image.Data, unsafe.Slice((*byte)(unsafe.Pointer(n.imageInfo.data)), size))
	}

	return out
}

// SnapshotLayer deep-copies the native layer tree rooted at ptr. The native
// memory backing the tree is reused by the next render-tree call, so the
// copy happens eagerly, before control returns to the caller.
func SnapshotLayer(ptr uintptr) *LayerNode {
	if ptr == 0 {
		return nil
	}
	n := (*nativeLayerNode)(unsafe.Pointer(ptr))
	out := &LayerNode{
		ClipPath: snapshotPath(&n.clipPath),
		Matte:    int(n.matte),
		Visible:  n.visible != 0,
		Alpha:    n.alpha,
		KeyPath:  goString(n.keypath),
	}

	if n.maskList.ptr != 0 && n.maskList.size > 0 {
		out.Masks = make([]Mask, n.maskList.size)
		for i := range out.Masks {
			m := (*nativeMask)(unsafe.Pointer(n.maskList.ptr + uintptr(i)*unsafe.Sizeof(nativeMask{})))
			out.Masks[i] = Mask{Path: snapshotPath(&m.path), Mode: int(m.mode), Alpha: m.alpha}
		}
	}

	if n.layerList.ptr != 0 && n.layerList.size > 0 {
		out.Layers = make([]LayerNode, 0, n.layerList.size)
		for i := uintptr(0); i < n.layerList.size; i++ {
			child := *(*uintptr)(unsafe.Pointer(n.layerList.ptr + i*ptrSize))
			if c := SnapshotLayer(child); c != nil {
				out.Layers = append(out.Layers, *c)
			}
		}
	}

	if n.nodeList.ptr != 0 && n.nodeList.size > 0 {
		out.Nodes = make([]PaintNode, 0, n.nodeList.size)
		for i := uintptr(0); i < n.nodeList.size; i++ {
			node := *(*uintptr)(unsafe.Pointer(n.nodeList.ptr + i*ptrSize))
			if node != 0 {
				out.Nodes = append(out.Nodes, snapshotNode(node))
			}
		}
	}

	return out
}

// SnapshotMarkers copies the native marker list. ok is false when ptr is
// null, preserving the distinction between "no markers declared" and an
// empty list.
func SnapshotMarkers(ptr uintptr) (markers []Marker, ok bool) {
	if ptr == 0 {
		return nil, false
	}
	list := (*nativeMarkerList)(unsafe.Pointer(ptr))
	markers = make([]Marker, 0, list.size)
	for i := uintptr(0); i < list.size; i++ {
		m := (*nativeMarker)(unsafe.Pointer(list.ptr + i*unsafe.Sizeof(nativeMarker{})))
		markers = append(markers, Marker{
			Name:       goString(m.name),
			StartFrame: int(m.startframe),
			EndFrame:   int(m.endframe),
		})
	}
	return markers, true
}
