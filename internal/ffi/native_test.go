package ffi

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

// Struct sizes from rlottiecommon.h on a 64-bit ABI. A drift here means the
// snapshot walker reads garbage.
func TestNativeLayout(t *testing.T) {
	if ptrSize != 8 {
		t.Skip("layout assertions assume a 64-bit platform")
	}

	sizes := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"nativePath", unsafe.Sizeof(nativePath{}), 32},
		{"nativeMask", unsafe.Sizeof(nativeMask{}), 40},
		{"nativeLayerNode", unsafe.Sizeof(nativeLayerNode{}), 104},
		{"nativeStroke", unsafe.Sizeof(nativeStroke{}), 40},
		{"nativeGradientStop", unsafe.Sizeof(nativeGradientStop{}), 8},
		{"nativeGradient", unsafe.Sizeof(nativeGradient{}), 64},
		{"nativeImageInfo", unsafe.Sizeof(nativeImageInfo{}), 64},
		{"nativeNode", unsafe.Sizeof(nativeNode{}), 232},
		{"nativeMarker", unsafe.Sizeof(nativeMarker{}), 24},
		{"nativeMarkerList", unsafe.Sizeof(nativeMarkerList{}), 16},
	}
	for _, s := range sizes {
		if s.got != s.want {
			t.Errorf("sizeof(%s) = %d, want %d", s.name, s.got, s.want)
		}
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"nativeLayerNode.keypath", unsafe.Offsetof(nativeLayerNode{}.keypath), 96},
		{"nativeNode.stroke", unsafe.Offsetof(nativeNode{}.stroke), 40},
		{"nativeNode.gradient", unsafe.Offsetof(nativeNode{}.gradient), 80},
		{"nativeNode.imageInfo", unsafe.Offsetof(nativeNode{}.imageInfo), 144},
		{"nativeNode.keypath", unsafe.Offsetof(nativeNode{}.keypath), 224},
		{"nativeGradient.stopPtr", unsafe.Offsetof(nativeGradient{}.stopPtr), 8},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offsetof(%s) = %d, want %d", o.name, o.got, o.want)
		}
	}
}

func TestGoString(t *testing.T) {
	cstr := []byte("hello.keypath\x00trailing")
	got := goString(uintptr(unsafe.Pointer(&cstr[0])))
	if got != "hello.keypath" {
		t.Errorf("goString = %q, want %q", got, "hello.keypath")
	}
	if goString(0) != "" {
		t.Error("goString(NULL) should be empty")
	}
	empty := []byte{0}
	if goString(uintptr(unsafe.Pointer(&empty[0]))) != "" {
		t.Error("goString of empty C string should be empty")
	}
	runtime.KeepAlive(cstr)
	runtime.KeepAlive(empty)
}

func TestSnapshotMarkers(t *testing.T) {
	if markers, ok := SnapshotMarkers(0); ok || markers != nil {
		t.Fatal("null marker list must report absence, not an empty list")
	}

	nameA := []byte("intro\x00")
	nameB := []byte("loop\x00")
	native := []nativeMarker{
		{name: uintptr(unsafe.Pointer(&nameA[0])), startframe: 0, endframe: 25},
		{name: uintptr(unsafe.Pointer(&nameB[0])), startframe: 25, endframe: 50},
	}
	list := nativeMarkerList{ptr: uintptr(unsafe.Pointer(&native[0])), size: 2}

	markers, ok := SnapshotMarkers(uintptr(unsafe.Pointer(&list)))
	if !ok {
		t.Fatal("expected a present marker list")
	}
	want := []Marker{
		{Name: "intro", StartFrame: 0, EndFrame: 25},
		{Name: "loop", StartFrame: 25, EndFrame: 50},
	}
	if diff := cmp.Diff(want, markers); diff != "" {
		t.Errorf("marker snapshot mismatch (-want +got):\n%s", diff)
	}
	runtime.KeepAlive(native)
	runtime.KeepAlive(list)
	runtime.KeepAlive(nameA)
	runtime.KeepAlive(nameB)
}

func TestSnapshotLayer(t *testing.T) {
	if SnapshotLayer(0) != nil {
		t.Fatal("null layer pointer must snapshot to nil")
	}

	points := []float32{0, 0, 10, 0, 10, 10}
	elements := []byte{0, 1, 1}
	dash := []float32{4, 2}
	stops := []nativeGradientStop{
		{pos: 0, r: 255, g: 0, b: 0, a: 255},
		{pos: 1, r: 0, g: 0, b: 255, a: 255},
	}
	nodeKeypath := []byte("shape.fill\x00")

	node := nativeNode{
		path: nativePath{
			ptPtr:    uintptr(unsafe.Pointer(&points[0])),
			ptCount:  uintptr(len(points)),
			elmPtr:   uintptr(unsafe.Pointer(&elements[0])),
			elmCount: uintptr(len(elements)),
		},
		color: nativeColor{r: 10, g: 20, b: 30, a: 255},
		stroke: nativeStroke{
			enable:        1,
			width:         2.5,
			cap:           1,
			join:          2,
			miterLimit:    4,
			dashArray:     uintptr(unsafe.Pointer(&dash[0])),
			dashArraySize: int32(len(dash)),
		},
		gradient: nativeGradient{
			typ:       2,
			stopPtr:   uintptr(unsafe.Pointer(&stops[0])),
			stopCount: uintptr(len(stops)),
			start:     nativePoint{x: 0, y: 0},
			end:       nativePoint{x: 10, y: 10},
			center:    nativePoint{x: 5, y: 5},
			cradius:   7,
		},
		flag:      3,
		brushType: 1,
		fillRule:  0,
		keypath:   uintptr(unsafe.Pointer(&nodeKeypath[0])),
	}
	nodePtrs := []uintptr{uintptr(unsafe.Pointer(&node))}

	childKeypath := []byte("child\x00")
	child := nativeLayerNode{
		visible: 1,
		alpha:   128,
		keypath: uintptr(unsafe.Pointer(&childKeypath[0])),
	}
	childPtrs := []uintptr{uintptr(unsafe.Pointer(&child))}

	masks := []nativeMask{{
		path: nativePath{
			ptPtr:   uintptr(unsafe.Pointer(&points[0])),
			ptCount: 2,
		},
		mode:  1,
		alpha: 200,
	}}

	rootKeypath := []byte("root\x00")
	root := nativeLayerNode{
		maskList:  nativeList{ptr: uintptr(unsafe.Pointer(&masks[0])), size: 1},
		layerList: nativeList{ptr: uintptr(unsafe.Pointer(&childPtrs[0])), size: 1},
		nodeList:  nativeList{ptr: uintptr(unsafe.Pointer(&nodePtrs[0])), size: 1},
		matte:     0,
		visible:   1,
		alpha:     255,
		keypath:   uintptr(unsafe.Pointer(&rootKeypath[0])),
	}

	got := SnapshotLayer(uintptr(unsafe.Pointer(&root)))
	if got == nil {
		t.Fatal("snapshot of a live layer returned nil")
	}

	want := &LayerNode{
		Masks: []Mask{{
			Path:  Path{Points: []float32{0, 0}},
			Mode:  1,
			Alpha: 200,
		}},
		Layers: []LayerNode{{
			Visible: true,
			Alpha:   128,
			KeyPath: "child",
		}},
		Nodes: []PaintNode{{
			Path: Path{
				Points:   []float32{0, 0, 10, 0, 10, 10},
				Elements: []byte{0, 1, 1},
			},
			Color: Color{R: 10, G: 20, B: 30, A: 255},
			Stroke: Stroke{
				Enabled:    true,
				Width:      2.5,
				Cap:        1,
				Join:       2,
				MiterLimit: 4,
				Dash:       []float32{4, 2},
			},
			Gradient: Gradient{
				Type: 2,
				Stops: []GradientStop{
					{Pos: 0, Color: Color{R: 255, A: 255}},
					{Pos: 1, Color: Color{B: 255, A: 255}},
				},
				End:     Point{X: 10, Y: 10},
				Center:  Point{X: 5, Y: 5},
				CRadius: 7,
			},
			Flag:      3,
			BrushType: 1,
			KeyPath:   "shape.fill",
		}},
		Visible: true,
		Alpha:   255,
		KeyPath: "root",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layer snapshot mismatch (-want +got):\n%s", diff)
	}

	// The snapshot must not alias native memory: mutate the sources and
	// confirm the copy is unchanged.
	points[0] = 99
	dash[0] = 99
	if got.Nodes[0].Path.Points[0] != 0 || got.Nodes[0].Stroke.Dash[0] != 4 {
		t.Error("snapshot aliases native memory instead of copying it")
	}

	runtime.KeepAlive(root)
	runtime.KeepAlive(child)
	runtime.KeepAlive(node)
	runtime.KeepAlive(masks)
	runtime.KeepAlive(nodePtrs)
	runtime.KeepAlive(childPtrs)
}
