package rlottie

import "strconv"

// Property identifies an overridable animation property. Overrides address
// their target through a keypath: object names separated by dots, with *
// matching one level and ** matching any depth.
type Property int32

const (
	// PropertyFillColor sets a fill's color; three values, each in [0, 1].
	PropertyFillColor Property = iota
	// PropertyFillOpacity sets a fill's opacity; one value in [0, 100].
	PropertyFillOpacity
	// PropertyStrokeColor sets a stroke's color; three values, each in [0, 1].
	PropertyStrokeColor
	// PropertyStrokeOpacity sets a stroke's opacity; one value in [0, 100].
	PropertyStrokeOpacity
	// PropertyStrokeWidth sets a stroke's width; one non-negative value.
	PropertyStrokeWidth
	// PropertyTrAnchor sets a layer or group transform anchor; two values.
	PropertyTrAnchor
	// PropertyTrPosition sets a layer or group position; two values.
	PropertyTrPosition
	// PropertyTrScale sets a layer or group scale; two values in [0, 100].
	PropertyTrScale
	// PropertyTrRotation sets a layer or group rotation; one value in
	// [0, 360] degrees.
	PropertyTrRotation
	// PropertyTrOpacity sets a layer or group opacity; one value in [0, 100].
	PropertyTrOpacity
)

// propertyArity maps each property kind to the exact number of values the
// native override entry point expects for it.
var propertyArity = map[Property]int{
	PropertyFillColor:     3,
	PropertyFillOpacity:   1,
	PropertyStrokeColor:   3,
	PropertyStrokeOpacity: 1,
	PropertyStrokeWidth:   1,
	PropertyTrAnchor:      2,
	PropertyTrPosition:    2,
	PropertyTrScale:       2,
	PropertyTrRotation:    1,
	PropertyTrOpacity:     1,
}

var propertyNames = map[Property]string{
	PropertyFillColor:     "FillColor",
	PropertyFillOpacity:   "FillOpacity",
	PropertyStrokeColor:   "StrokeColor",
	PropertyStrokeOpacity: "StrokeOpacity",
	PropertyStrokeWidth:   "StrokeWidth",
	PropertyTrAnchor:      "TrAnchor",
	PropertyTrPosition:    "TrPosition",
	PropertyTrScale:       "TrScale",
	PropertyTrRotation:    "TrRotation",
	PropertyTrOpacity:     "TrOpacity",
}

func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return "Property(" + strconv.Itoa(int(p)) + ")"
}
