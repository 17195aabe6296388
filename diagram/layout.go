package diagram

import "github.com/archmap-ai/sdk/arch"

// Canvas layout constants. Main-flow components sit on one horizontal lane
// with a fixed spacing; auxiliary components sit on a second lane below,
// aligned with the main-flow component they serve.
const (
	mainFlowY       = 200.0
	auxiliaryY      = 420.0
	mainFlowStartX  = 80.0
	mainFlowSpacing = 160.0
)

var auxiliaryPositions = map[arch.ComponentType]Position{
	arch.TypeEventHandler: {X: 1200, Y: auxiliaryY},
	arch.TypeViewUpdate:   {X: 240, Y: auxiliaryY},
}

// CanonicalPosition returns the fixed canvas position for a component type.
// Main-flow positions advance strictly left to right in flow order. Unknown
// types get the zero position.
func CanonicalPosition(t arch.ComponentType) Position {
	if p, ok := auxiliaryPositions[t]; ok {
		return p
	}
	if t.IsMainFlow() {
		return Position{
			X: mainFlowStartX + float64(t.Ordinal())*mainFlowSpacing,
			Y: mainFlowY,
		}
	}
	return Position{}
}

// DefaultViewport returns the initial canvas viewport.
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}
