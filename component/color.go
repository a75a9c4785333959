package component

// Color is an opaque render tag; physics copies it but never reads it
// Components are HSL: H in [0,360), S and L in [0,1]
type Color struct {
	H, S, L float64
}

// Default saturation/lightness used for spawned and merged bodies
const (
	DefaultSaturation = 0.70
	DefaultLightness  = 0.60
)

// HueColor returns a Color at the default saturation and lightness
func HueColor(hue float64) Color {
	return Color{H: hue, S: DefaultSaturation, L: DefaultLightness}
}
