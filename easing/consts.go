package easing

// The standard CSS easing catalogue (easings.net), in/out/in-out for sine,
// quad, cubic, quart, quint, expo, circ, back. Control points are part of
// the external interface and must be reproduced bit-identically.
var (
	EaseInSine  = NewCubicBezier(0.12, 0, 0.39, 0)
	EaseOutSine = NewCubicBezier(0.61, 1, 0.88, 1)
	EaseInOutSine = NewCubicBezier(0.37, 0, 0.63, 1)

	EaseInQuad    = NewCubicBezier(0.11, 0, 0.5, 0)
	EaseOutQuad   = NewCubicBezier(0.5, 1, 0.89, 1)
	EaseInOutQuad = NewCubicBezier(0.45, 0, 0.55, 1)

	EaseInCubic    = NewCubicBezier(0.32, 0, 0.67, 0)
	EaseOutCubic   = NewCubicBezier(0.33, 1, 0.68, 1)
	EaseInOutCubic = NewCubicBezier(0.65, 0, 0.35, 1)

	EaseInQuart    = NewCubicBezier(0.5, 0, 0.75, 0)
	EaseOutQuart   = NewCubicBezier(0.25, 1, 0.5, 1)
	EaseInOutQuart = NewCubicBezier(0.76, 0, 0.24, 1)

	EaseInQuint    = NewCubicBezier(0.64, 0, 0.78, 0)
	EaseOutQuint   = NewCubicBezier(0.22, 1, 0.36, 1)
	EaseInOutQuint = NewCubicBezier(0.83, 0, 0.17, 1)

	EaseInExpo    = NewCubicBezier(0.7, 0, 0.84, 0)
	EaseOutExpo   = NewCubicBezier(0.16, 1, 0.3, 1)
	EaseInOutExpo = NewCubicBezier(0.87, 0, 0.13, 1)

	EaseInCirc    = NewCubicBezier(0.55, 0, 1, 0.45)
	EaseOutCirc   = NewCubicBezier(0, 0.55, 0.45, 1)
	EaseInOutCirc = NewCubicBezier(0.85, 0, 0.15, 1)

	EaseInBack    = NewCubicBezier(0.36, 0, 0.66, -0.56)
	EaseOutBack   = NewCubicBezier(0.34, 1.56, 0.64, 1)
	EaseInOutBack = NewCubicBezier(0.68, -0.6, 0.32, 1.6)
)

// Catalogue maps the canonical CSS names to their easing, for lookup by
// host code that stores a name rather than a *CubicBezier value.
var Catalogue = map[string]*CubicBezier{
	"ease-in-sine":      EaseInSine,
	"ease-out-sine":     EaseOutSine,
	"ease-in-out-sine":  EaseInOutSine,
	"ease-in-quad":      EaseInQuad,
	"ease-out-quad":     EaseOutQuad,
	"ease-in-out-quad":  EaseInOutQuad,
	"ease-in-cubic":     EaseInCubic,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
	"ease-in-quart":     EaseInQuart,
	"ease-out-quart":    EaseOutQuart,
	"ease-in-out-quart": EaseInOutQuart,
	"ease-in-quint":     EaseInQuint,
	"ease-out-quint":    EaseOutQuint,
	"ease-in-out-quint": EaseInOutQuint,
	"ease-in-expo":      EaseInExpo,
	"ease-out-expo":     EaseOutExpo,
	"ease-in-out-expo":  EaseInOutExpo,
	"ease-in-circ":      EaseInCirc,
	"ease-out-circ":     EaseOutCirc,
	"ease-in-out-circ":  EaseInOutCirc,
	"ease-in-back":      EaseInBack,
	"ease-out-back":     EaseOutBack,
	"ease-in-out-back":  EaseInOutBack,
}
