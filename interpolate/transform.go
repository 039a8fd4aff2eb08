package interpolate

// TRS is the position/rotation/scale decomposition interpolate.Transform
// operates on — kept local to this package (rather than importing
// internal/geom) so interpolate has no dependency on the rest of the
// engine.
type TRS struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// Transform interpolates position, rotation, and scale independently, then
// the caller recomposes them into a 4x4 matrix.
func Transform(a, b TRS, t float64) TRS {
	return TRS{
		Position: LerpVec3(a.Position, b.Position, t),
		Rotation: LerpQuat(a.Rotation, b.Rotation, t),
		Scale:    LerpVec3(a.Scale, b.Scale, t),
	}
}
