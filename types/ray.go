package types

// Ray with an origin and a direction.
type Ray struct {
	Pos Vec3
	Dir Vec3
}

// Create a new ray.
func NewRay(pos, dir Vec3) Ray {
	return Ray{Pos: pos, Dir: dir}
}

// Get a point along the ray at distance t.
func (r *Ray) At(t float32) Vec3 {
	return r.Pos.Add(r.Dir.Mul(t))
}
