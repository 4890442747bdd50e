package types

import (
	"github.com/chewxy/math32"
)

// Orthonormal basis around a primary axis W.
type Onb struct {
	U Vec3
	V Vec3
	W Vec3
}

// Build an orthonormal basis with W aligned to the given vector. The
// auxiliary axis used to seed the cross products is the coordinate
// axis most perpendicular to W so the basis stays well conditioned
// for any input direction.
func OnbFromW(w Vec3) Onb {
	w = w.Normalize()

	axis := XYZ(1, 0, 0)
	ax := math32.Abs(w[0])
	ay := math32.Abs(w[1])
	az := math32.Abs(w[2])
	if ay <= ax && ay <= az {
		axis = XYZ(0, 1, 0)
	} else if az <= ax && az <= ay {
		axis = XYZ(0, 0, 1)
	}

	u := axis.Cross(w).Normalize()
	v := w.Cross(u)
	return Onb{U: u, V: v, W: w}
}

// Transform a vector expressed in basis coordinates back to world
// coordinates.
func (o *Onb) Local(v Vec3) Vec3 {
	return o.U.Mul(v[0]).Add(o.V.Mul(v[1])).Add(o.W.Mul(v[2]))
}
