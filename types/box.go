package types

// Axis-aligned bounding box. The zero value is the empty box which
// acts as the identity element for Merge.
type Box struct {
	Mini  Vec3
	Maxi  Vec3
	valid bool
}

// Create a box from its two corners.
func NewBox(mini, maxi Vec3) Box {
	return Box{Mini: mini, Maxi: maxi, valid: true}
}

// Returns true if the box contains no points.
func (b *Box) Empty() bool {
	return !b.valid
}

// Grow the box to include a point.
func (b *Box) Extend(p Vec3) {
	if !b.valid {
		b.Mini = p
		b.Maxi = p
		b.valid = true
		return
	}
	b.Mini = MinVec3(b.Mini, p)
	b.Maxi = MaxVec3(b.Maxi, p)
}

// Merge two boxes. Merging with an empty box returns the other
// box unchanged.
func Merge(b1, b2 Box) Box {
	if !b1.valid {
		return b2
	}
	if !b2.valid {
		return b1
	}
	return Box{
		Mini:  MinVec3(b1.Mini, b2.Mini),
		Maxi:  MaxVec3(b1.Maxi, b2.Maxi),
		valid: true,
	}
}

// Get the box center.
func (b *Box) Center() Vec3 {
	return b.Mini.Add(b.Maxi).Mul(0.5)
}

// Get the box surface area. Empty boxes have zero area.
func (b *Box) Area() float32 {
	if !b.valid {
		return 0
	}
	d := b.Maxi.Sub(b.Mini)
	return 2.0 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}

// Intersect the box with a ray using the slab method. Axis-parallel
// rays rely on IEEE infinity semantics for the zero-component divides.
func (b *Box) Hit(r *Ray) bool {
	tmin := -FHitMax
	tmax := FHitMax
	for i := 0; i < 3; i++ {
		t0 := (b.Mini[i] - r.Pos[i]) / r.Dir[i]
		t1 := (b.Maxi[i] - r.Pos[i]) / r.Dir[i]
		if t1 < t0 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}
