package noise

import "math"

// Cellular is seeded Worley noise: the sample value is the distance to
// the nearest feature point, which reads as mottled patches once run
// through the burn response curves.
type Cellular struct {
	seed uint64
}

// NewCellular builds a cellular noise source from a seed.
func NewCellular(seed int64) *Cellular {
	return &Cellular{seed: uint64(seed)}
}

// At2 samples the noise at (x, y) and returns a value in [-1, 1].
// One feature point lives in every unit cell; the nine cells around the
// sample are enough to find the nearest one.
func (c *Cellular) At2(x, y float64) float64 {
	cx := floorInt(x)
	cy := floorInt(y)

	minDist := math.Inf(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			ix, iy := cx+dx, cy+dy
			fx, fy := c.feature(ix, iy)
			ddx := x - (float64(ix) + fx)
			ddy := y - (float64(iy) + fy)
			if d := ddx*ddx + ddy*ddy; d < minDist {
				minDist = d
			}
		}
	}

	d := math.Sqrt(minDist)
	if d > 1 {
		d = 1
	}
	return d*2 - 1
}

// feature returns the feature point position inside cell (ix, iy), each
// coordinate in [0, 1).
func (c *Cellular) feature(ix, iy int) (fx, fy float64) {
	h := mix(c.seed ^ uint64(int64(ix))*0x9e3779b97f4a7c15 ^ uint64(int64(iy))*0xc2b2ae3d27d4eb4f)
	fx = float64(h>>11) / float64(1<<53)
	h = mix(h)
	fy = float64(h>>11) / float64(1<<53)
	return fx, fy
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
