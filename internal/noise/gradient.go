// Package noise implements the seeded 2D scalar noise fields the burn
// mask is built from: smooth gradient (Perlin) noise and cellular
// (Worley) noise. Both are pure functions of their inputs; the same
// seed and coordinates always produce the same sample.
package noise

import "math/rand"

// Gradient is seeded Perlin-style gradient noise. The third coordinate
// is used as a layer index so several independent octaves can be drawn
// from one seed without collision.
type Gradient struct {
	perm [512]int
}

// NewGradient builds a gradient noise source from a seed.
func NewGradient(seed int64) *Gradient {
	p := rand.New(rand.NewSource(seed)).Perm(256) //nolint:gosec // G404: deterministic permutation, not security-sensitive
	g := &Gradient{}
	for i, v := range p {
		g.perm[i] = v
		g.perm[i+256] = v
	}
	return g
}

// At samples the noise at (x, y, z) and returns a value in [-1, 1].
func (g *Gradient) At(x, y, z float64) float64 {
	xi := floorInt(x) & 255
	yi := floorInt(y) & 255
	zi := floorInt(z) & 255
	xf := x - float64(floorInt(x))
	yf := y - float64(floorInt(y))
	zf := z - float64(floorInt(z))

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	p := &g.perm
	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[aa], xf, yf, zf), grad(p[ba], xf-1, yf, zf)),
			lerp(u, grad(p[ab], xf, yf-1, zf), grad(p[bb], xf-1, yf-1, zf))),
		lerp(v,
			lerp(u, grad(p[aa+1], xf, yf, zf-1), grad(p[ba+1], xf-1, yf, zf-1)),
			lerp(u, grad(p[ab+1], xf, yf-1, zf-1), grad(p[bb+1], xf-1, yf-1, zf-1))))
}

// At2 samples the noise in the base (z = 0) layer.
func (g *Gradient) At2(x, y float64) float64 {
	return g.At(x, y, 0)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}
