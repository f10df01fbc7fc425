package scf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func randomSym(n int, seed int64) *mat.SymDense {
	rng := rand.New(rand.NewSource(seed))
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a.SetSym(i, j, 2*rng.Float64()-1)
		}
	}
	return a
}

// bruteG contracts the full tensor without using any symmetry.
func bruteG(eri *ERIStore, p mat.Symmetric) *mat.Dense {
	n := eri.BasisSize()
	g := mat.NewDense(n, n, nil)
	for m := 0; m < n; m++ {
		for nu := 0; nu < n; nu++ {
			var sum float64
			for l := 0; l < n; l++ {
				for s := 0; s < n; s++ {
					sum += p.At(l, s) * (eri.At(m, nu, l, s) - 0.5*eri.At(m, l, nu, s))
				}
			}
			g.Set(m, nu, sum)
		}
	}
	return g
}

func TestFockSingleFunction(t *testing.T) {
	eri := NewERIStore(1)
	_ = eri.Set(0, 0, 0, 0, 1.0557)
	h := mat.NewSymDense(1, []float64{-1.9})
	p := mat.NewSymDense(1, []float64{0.8})
	fb := &FockBuilder{H: h, ERI: eri, Workers: 1}

	assert.InDelta(t, 0.5*0.8*1.0557, fb.TwoElectron(p).At(0, 0), 1e-15)
	assert.InDelta(t, -1.9+0.5*0.8*1.0557, fb.Build(p).At(0, 0), 1e-15)
}

func TestFockMatchesBruteForce(t *testing.T) {
	for _, n := range []int{2, 3, 6} {
		eri := randomStore(n, int64(n))
		p := randomSym(n, 10+int64(n))
		fb := &FockBuilder{H: mat.NewSymDense(n, nil), ERI: eri, Workers: 1}
		assert.True(t, mat.EqualApprox(fb.TwoElectron(p), bruteG(eri, p), 1e-12), "n = %d", n)
	}
}

func TestFockParallelMatchesSerial(t *testing.T) {
	const n = 7
	eri := randomStore(n, 3)
	h := randomSym(n, 4)
	p := randomSym(n, 5)
	serial := (&FockBuilder{H: h, ERI: eri, Workers: 1}).Build(p)
	for _, w := range []int{2, 3, 8, 100} {
		par := (&FockBuilder{H: h, ERI: eri, Workers: w}).Build(p)
		assert.True(t, mat.EqualApprox(serial, par, 1e-12), "workers = %d", w)
		assert.True(t, Symmetric(par, 0))
	}
}

func TestFockZeroDensity(t *testing.T) {
	const n = 3
	h := randomSym(n, 6)
	f := (&FockBuilder{H: h, ERI: randomStore(n, 7)}).Build(mat.NewSymDense(n, nil))
	assert.True(t, mat.Equal(h, f))
}
