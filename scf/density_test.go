package scf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestDensity(t *testing.T) {
	// Columns are orthonormal in the identity metric.
	c := mat.NewDense(3, 3, []float64{
		0.6, 0.8, 0,
		0.8, -0.6, 0,
		0, 0, 1,
	})
	p := Density(c, 1)
	assert.InDelta(t, 2*0.36, p.At(0, 0), 1e-15)
	assert.InDelta(t, 2*0.48, p.At(0, 1), 1e-15)
	assert.InDelta(t, 2*0.64, p.At(1, 1), 1e-15)
	assert.Equal(t, 0.0, p.At(2, 2))

	s := identity3()
	assert.InDelta(t, 2, ElectronCount(p, s), 1e-14)

	// Closed-shell idempotency: P S P = 2 P.
	var ps, psp mat.Dense
	ps.Mul(p, s)
	psp.Mul(&ps, p)
	var twoP mat.Dense
	twoP.Scale(2, p)
	assert.True(t, mat.EqualApprox(&psp, &twoP, 1e-14))

	assert.True(t, mat.Equal(mat.NewSymDense(3, nil), Density(c, 0)))
}

func TestElectronicEnergy(t *testing.T) {
	p := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})
	h := mat.NewSymDense(2, []float64{-1, -0.5, -0.5, -1})
	f := mat.NewSymDense(2, []float64{-0.5, -0.25, -0.25, -0.5})
	// ½ Σ P(H+F) = ½ (2·(−1.5) + 2·0.5·(−0.75)) = −1.875
	assert.InDelta(t, -1.875, ElectronicEnergy(p, h, f), 1e-15)
}
