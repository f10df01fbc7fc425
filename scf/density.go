// density.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package scf

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Density returns the closed-shell density P = 2 C_occ C_occᵀ built from the
// first nocc columns of c.
func Density(c mat.Matrix, nocc int) *mat.SymDense {
	n, _ := c.Dims()
	p := mat.NewSymDense(n, nil)
	if nocc <= 0 {
		return p
	}
	occ := mat.NewDense(n, nocc, nil)
	occ.Copy(c)
	p.SymOuterK(2, occ)
	return p
}

// ElectronicEnergy returns ½ tr[P(H + F)].
func ElectronicEnergy(p, h, f mat.Matrix) float64 {
	n, _ := p.Dims()
	var e float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			e += p.At(i, j) * (h.At(i, j) + f.At(i, j))
		}
	}
	return 0.5 * e
}

// EnergyFromOrbitals evaluates the electronic energy as
// 2 Σ_occ ε_i + ½ tr[P(H − F)]. It agrees with ElectronicEnergy when P is
// built from the eigenvectors of F.
func EnergyFromOrbitals(eps []float64, nocc int, p, h, f mat.Matrix) float64 {
	e := 2 * floats.Sum(eps[:nocc])
	n, _ := p.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			e += 0.5 * p.At(i, j) * (h.At(i, j) - f.At(i, j))
		}
	}
	return e
}

// ElectronCount returns tr(P S).
func ElectronCount(p, s mat.Matrix) float64 {
	var ps mat.Dense
	ps.Mul(p, s)
	return mat.Trace(&ps)
}

// orbitalGradient is the RMS of the orthogonalized commutator
// Xᵀ(FPS − SPF)X, zero at self-consistency.
func orbitalGradient(f, p, s, x mat.Matrix) float64 {
	var fp, fps mat.Dense
	fp.Mul(f, p)
	fps.Mul(&fp, s)
	var r mat.Dense
	r.Sub(&fps, fps.T())
	var xr, res mat.Dense
	xr.Mul(x.T(), &r)
	res.Mul(&xr, x)
	res.MulElem(&res, &res)
	return math.Sqrt(stat.Mean(res.RawMatrix().Data, nil))
}
