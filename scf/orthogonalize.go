// orthogonalize.go --  This file is part of goHF project.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultLinearDependence is the smallest overlap eigenvalue accepted by
// SymmetricOrthogonalizer when no threshold is given.
const DefaultLinearDependence = 1e-7

// SymmetricOrthogonalizer returns the Löwdin orthogonalizer
//
//	X = U diag(λ^-1/2) Uᵀ,  S = U diag(λ) Uᵀ
//
// so that Xᵀ S X = I. An eigenvalue below linDep gives an
// *IllConditionedError; linDep <= 0 selects DefaultLinearDependence.
func SymmetricOrthogonalizer(s mat.Symmetric, linDep float64) (*mat.SymDense, error) {
	if linDep <= 0 {
		linDep = DefaultLinearDependence
	}
	n := s.SymmetricDim()
	vals, vecs, err := eigh(s)
	if err != nil {
		return nil, fmt.Errorf("overlap: %w", err)
	}
	if low := floats.Min(vals); low < linDep {
		return nil, &IllConditionedError{MinEigenvalue: low, Threshold: linDep}
	}
	inv := make([]float64, n)
	for k, l := range vals {
		inv[k] = 1 / math.Sqrt(l)
	}
	x := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += vecs.At(i, k) * inv[k] * vecs.At(j, k)
			}
			x.SetSym(i, j, sum)
		}
	}
	return x, nil
}
