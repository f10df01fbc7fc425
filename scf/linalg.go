// linalg.go --  This file is part of goHF project.
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

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// eigh diagonalizes a symmetric matrix and returns its eigenvalues in
// ascending order with the matching eigenvectors as columns.
func eigh(a mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, nil, ErrDiagonalizationFailed
	}
	vals := es.Values(nil)
	vecs := new(mat.Dense)
	es.VectorsTo(vecs)
	if slices.IsSorted(vals) {
		return vals, vecs, nil
	}
	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case vals[a] < vals[b]:
			return -1
		case vals[a] > vals[b]:
			return 1
		}
		return 0
	})
	sorted := make([]float64, n)
	perm := mat.NewDense(n, n, nil)
	for dst, src := range order {
		sorted[dst] = vals[src]
		for r := 0; r < n; r++ {
			perm.Set(r, dst, vecs.At(r, src))
		}
	}
	return sorted, perm, nil
}

// transform returns Xᵀ A X symmetrized.
func transform(x mat.Matrix, a mat.Matrix) *mat.SymDense {
	var tmp, res mat.Dense
	tmp.Mul(x.T(), a)
	res.Mul(&tmp, x)
	return symmetrize(&res)
}

// symmetrize returns ½(A + Aᵀ).
func symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			res.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return res
}

// frobeniusDiff returns ‖A − B‖_F.
func frobeniusDiff(a, b mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(a, b)
	return mat.Norm(&d, 2)
}

// checkSquare reports ErrDimensionMismatch unless m is n×n.
func checkSquare(name string, m mat.Matrix, n int) error {
	if m == nil {
		return fmt.Errorf("%s is nil: %w", name, ErrDimensionMismatch)
	}
	r, c := m.Dims()
	if r != n || c != n {
		return fmt.Errorf("%s is %dx%d, basis has %d functions: %w", name, r, c, n, ErrDimensionMismatch)
	}
	return nil
}
