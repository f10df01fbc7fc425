// eri.go --  This file is part of goHF project.
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

import "fmt"

// ERIStore holds the unique electron repulsion integrals (μν|λσ) of an
// n-function basis, packed by Index. Loaders fill it with Set; once an SCF
// run starts the store is only read and may be shared between goroutines.
type ERIStore struct {
	n     int
	vals  []float64
	pairs [][2]int
}

// NewERIStore allocates a zeroed store of PackedLen(n) integrals.
func NewERIStore(n int) *ERIStore {
	if n < 0 {
		n = 0
	}
	return &ERIStore{
		n:     n,
		vals:  make([]float64, PackedLen(n)),
		pairs: unpairTable(n),
	}
}

// BasisSize returns n.
func (s *ERIStore) BasisSize() int { return s.n }

// Len returns the number of packed integrals.
func (s *ERIStore) Len() int { return len(s.vals) }

// At returns (mu nu|lam sig). Indices outside [0, n) are not checked.
func (s *ERIStore) At(mu, nu, lam, sig int) float64 {
	return s.vals[Index(mu, nu, lam, sig)]
}

// Set stores v for the orbit of (mu nu|lam sig).
func (s *ERIStore) Set(mu, nu, lam, sig int, v float64) error {
	for _, i := range [4]int{mu, nu, lam, sig} {
		if i < 0 || i >= s.n {
			return fmt.Errorf("eri (%d %d|%d %d) outside basis of %d: %w", mu, nu, lam, sig, s.n, ErrDimensionMismatch)
		}
	}
	s.vals[Index(mu, nu, lam, sig)] = v
	return nil
}

// Quartets calls fn once per unique integral with i >= j, k >= l and
// Pair(i, j) >= Pair(k, l), in packed order.
func (s *ERIStore) Quartets(fn func(i, j, k, l int, v float64)) {
	for ij := range s.pairs {
		s.quartetRow(ij, fn)
	}
}

// quartetRow visits the integrals whose leading pair offset is ij.
func (s *ERIStore) quartetRow(ij int, fn func(i, j, k, l int, v float64)) {
	i, j := s.pairs[ij][0], s.pairs[ij][1]
	base := ij * (ij + 1) / 2
	for kl := 0; kl <= ij; kl++ {
		k, l := s.pairs[kl][0], s.pairs[kl][1]
		fn(i, j, k, l, s.vals[base+kl])
	}
}

// Fill sets every unique integral from get, which is called with i >= j,
// k >= l and Pair(i, j) >= Pair(k, l) only.
func (s *ERIStore) Fill(get func(i, j, k, l int) float64) {
	for ij := range s.pairs {
		i, j := s.pairs[ij][0], s.pairs[ij][1]
		base := ij * (ij + 1) / 2
		for kl := 0; kl <= ij; kl++ {
			k, l := s.pairs[kl][0], s.pairs[kl][1]
			s.vals[base+kl] = get(i, j, k, l)
		}
	}
}
