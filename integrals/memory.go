// memory.go --  This file is part of goHF project.
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
package integrals

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// Memory is a provider over integrals already held in memory.
type Memory struct {
	s, t, v *mat.SymDense
	eri     *scf.ERIStore
	enuc    float64
	nelec   int
}

// NewMemory checks that all inputs share one basis size.
func NewMemory(s, t, v *mat.SymDense, eri *scf.ERIStore, enuc float64, nelec int) (*Memory, error) {
	if s == nil || t == nil || v == nil || eri == nil {
		return nil, fmt.Errorf("integrals: missing matrix: %w", scf.ErrDimensionMismatch)
	}
	n := s.SymmetricDim()
	if t.SymmetricDim() != n || v.SymmetricDim() != n || eri.BasisSize() != n {
		return nil, fmt.Errorf("integrals: sizes S %d, T %d, V %d, ERI %d: %w",
			n, t.SymmetricDim(), v.SymmetricDim(), eri.BasisSize(), scf.ErrDimensionMismatch)
	}
	return &Memory{s: s, t: t, v: v, eri: eri, enuc: enuc, nelec: nelec}, nil
}

func (m *Memory) BasisSize() int                   { return m.s.SymmetricDim() }
func (m *Memory) NElectrons() int                  { return m.nelec }
func (m *Memory) Overlap() *mat.SymDense           { return m.s }
func (m *Memory) Kinetic() *mat.SymDense           { return m.t }
func (m *Memory) NuclearAttraction() *mat.SymDense { return m.v }
func (m *Memory) ERI(mu, nu, lam, sig int) float64 { return m.eri.At(mu, nu, lam, sig) }
func (m *Memory) NuclearRepulsion() float64        { return m.enuc }
func (m *Memory) ERIStore() *scf.ERIStore          { return m.eri }

// Stub is a provider assembled from functions, for tests that need to
// control a single integral.
type Stub struct {
	N         int
	Electrons int
	Repulsion float64
	OneElec   func(kind Kind, mu, nu int) float64
	TwoElec   func(mu, nu, lam, sig int) float64
}

// Kind names a one-electron integral type.
type Kind int

const (
	OverlapKind Kind = iota
	KineticKind
	NuclearKind
)

func (s *Stub) BasisSize() int  { return s.N }
func (s *Stub) NElectrons() int { return s.Electrons }

func (s *Stub) Overlap() *mat.SymDense           { return s.matrix(OverlapKind) }
func (s *Stub) Kinetic() *mat.SymDense           { return s.matrix(KineticKind) }
func (s *Stub) NuclearAttraction() *mat.SymDense { return s.matrix(NuclearKind) }
func (s *Stub) NuclearRepulsion() float64        { return s.Repulsion }

func (s *Stub) ERI(mu, nu, lam, sig int) float64 {
	if s.TwoElec == nil {
		return 0
	}
	return s.TwoElec(mu, nu, lam, sig)
}

func (s *Stub) matrix(kind Kind) *mat.SymDense {
	m := mat.NewSymDense(s.N, nil)
	for i := 0; i < s.N; i++ {
		for j := i; j < s.N; j++ {
			switch {
			case s.OneElec != nil:
				m.SetSym(i, j, s.OneElec(kind, i, j))
			case kind == OverlapKind && i == j:
				m.SetSym(i, j, 1)
			}
		}
	}
	return m
}
