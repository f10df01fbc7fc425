// provider.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/mat"
)

// Provider supplies the integrals of one problem. File loaders, in-memory
// tables and integral generators all satisfy it.
type Provider interface {
	BasisSize() int
	NElectrons() int
	Overlap() *mat.SymDense
	Kinetic() *mat.SymDense
	NuclearAttraction() *mat.SymDense
	ERI(mu, nu, lam, sig int) float64
	NuclearRepulsion() float64
}

// ERIStorer is implemented by providers that already hold a packed store,
// which is then used as is.
type ERIStorer interface {
	ERIStore() *ERIStore
}

// InputFrom collects the integrals of p. Unless p is an ERIStorer the
// packed store is filled by querying each unique quartet once.
func InputFrom(p Provider) (Input, error) {
	n := p.BasisSize()
	if n <= 0 {
		return Input{}, fmt.Errorf("provider reports %d basis functions: %w", n, ErrDimensionMismatch)
	}
	var eri *ERIStore
	if st, ok := p.(ERIStorer); ok {
		eri = st.ERIStore()
	} else {
		eri = NewERIStore(n)
		eri.Fill(p.ERI)
	}
	return Input{
		S:                p.Overlap(),
		T:                p.Kinetic(),
		V:                p.NuclearAttraction(),
		ERI:              eri,
		NuclearRepulsion: p.NuclearRepulsion(),
		NElectrons:       p.NElectrons(),
	}, nil
}
