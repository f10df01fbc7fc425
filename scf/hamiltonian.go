// hamiltonian.go --  This file is part of goHF project.
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
	"gonum.org/v1/gonum/mat"
)

// CoreHamiltonian returns H = T + V.
func CoreHamiltonian(t, v mat.Symmetric) (*mat.SymDense, error) {
	n := t.SymmetricDim()
	if err := checkSquare("nuclear attraction matrix", v, n); err != nil {
		return nil, err
	}
	h := mat.NewSymDense(n, nil)
	h.AddSym(t, v)
	return h, nil
}
