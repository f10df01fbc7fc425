// errors.go --  This file is part of goHF project.
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
	"errors"
	"fmt"
)

// Every error returned by this package matches one of these with errors.Is.
// None of them is retried inside a run.
var (
	// ErrDimensionMismatch: input matrices disagree on n, or an ERI index
	// is out of range.
	ErrDimensionMismatch = errors.New("scf: dimension mismatch")

	// ErrIllConditioned: an overlap eigenvalue fell below the linear
	// dependence threshold.
	ErrIllConditioned = errors.New("scf: overlap matrix is ill-conditioned")

	// ErrDiagonalizationFailed: the symmetric eigensolver did not converge.
	ErrDiagonalizationFailed = errors.New("scf: eigendecomposition failed")

	// ErrInvalidElectronCount: N_elec is odd, not positive, or above 2n.
	ErrInvalidElectronCount = errors.New("scf: invalid electron count for closed shell")

	// ErrDidNotConverge: MaxIter iterations ran without meeting both
	// thresholds.
	ErrDidNotConverge = errors.New("scf: did not converge")
)

// IllConditionedError reports the smallest overlap eigenvalue. A caller
// seeing it should drop near-dependent functions (canonical
// orthogonalization) before retrying.
type IllConditionedError struct {
	MinEigenvalue float64
	Threshold     float64
}

func (e *IllConditionedError) Error() string {
	return fmt.Sprintf("scf: smallest overlap eigenvalue %.3e below %.3e", e.MinEigenvalue, e.Threshold)
}

func (e *IllConditionedError) Unwrap() error { return ErrIllConditioned }

// ConvergenceError is returned when the iteration cap is reached. Result
// holds the state of the last iteration so near-converged runs can be
// inspected or restarted from Result.Density.
type ConvergenceError struct {
	Result *Result
	DeltaE float64
	DeltaP float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("scf: not converged after %d iterations (dE = %.3e, dP = %.3e)",
		e.Result.Iterations, e.DeltaE, e.DeltaP)
}

func (e *ConvergenceError) Unwrap() error { return ErrDidNotConverge }
