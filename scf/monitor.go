// monitor.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/mat"
)

// Verdict is the outcome of one Monitor update.
type Verdict int

const (
	Continue Verdict = iota
	Converged
	Exhausted
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Monitor tracks the previous energy and density of an SCF run and decides
// when to stop.
type Monitor struct {
	TolEnergy  float64
	TolDensity float64
	MaxIter    int

	prevE  float64
	prevP  *mat.SymDense
	dE, dP float64
	count  int
}

// NewMonitor starts from energy zero and density p0; a nil p0 is the zero
// matrix of size n.
func NewMonitor(tolE, tolP float64, maxIter, n int, p0 mat.Symmetric) *Monitor {
	m := &Monitor{TolEnergy: tolE, TolDensity: tolP, MaxIter: maxIter}
	m.prevP = mat.NewSymDense(n, nil)
	if p0 != nil {
		m.prevP.CopySym(p0)
	}
	return m
}

// Update compares e and p with the previous pair and stores them.
func (m *Monitor) Update(e float64, p mat.Symmetric) Verdict {
	m.dE = math.Abs(e - m.prevE)
	m.dP = frobeniusDiff(p, m.prevP)
	m.prevE = e
	m.prevP.CopySym(p)
	m.count++
	switch {
	case m.dE < m.TolEnergy && m.dP < m.TolDensity:
		return Converged
	case m.MaxIter > 0 && m.count >= m.MaxIter:
		return Exhausted
	}
	return Continue
}

// Rebase replaces the stored density, for damping where the density carried
// into the next iteration differs from the one passed to Update.
func (m *Monitor) Rebase(p mat.Symmetric) { m.prevP.CopySym(p) }

// Last returns ΔE and ΔP of the latest update.
func (m *Monitor) Last() (dE, dP float64) { return m.dE, m.dP }

// Count returns the number of updates so far.
func (m *Monitor) Count() int { return m.count }
