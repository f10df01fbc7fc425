// convplot.go --  This file is part of goHF project.
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

// Package convplot draws SCF convergence curves.
package convplot

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"example.com/gohf/scf"
)

// Floor is the log10 value drawn for a change that is exactly zero.
const Floor = -16.0

// Points returns log10 ΔE and log10 ΔP against the iteration number. The
// first iteration is skipped: its changes are measured from the start
// values, not from a previous iteration.
func Points(history []scf.Iteration) (dE, dP plotter.XYs) {
	for _, it := range history {
		if it.Index < 2 {
			continue
		}
		dE = append(dE, plotter.XY{X: float64(it.Index), Y: log10(it.DeltaE)})
		dP = append(dP, plotter.XY{X: float64(it.Index), Y: log10(it.DeltaP)})
	}
	return dE, dP
}

func log10(v float64) float64 {
	if v <= 0 {
		return Floor
	}
	return math.Max(math.Log10(v), Floor)
}

// Save writes the convergence plot of history to path. The image format
// follows the file extension (.png, .svg, .pdf).
func Save(history []scf.Iteration, title, path string) error {
	dE, dP := Points(history)
	if len(dE) == 0 {
		return errors.New("convplot: need at least two iterations")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10 change"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "ΔE", dE, "ΔP", dP); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
