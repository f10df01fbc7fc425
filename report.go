// report.go --  This file is part of goHF project.
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
package main

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"example.com/gohf/archive"
	"example.com/gohf/scf"
)

// Report is the printable summary of one SCF run.
type Report struct {
	Title     string
	Labels    []string
	Electrons int
	Result    *scf.Result
}

func delimiter(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 70))
}

// WriteReport prints the text summary of a finished or abandoned run.
func WriteReport(w io.Writer, r Report) {
	res := r.Result
	nocc := r.Electrons / 2

	fmt.Fprintln(w, "SCF:", r.Title)
	delimiter(w)
	writeIterations(w, res.History)

	fmt.Fprintln(w, "Orbital energies (a.u.):")
	for i, e := range res.OrbitalEnergies {
		occ := "virt"
		if i < nocc {
			occ = "occ"
		}
		fmt.Fprintf(w, "%5d %5s %18.10f\n", i+1, occ, e)
	}
	delimiter(w)

	if len(r.Labels) > 0 {
		fmt.Fprintln(w, "Basis functions:", strings.Join(r.Labels, ", "))
	}
	fmt.Fprintln(w, "MO coefficients:")
	PrintDense(w, res.MOCoefficients)
	fmt.Fprintln(w, "Density matrix:")
	PrintDense(w, res.Density)
	delimiter(w)

	fmt.Fprintf(w, "Nuclei Repulsion Energy: %.12f a.u.\n", res.NuclearRepulsion)
	fmt.Fprintf(w, "Electronic energy:       %.12f a.u.\n", res.ElectronicEnergy)
	fmt.Fprintf(w, "Final total energy =     %.12f a.u.\n", res.TotalEnergy)
	switch {
	case res.Converged:
		fmt.Fprintf(w, "SCF converged after %d iterations.\n", res.Iterations)
	default:
		fmt.Fprintf(w, "Warning! SCF NOT converged after %d iterations.\n", res.Iterations)
	}
	if res.DegenerateFrontier {
		fmt.Fprintln(w, "Warning! Degenerate HOMO and LUMO; the occupied set is arbitrary.")
	}
	delimiter(w)
}

func writeIterations(w io.Writer, history []scf.Iteration) {
	fmt.Fprintf(w, "%5s %20s %12s %12s %12s\n", "iter", "energy", "dE", "dP", "grad")
	for _, it := range history {
		fmt.Fprintf(w, "%5d %20.12f %12.4e %12.4e %12.4e\n", it.Index, it.Energy, it.DeltaE, it.DeltaP, it.OrbitalGradient)
	}
	delimiter(w)
}

const timeLayout = "2006-01-02 15:04:05"

func writeRunList(w io.Writer, runs []archive.Run) {
	fmt.Fprintf(w, "%-36s  %-19s  %-12s %5s %5s %20s %5s %s\n",
		"id", "created", "label", "nbf", "nelec", "energy", "iter", "conv")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-19s  %-12s %5d %5d %20.12f %5d %t\n",
			r.ID, r.CreatedAt.Format(timeLayout), r.Label, r.BasisSize, r.Electrons, r.TotalEnergy, r.Iterations, r.Converged)
	}
}

func writeRunDetails(w io.Writer, r archive.Run) {
	fmt.Fprintf(w, "Run:               %s\n", r.ID)
	fmt.Fprintf(w, "Label:             %s\n", r.Label)
	fmt.Fprintf(w, "Created:           %s\n", r.CreatedAt.Format(timeLayout))
	fmt.Fprintf(w, "Basis functions:   %d\n", r.BasisSize)
	fmt.Fprintf(w, "Electrons:         %d\n", r.Electrons)
	fmt.Fprintf(w, "Converged:         %t after %d iterations\n", r.Converged, r.Iterations)
	fmt.Fprintf(w, "Total energy:      %.12f a.u.\n", r.TotalEnergy)
	fmt.Fprintf(w, "Electronic energy: %.12f a.u.\n", r.ElectronicEnergy)
	fmt.Fprintf(w, "Nuclear repulsion: %.12f a.u.\n", r.NuclearRepulsion)
	delimiter(w)
	writeIterations(w, r.History)
}

// PrintDense writes m with eight decimals.
func PrintDense(w io.Writer, m mat.Matrix) {
	if m == nil {
		fmt.Fprintln(w, "    <none>")
		return
	}
	fa := mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "    %.8f\n", fa)
}
