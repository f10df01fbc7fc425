// report_test.go --  This file is part of goHF project.
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
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/archive"
	"example.com/gohf/scf"
)

func sampleRun() archive.Run {
	return archive.Run{
		ID:               "01890a5d-ac96-774b-bcce-b302099a8057",
		Label:            "h2",
		BasisSize:        2,
		Electrons:        2,
		TotalEnergy:      -1.116714,
		ElectronicEnergy: -1.831,
		NuclearRepulsion: 0.714286,
		Iterations:       3,
		Converged:        true,
		CreatedAt:        time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
		History: []scf.Iteration{
			{Index: 1, Energy: 0.714286, DeltaE: 0.714286, DeltaP: 1.5, OrbitalGradient: 0.25},
			{Index: 2, Energy: -1.116, DeltaE: 1.830286, DeltaP: 0.01, OrbitalGradient: 0.001},
			{Index: 3, Energy: -1.116714, DeltaE: 0.000714},
		},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteRunDetailsGolden(t *testing.T) {
	var buf bytes.Buffer
	writeRunDetails(&buf, sampleRun())
	newGoldie(t).Assert(t, "run_details", buf.Bytes())
}

func TestWriteRunListGolden(t *testing.T) {
	water := archive.Run{
		ID:          "01890a5d-ac96-774b-bcce-b302099a8000",
		Label:       "water",
		BasisSize:   7,
		Electrons:   10,
		TotalEnergy: -74.942079928192,
		Iterations:  2,
		CreatedAt:   time.Date(2023, 4, 30, 8, 15, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	writeRunList(&buf, []archive.Run{sampleRun(), water})
	newGoldie(t).Assert(t, "run_list", buf.Bytes())
}

func TestWriteReport(t *testing.T) {
	run := sampleRun()
	res := &scf.Result{
		TotalEnergy:      run.TotalEnergy,
		ElectronicEnergy: run.ElectronicEnergy,
		NuclearRepulsion: run.NuclearRepulsion,
		OrbitalEnergies:  []float64{-0.578, 0.670},
		MOCoefficients:   mat.NewDense(2, 2, []float64{0.5489, 1.2115, 0.5489, -1.2115}),
		Density:          mat.NewSymDense(2, []float64{0.6026, 0.6026, 0.6026, 0.6026}),
		Iterations:       run.Iterations,
		History:          run.History,
	}

	var buf bytes.Buffer
	WriteReport(&buf, Report{Title: "h2", Labels: []string{"H1 1s", "H2 1s"}, Electrons: 2, Result: res})
	out := buf.String()

	assert.Contains(t, out, "SCF: h2")
	assert.Contains(t, out, "    1   occ      -0.5780000000")
	assert.Contains(t, out, "    2  virt       0.6700000000")
	assert.Contains(t, out, "Basis functions: H1 1s, H2 1s")
	assert.Contains(t, out, "0.60260000")
	assert.Contains(t, out, "-1.21150000")
	assert.Contains(t, out, "Final total energy =     -1.116714000000 a.u.")
	assert.Contains(t, out, "Warning! SCF NOT converged after 3 iterations.")
	assert.NotContains(t, out, "Degenerate")

	res.Converged = true
	res.DegenerateFrontier = true
	buf.Reset()
	WriteReport(&buf, Report{Title: "h2", Electrons: 2, Result: res})
	assert.Contains(t, buf.String(), "SCF converged after 3 iterations.")
	assert.Contains(t, buf.String(), "Degenerate HOMO and LUMO")
}
