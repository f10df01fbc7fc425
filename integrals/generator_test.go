// generator_test.go --  This file is part of goHF project.
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
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func hydrogenMolecule(t *testing.T) *Molecule {
	t.Helper()
	mol := &Molecule{BasisName: DefaultBasis}
	require.NoError(t, mol.AddAtom("H", 0, 0, 0))
	require.NoError(t, mol.AddAtom("H", 0, 0, 1.4))
	return mol
}

// waterMolecule is the reference water geometry in bohr.
func waterMolecule(t *testing.T) *Molecule {
	t.Helper()
	mol, err := ParseInput(strings.Split(`Atoms
O   0.000000000000  -0.143225816552   0.000000000000
H   1.638036840407   1.136548822547  -0.000000000000
H  -1.638036840407   1.136548822547  -0.000000000000
end
units bohr`, "\n"))
	require.NoError(t, err)
	return mol
}

func TestBoys(t *testing.T) {
	for n := 0; n < 5; n++ {
		assert.InDelta(t, 1/float64(2*n+1), boys(0, n), 1e-15)
	}
	for _, x := range []float64{1e-9, 1e-6, 0.1, 1, 7.5, 30} {
		want := 0.5 * math.Sqrt(math.Pi/x) * math.Erf(math.Sqrt(x))
		assert.InDelta(t, want, boys(x, 0), 1e-12, "x = %g", x)
	}
	// Downward recursion F_n = (2x F_{n+1} + e^-x) / (2n+1).
	x := 2.5
	assert.InDelta(t, boys(x, 1), (2*x*boys(x, 2)+math.Exp(-x))/3, 1e-12)
}

func TestGeneratorHydrogen(t *testing.T) {
	g, err := NewGenerator(hydrogenMolecule(t), 1)
	require.NoError(t, err)

	require.Equal(t, 2, g.BasisSize())
	assert.Equal(t, 2, g.NElectrons())
	assert.Equal(t, []string{"H1 1s", "H2 1s"}, g.Labels())
	assert.InDelta(t, 1/1.4, g.NuclearRepulsion(), 1e-15)

	const tol = 2e-4
	assert.InDelta(t, 1.0, g.Overlap().At(0, 0), 1e-12)
	assert.InDelta(t, 0.6593, g.Overlap().At(0, 1), tol)
	assert.InDelta(t, 0.7600, g.Kinetic().At(0, 0), tol)
	assert.InDelta(t, 0.2365, g.Kinetic().At(0, 1), tol)
	assert.InDelta(t, -1.8804, g.NuclearAttraction().At(0, 0), tol)
	assert.InDelta(t, -1.1948, g.NuclearAttraction().At(0, 1), tol)
	assert.InDelta(t, 0.7746, g.ERI(0, 0, 0, 0), tol)
	assert.InDelta(t, 0.5697, g.ERI(0, 0, 1, 1), tol)
	assert.InDelta(t, 0.4441, g.ERI(1, 0, 0, 0), tol)
	assert.InDelta(t, 0.2970, g.ERI(1, 0, 1, 0), tol)
}

func TestGeneratorWater(t *testing.T) {
	mol := waterMolecule(t)
	g, err := NewGenerator(mol, 4)
	require.NoError(t, err)

	require.Equal(t, 7, g.BasisSize())
	assert.Equal(t, 10, g.NElectrons())
	assert.Equal(t, "O1 2py", g.Labels()[3])
	assert.Len(t, g.BasisNotes, 3)
	assert.InDelta(t, 8.002367061810450, g.NuclearRepulsion(), 1e-10)

	s := g.Overlap()
	for i := 0; i < 7; i++ {
		assert.InDelta(t, 1.0, s.At(i, i), 1e-10)
	}
	assert.InDelta(t, 0.236703936510848, s.At(0, 1), 1e-6)
	// s and p functions on one center are orthogonal.
	assert.InDelta(t, 0, s.At(1, 2), 1e-14)
	assert.InDelta(t, 29.003199945539588, g.Kinetic().At(0, 0), 1e-4)
	assert.InDelta(t, -61.580595358149914, g.NuclearAttraction().At(0, 0), 1e-4)
	assert.InDelta(t, 4.785065404705506, g.ERI(0, 0, 0, 0), 1e-5)

	// The mirror plane x -> -x maps H1 onto H2 and flips 2px.
	assert.InDelta(t, s.At(0, 5), s.At(0, 6), 1e-12)
	assert.InDelta(t, s.At(2, 5), -s.At(2, 6), 1e-12)
	assert.InDelta(t, g.ERI(5, 5, 0, 0), g.ERI(6, 6, 0, 0), 1e-12)

	var eig mat.EigenSym
	require.True(t, eig.Factorize(s, false))
	assert.Greater(t, eig.Values(nil)[0], 0.0)
}

func TestGeneratorWorkersAgree(t *testing.T) {
	serial, err := NewGenerator(waterMolecule(t), 1)
	require.NoError(t, err)
	parallel, err := NewGenerator(waterMolecule(t), 3)
	require.NoError(t, err)

	serial.ERIStore().Quartets(func(i, j, k, l int, v float64) {
		assert.Equal(t, v, parallel.ERI(i, j, k, l))
	})
}

func TestGeneratorUnknownBasis(t *testing.T) {
	mol := hydrogenMolecule(t)
	mol.BasisName = "cc-pVQZ"
	_, err := NewGenerator(mol, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cc-pVQZ")
}

func TestGeneratorMissingElement(t *testing.T) {
	mol := &Molecule{BasisName: DefaultBasis}
	require.NoError(t, mol.AddAtom("Ne", 0, 0, 0))
	_, err := NewGenerator(mol, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry for Ne")
}

func TestParseInput(t *testing.T) {
	mol, err := ParseInput(strings.Split(`# water in angstrom
Atoms
O  0.0  0.0  0.0
H  0.0  0.0  0.52917720859
end
Basis
STO-3G
end
charge 1
nprocs 2
`, "\n"))
	require.NoError(t, err)

	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, 8, mol.Atoms[0].Z)
	assert.Equal(t, "O1", mol.Atoms[0].Name)
	assert.Equal(t, "H2", mol.Atoms[1].Name)
	assert.InDelta(t, 1.0, mol.Atoms[1].Coords[2], 1e-12)
	assert.Equal(t, "STO-3G", mol.BasisName)
	assert.Equal(t, 1, mol.Charge)
	assert.Equal(t, 2, mol.NProcs)
	assert.Equal(t, 8, mol.NElectrons())
	assert.InDelta(t, 8.0, mol.NucNuc(), 1e-12)
}

func TestParseInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no atoms", "Basis\nSTO-3G\nend", "no Atoms block"},
		{"unterminated", "Atoms\nH 0 0 0", "no end of block Atoms"},
		{"empty atoms", "Atoms\nend", "Atoms block is empty"},
		{"unknown element", "Atoms\nXx 0 0 0\nend", `unknown element "Xx"`},
		{"short coordinates", "Atoms\nH 0 0\nend", "incorrect format of coordinates"},
		{"bad coordinate", "Atoms\nH 0 zero 0\nend", "line 2"},
		{"bad units", "Atoms\nH 0 0 0\nend\nunits furlong", `unknown units "furlong"`},
		{"bad charge", "Atoms\nH 0 0 0\nend\ncharge one", "line 4"},
		{"unknown keyword", "Atoms\nH 0 0 0\nend\nmethod mp2", `unknown keyword "method"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(strings.Split(tt.input, "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestElementTable(t *testing.T) {
	z, err := ElemData.AtomicNumber("he")
	require.NoError(t, err)
	assert.Equal(t, 2, z)
	assert.Equal(t, "Oxygen", ElemData.Name[8])

	_, err = ElemData.AtomicNumber("X")
	assert.Error(t, err)
}
