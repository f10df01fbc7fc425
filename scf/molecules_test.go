// molecules_test.go --  This file is part of goHF project.
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
package scf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/gohf/integrals"
	"example.com/gohf/scf"
)

func generate(t *testing.T, atoms ...integrals.Atom) *integrals.Generator {
	t.Helper()
	mol := &integrals.Molecule{BasisName: integrals.DefaultBasis}
	for _, a := range atoms {
		require.NoError(t, mol.AddAtom(integrals.ElemData.Symb[a.Z], a.Coords[0], a.Coords[1], a.Coords[2]))
	}
	g, err := integrals.NewGenerator(mol, 0)
	require.NoError(t, err)
	return g
}

func water(t *testing.T) *integrals.Generator {
	return generate(t,
		integrals.Atom{Z: 8, Coords: [3]float64{0, -0.143225816552, 0}},
		integrals.Atom{Z: 1, Coords: [3]float64{1.638036840407, 1.136548822547, 0}},
		integrals.Atom{Z: 1, Coords: [3]float64{-1.638036840407, 1.136548822547, 0}},
	)
}

func TestWaterSTO3G(t *testing.T) {
	g := water(t)
	res, err := scf.Run(context.Background(), g, scf.Options{
		MaxIter:    20,
		TolEnergy:  1e-8,
		TolDensity: 1e-6,
	})
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Iterations, 20)
	assert.InDelta(t, -74.942079928192, res.TotalEnergy, 1e-4)
	assert.InDelta(t, 8.002367061810450, res.NuclearRepulsion, 1e-10)
	assert.InDelta(t, 10.0, scf.ElectronCount(res.Density, g.Overlap()), 1e-8)
	assert.True(t, scf.Symmetric(res.Fock, 1e-12))
	for i := 0; i < 5; i++ {
		assert.Negative(t, res.OrbitalEnergies[i])
	}
	assert.Positive(t, res.OrbitalEnergies[5])

	in, err := scf.InputFrom(g)
	require.NoError(t, err)
	scf.CheckInvariants(t, in, res)
}

func TestWaterParallelFockMatchesSerial(t *testing.T) {
	g := water(t)
	serial, err := scf.Run(context.Background(), g, scf.Options{MaxIter: 100, Workers: 1})
	require.NoError(t, err)
	parallel, err := scf.Run(context.Background(), g, scf.Options{MaxIter: 100, Workers: 4})
	require.NoError(t, err)

	assert.InDelta(t, serial.TotalEnergy, parallel.TotalEnergy, 1e-10)
}

func TestWaterIterationCap(t *testing.T) {
	res, err := scf.Run(context.Background(), water(t), scf.Options{MaxIter: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, scf.ErrDidNotConverge)

	var cerr *scf.ConvergenceError
	require.True(t, errors.As(err, &cerr))
	assert.Same(t, res, cerr.Result)
	assert.Equal(t, 2, cerr.Result.Iterations)
	assert.False(t, cerr.Result.Converged)
	assert.Len(t, cerr.Result.History, 2)
}

func TestHelium(t *testing.T) {
	g := generate(t, integrals.Atom{Z: 2})

	// One basis function fixes the density after the first diagonalization.
	first, err := scf.Run(context.Background(), g, scf.Options{MaxIter: 1})
	require.ErrorIs(t, err, scf.ErrDidNotConverge)
	require.Len(t, first.History, 1)
	assert.InDelta(t, -2.8077839575, first.History[0].Energy, 1e-6)
	assert.InDelta(t, -2.8077839575, first.TotalEnergy, 1e-6)

	res, err := scf.Run(context.Background(), g, scf.Options{})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, -2.8077839575, res.TotalEnergy, 1e-6)
	assert.Zero(t, res.NuclearRepulsion)
	assert.Equal(t, 2, res.Iterations)
}
