// files_test.go --  This file is part of goHF project.
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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

func TestLoadDirOneBased(t *testing.T) {
	f, err := LoadDir("testdata/h2", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, f.BasisSize())
	assert.Equal(t, 2, f.NElectrons())
	assert.InDelta(t, 0.6593, f.Overlap().At(0, 1), 0)
	assert.InDelta(t, 0.6593, f.Overlap().At(1, 0), 0)
	assert.InDelta(t, -1.8804, f.NuclearAttraction().At(1, 1), 0)
	assert.InDelta(t, 0.2365, f.Kinetic().At(0, 1), 0)
	assert.InDelta(t, 0.2970, f.ERI(0, 1, 1, 0), 0)
	assert.InDelta(t, 0.4441, f.ERI(0, 0, 0, 1), 0)
	assert.InDelta(t, 0.5697, f.ERI(1, 1, 0, 0), 0)
	assert.InDelta(t, 1/1.4, f.NuclearRepulsion(), 1e-14)
}

func TestLoadDirZeroBased(t *testing.T) {
	one, err := LoadDir("testdata/h2", 2)
	require.NoError(t, err)
	zero, err := LoadDir("testdata/h2_zero", 2, WithIndexBase(ZeroBased))
	require.NoError(t, err)

	assertSameIntegrals(t, one, zero, 0)
}

func TestLoadDirWrongIndexBase(t *testing.T) {
	_, err := LoadDir("testdata/h2_zero", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, scf.ErrDimensionMismatch)
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadDir(dir, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDirIndexOutsideBasis(t *testing.T) {
	dir := copyDir(t, "testdata/h2")
	writeText(t, filepath.Join(dir, ERIFile), "1 1 1 1 0.7746\n3 1 1 1 0.1\n")

	_, err := LoadDir(dir, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, scf.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "eri.dat:2")
}

func TestLoadDirMalformedLine(t *testing.T) {
	dir := copyDir(t, "testdata/h2")
	writeText(t, filepath.Join(dir, KineticFile), "1 1 0.76\n2 1\n")

	_, err := LoadDir(dir, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t.dat:2")
}

func TestWriteDirRoundTrip(t *testing.T) {
	src, err := LoadDir("testdata/h2", 2)
	require.NoError(t, err)

	for _, compress := range []bool{false, true} {
		dir := t.TempDir()
		require.NoError(t, WriteDir(dir, src, compress))
		if compress {
			assert.FileExists(t, filepath.Join(dir, ERIFile+".zst"))
			assert.NoFileExists(t, filepath.Join(dir, ERIFile))
		}

		got, err := LoadDir(dir, 2)
		require.NoError(t, err)
		assertSameIntegrals(t, src, got, 1e-14)
	}
}

func TestLoadDirGzip(t *testing.T) {
	dir := copyDir(t, "testdata/h2")
	raw, err := os.ReadFile(filepath.Join(dir, ERIFile))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, ERIFile)))

	out, err := os.Create(filepath.Join(dir, ERIFile+".gz"))
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())

	f, err := LoadDir(dir, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2970, f.ERI(1, 0, 1, 0), 0)
}

func TestFilesRunSCF(t *testing.T) {
	f, err := LoadDir("testdata/h2", 2)
	require.NoError(t, err)

	res, err := scf.Run(context.Background(), f, scf.Options{})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, -1.1167, res.TotalEnergy, 5e-4)
}

func assertSameIntegrals(t *testing.T, want, got scf.Provider, tol float64) {
	t.Helper()
	require.Equal(t, want.BasisSize(), got.BasisSize())
	assert.True(t, mat.EqualApprox(want.Overlap(), got.Overlap(), tol))
	assert.True(t, mat.EqualApprox(want.Kinetic(), got.Kinetic(), tol))
	assert.True(t, mat.EqualApprox(want.NuclearAttraction(), got.NuclearAttraction(), tol))
	assert.InDelta(t, want.NuclearRepulsion(), got.NuclearRepulsion(), tol)
	n := want.BasisSize()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					assert.InDelta(t, want.ERI(i, j, k, l), got.ERI(i, j, k, l), tol, "(%d %d|%d %d)", i, j, k, l)
				}
			}
		}
	}
}

func copyDir(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(src, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, e.Name()), raw, 0o644))
	}
	return dst
}

func writeText(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
}
