// convplot_test.go --  This file is part of goHF project.
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
package convplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/gohf/scf"
)

var history = []scf.Iteration{
	{Index: 1, Energy: -1.0, DeltaE: 1.0, DeltaP: 1.0},
	{Index: 2, Energy: -1.1, DeltaE: 1e-2, DeltaP: 1e-1},
	{Index: 3, Energy: -1.1167, DeltaE: 1e-5, DeltaP: 0},
}

func TestPoints(t *testing.T) {
	dE, dP := Points(history)
	require.Len(t, dE, 2)
	require.Len(t, dP, 2)
	assert.Equal(t, 2.0, dE[0].X)
	assert.InDelta(t, -2.0, dE[0].Y, 1e-12)
	assert.InDelta(t, -5.0, dE[1].Y, 1e-12)
	assert.Equal(t, Floor, dP[1].Y)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.png")
	require.NoError(t, Save(history, "H2 STO-3G", path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}

func TestSaveTooShort(t *testing.T) {
	err := Save(history[:1], "one", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
