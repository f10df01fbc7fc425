// elements.go --  This file is part of goHF project.
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
	_ "embed"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

//go:embed data/elements.csv
var elementsCSV string

// Mendeleev is the element table. Row Z holds element Z, row 0 is a dummy.
type Mendeleev struct {
	Z          []int
	Symb, Name []string
	Mass       []float64
}

// ElemData is the built-in element table.
var ElemData = mustBuildMendeleev()

func mustBuildMendeleev() Mendeleev {
	var m Mendeleev
	if err := m.build(strings.Split(elementsCSV, "\n")); err != nil {
		panic(err)
	}
	return m
}

func (m *Mendeleev) build(data []string) error {
	for i, str := range data {
		if i == 0 || strings.TrimSpace(str) == "" {
			continue
		}
		words := strings.Split(strings.TrimSpace(str), ",")
		if len(words) < 4 {
			return errors.Errorf("elements table line %d: want 4 fields, got %d", i+1, len(words))
		}
		z, err := strconv.Atoi(words[0])
		if err != nil {
			return errors.Wrapf(err, "elements table line %d", i+1)
		}
		mass, err := strconv.ParseFloat(words[3], 64)
		if err != nil {
			return errors.Wrapf(err, "elements table line %d", i+1)
		}
		m.Z = append(m.Z, z)
		m.Mass = append(m.Mass, mass)
		m.Symb = append(m.Symb, words[1])
		m.Name = append(m.Name, words[2])
	}
	return nil
}

// AtomicNumber returns Z for an element symbol, matched case-insensitively.
func (m *Mendeleev) AtomicNumber(symbol string) (int, error) {
	idx := slices.IndexFunc(m.Symb, func(s string) bool {
		return strings.EqualFold(s, symbol)
	})
	if idx <= 0 {
		return 0, errors.Errorf("unknown element %q", symbol)
	}
	return m.Z[idx], nil
}
