// basis.go --  This file is part of goHF project.
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
	"embed"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//go:embed data/basis/*.txt
var basisFS embed.FS

// DefaultBasis is used when an input names no basis set.
const DefaultBasis = "STO-3G"

// Shell is a contracted shell of angular momentum L.
type Shell struct {
	N, L  int
	Prims []PrimitiveGauss
}

// PrimitiveGauss is one primitive of a contraction. PreExp is the
// contraction coefficient for a normalized primitive.
type PrimitiveGauss struct {
	Zeta, PreExp float64
}

// BasisSet holds the text of a basis file.
type BasisSet struct {
	Name string
	data []string
}

// LoadBasis reads a built-in basis set by name, e.g. "STO-3G".
func LoadBasis(name string) (*BasisSet, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil, errors.New("empty basis name")
	}
	bFile := "data/basis/" + strings.ToLower(fields[0]) + ".txt"
	raw, err := basisFS.ReadFile(bFile)
	if err != nil {
		return nil, errors.Wrapf(err, "basis %s is not available", fields[0])
	}
	return &BasisSet{Name: fields[0], data: strings.Split(string(raw), "\n")}, nil
}

// Shells returns the shells for an element and the description line that
// follows its ATOM header.
func (b *BasisSet) Shells(symbol string) ([]Shell, string, error) {
	for j, str := range b.data {
		words := strings.Fields(str)
		if len(words) > 1 && words[0] == "ATOM" && words[1] == strings.ToUpper(symbol) {
			if j+2 >= len(b.data) {
				return nil, "", errors.Errorf("basis %s: truncated entry for %s", b.Name, symbol)
			}
			shells, err := parseShells(b.data, j+2)
			if err != nil {
				return nil, "", errors.Wrapf(err, "basis %s, element %s", b.Name, symbol)
			}
			return shells, strings.TrimSpace(b.data[j+1]), nil
		}
	}
	return nil, "", errors.Errorf("basis %s has no entry for %s", b.Name, symbol)
}

func parseShells(data []string, pos int) ([]Shell, error) {
	field := func(line, idx int) (string, error) {
		if line >= len(data) {
			return "", errors.Errorf("unexpected end of basis data at line %d", line+1)
		}
		words := strings.Fields(data[line])
		if idx >= len(words) {
			return "", errors.Errorf("line %d: missing field %d", line+1, idx+1)
		}
		return words[idx], nil
	}
	atoi := func(line, idx int) (int, error) {
		s, err := field(line, idx)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		return v, errors.Wrapf(err, "line %d", line+1)
	}
	atof := func(line, idx int) (float64, error) {
		s, err := field(line, idx)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		return v, errors.Wrapf(err, "line %d", line+1)
	}

	nOrbs, err := atoi(pos, 0)
	if err != nil {
		return nil, err
	}
	pos++
	shells := make([]Shell, 0, nOrbs)
	for k := 0; k < nOrbs; k++ {
		var sh Shell
		var nPrim int
		if sh.N, err = atoi(pos, 0); err != nil {
			return nil, err
		}
		if sh.L, err = atoi(pos, 1); err != nil {
			return nil, err
		}
		if sh.L > 1 {
			return nil, errors.Errorf("line %d: angular momentum %d is not supported", pos+1, sh.L)
		}
		if nPrim, err = atoi(pos, 2); err != nil {
			return nil, err
		}
		pos++
		for l := 0; l < nPrim; l++ {
			var pg PrimitiveGauss
			if pg.Zeta, err = atof(pos, 0); err != nil {
				return nil, err
			}
			if pg.PreExp, err = atof(pos, 1); err != nil {
				return nil, err
			}
			sh.Prims = append(sh.Prims, pg)
			pos++
		}
		shells = append(shells, sh)
	}
	return shells, nil
}
