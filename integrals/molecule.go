// molecule.go --  This file is part of goHF project.
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
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BohrAngstrom is the Bohr radius in angstrom.
const BohrAngstrom = 0.52917720859

// Atom is a nucleus with coordinates in bohr.
type Atom struct {
	Z      int
	Name   string
	Coords [3]float64
	Basis  []Shell
}

// Molecule is a parsed input: geometry, charge, basis set and thread count.
type Molecule struct {
	Atoms     []Atom
	Charge    int
	BasisName string
	NProcs    int
}

// ParseInput reads the input file format:
//
//	Atoms
//	O  0.000  0.000  0.000
//	H  0.757  0.586  0.000
//	end
//	Basis
//	STO-3G
//	end
//	charge 0
//	units angstrom
//	nprocs 4
//
// Coordinates are in angstrom unless "units bohr" is given.
func ParseInput(data []string) (*Molecule, error) {
	var atoms bool
	var atomStart, atomEnd int
	unit := 1.0 / BohrAngstrom
	mol := &Molecule{BasisName: DefaultBasis}
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "atoms":
			end, err := findBlockEnd(i, data, "Atoms")
			if err != nil {
				return nil, err
			}
			atoms = true
			atomStart, atomEnd = i, end
			i = end
		case "basis":
			end, err := findBlockEnd(i, data, "Basis")
			if err != nil {
				return nil, err
			}
			if end == i+1 {
				return nil, errors.Errorf("line %d: empty Basis block", i+1)
			}
			mol.BasisName = strings.TrimSpace(data[i+1])
			i = end
		case "nprocs":
			n, err := intArg(words, i)
			if err != nil {
				return nil, err
			}
			mol.NProcs = n
		case "charge":
			q, err := intArg(words, i)
			if err != nil {
				return nil, err
			}
			mol.Charge = q
		case "units":
			if len(words) < 2 {
				return nil, errors.Errorf("line %d: units needs a value", i+1)
			}
			switch strings.ToLower(words[1]) {
			case "bohr", "au":
				unit = 1
			case "angstrom", "a":
				unit = 1.0 / BohrAngstrom
			default:
				return nil, errors.Errorf("line %d: unknown units %q", i+1, words[1])
			}
		default:
			return nil, errors.Errorf("line %d: unknown keyword %q", i+1, words[0])
		}
	}
	if !atoms {
		return nil, errors.New("no Atoms block found")
	}
	if err := mol.addAtoms(data, atomStart+1, atomEnd-1, unit); err != nil {
		return nil, err
	}
	return mol, nil
}

func intArg(words []string, line int) (int, error) {
	if len(words) < 2 {
		return 0, errors.Errorf("line %d: %s needs a value", line+1, words[0])
	}
	v, err := strconv.Atoi(words[1])
	if err != nil {
		return 0, errors.Wrapf(err, "line %d", line+1)
	}
	return v, nil
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n + 1; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 && strings.ToLower(words[0]) == "end" {
			return i, nil
		}
	}
	return 0, errors.Errorf("no end of block %s", bname)
}

func (m *Molecule) addAtoms(data []string, start, end int, unit float64) error {
	for i := start; i < end+1; i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		z, err := ElemData.AtomicNumber(words[0])
		if err != nil {
			return errors.Wrapf(err, "line %d", i+1)
		}
		atm := Atom{Z: z, Name: ElemData.Symb[z] + strconv.Itoa(len(m.Atoms)+1)}
		if len(words) < 4 {
			return errors.Errorf("line %d: incorrect format of coordinates for atom %s", i+1, atm.Name)
		}
		for k := 0; k < 3; k++ {
			x, err := strconv.ParseFloat(words[k+1], 64)
			if err != nil {
				return errors.Wrapf(err, "line %d: atom %s", i+1, atm.Name)
			}
			atm.Coords[k] = x * unit
		}
		m.Atoms = append(m.Atoms, atm)
	}
	if len(m.Atoms) == 0 {
		return errors.New("Atoms block is empty")
	}
	return nil
}

// AddAtom appends an atom given in bohr.
func (m *Molecule) AddAtom(symbol string, x, y, z float64) error {
	nz, err := ElemData.AtomicNumber(symbol)
	if err != nil {
		return err
	}
	m.Atoms = append(m.Atoms, Atom{
		Z:      nz,
		Name:   ElemData.Symb[nz] + strconv.Itoa(len(m.Atoms)+1),
		Coords: [3]float64{x, y, z},
	})
	return nil
}

// NElectrons is the nuclear charge sum less the molecular charge.
func (m *Molecule) NElectrons() int {
	result := 0
	for _, a := range m.Atoms {
		result += a.Z
	}
	return result - m.Charge
}

// NucNuc is the nuclear repulsion energy in hartree.
func (m *Molecule) NucNuc() float64 {
	res := 0.0
	for i := range m.Atoms {
		for j := 0; j < i; j++ {
			res += float64(m.Atoms[i].Z) * float64(m.Atoms[j].Z) /
				distance(m.Atoms[i].Coords, m.Atoms[j].Coords)
		}
	}
	return res
}

func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// getBasis attaches the shells of the named basis to every atom and returns
// the description line per atom.
func (m *Molecule) getBasis() ([]string, error) {
	bs, err := LoadBasis(m.BasisName)
	if err != nil {
		return nil, err
	}
	notes := make([]string, len(m.Atoms))
	for i, atm := range m.Atoms {
		shells, note, err := bs.Shells(ElemData.Symb[atm.Z])
		if err != nil {
			return nil, err
		}
		m.Atoms[i].Basis = shells
		notes[i] = note
	}
	return notes, nil
}
