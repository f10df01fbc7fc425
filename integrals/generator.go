// generator.go --  This file is part of goHF project.
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
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// Generator computes all integrals of a molecule in its basis set and
// serves them as a provider.
type Generator struct {
	*Memory
	Mol *Molecule
	AOs []AO
	// BasisNotes holds the basis description line for each atom.
	BasisNotes []string
}

// NewGenerator attaches the basis to mol and evaluates every integral.
// ERIs are spread over workers goroutines; workers <= 0 means GOMAXPROCS,
// or mol.NProcs when the input set it.
func NewGenerator(mol *Molecule, workers int) (*Generator, error) {
	if len(mol.Atoms) == 0 {
		return nil, errors.New("molecule has no atoms")
	}
	notes, err := mol.getBasis()
	if err != nil {
		return nil, err
	}
	var aos []AO
	for i, atm := range mol.Atoms {
		for _, sh := range atm.Basis {
			aos = append(aos, expandShell(i, atm, sh)...)
		}
	}
	if workers <= 0 {
		workers = mol.NProcs
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}

	n := len(aos)
	s := mat.NewSymDense(n, nil)
	t := mat.NewSymDense(n, nil)
	v := mat.NewSymDense(n, nil)
	dists := make([]pairDist, scf.Pair(n-1, n-1)+1)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			s.SetSym(i, j, OverlapAO(&aos[i], &aos[j]))
			t.SetSym(i, j, KineticAO(&aos[i], &aos[j]))
			v.SetSym(i, j, NuclearAO(&aos[i], &aos[j], mol.Atoms))
			dists[scf.Pair(i, j)] = newPairDist(&aos[i], &aos[j])
		}
	}

	eri, err := electronRepulsionStore(n, dists, workers)
	if err != nil {
		return nil, err
	}
	mem, err := NewMemory(s, t, v, eri, mol.NucNuc(), mol.NElectrons())
	if err != nil {
		return nil, err
	}
	return &Generator{Memory: mem, Mol: mol, AOs: aos, BasisNotes: notes}, nil
}

// Labels names every basis function, e.g. "O1 2px".
func (g *Generator) Labels() []string {
	res := make([]string, len(g.AOs))
	for i := range g.AOs {
		res[i] = g.AOs[i].Label
	}
	return res
}

// electronRepulsionStore fills the packed store one bra pair (ij) per job;
// each job owns the packed offsets of its row, so workers never share a slot.
func electronRepulsionStore(n int, dists []pairDist, workers int) (*scf.ERIStore, error) {
	eri := scf.NewERIStore(n)
	type job struct{ i, j int }
	jobs := make(chan job)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for jb := range jobs {
				if errs[w] != nil {
					continue
				}
				ij := scf.Pair(jb.i, jb.j)
				for k := 0; k <= jb.i; k++ {
					for l := 0; l <= k; l++ {
						kl := scf.Pair(k, l)
						if kl > ij {
							break
						}
						val := electronRepulsion(dists[ij], dists[kl])
						if err := eri.Set(jb.i, jb.j, k, l, val); err != nil {
							errs[w] = err
						}
					}
				}
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			jobs <- job{i, j}
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return eri, nil
}
