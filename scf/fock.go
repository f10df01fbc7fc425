// fock.go --  This file is part of goHF project.
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
package scf

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// FockBuilder assembles F = H + G(P). H and ERI are read-only and may be
// shared by concurrent builds.
type FockBuilder struct {
	H   *mat.SymDense
	ERI *ERIStore

	// Workers is the number of goroutines contracting integrals. Zero
	// means runtime.GOMAXPROCS; one runs on the calling goroutine.
	Workers int
}

// Build returns the Fock matrix for density p.
func (b *FockBuilder) Build(p mat.Symmetric) *mat.SymDense {
	n := b.H.SymmetricDim()
	g := b.twoElectron(p)
	f := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			f.SetSym(i, j, b.H.At(i, j)+0.5*(g[i*n+j]+g[j*n+i]))
		}
	}
	return f
}

// TwoElectron returns G(P) alone,
//
//	G[μν] = Σ_λσ P[λσ] ((μν|λσ) − ½(μλ|νσ)).
func (b *FockBuilder) TwoElectron(p mat.Symmetric) *mat.SymDense {
	n := b.H.SymmetricDim()
	return symmetrize(mat.NewDense(n, n, b.twoElectron(p)))
}

func (b *FockBuilder) twoElectron(p mat.Symmetric) []float64 {
	n := b.ERI.BasisSize()
	dens := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dens[i*n+j] = p.At(i, j)
		}
	}
	rows := len(b.ERI.pairs)
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		g := make([]float64, n*n)
		for ij := 0; ij < rows; ij++ {
			b.ERI.quartetRow(ij, scatter(g, dens, n))
		}
		return g
	}

	// Rows are dealt round-robin since row ij holds ij+1 integrals.
	parts := make([][]float64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		parts[w] = make([]float64, n*n)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			fn := scatter(parts[w], dens, n)
			for ij := w; ij < rows; ij += workers {
				b.ERI.quartetRow(ij, fn)
			}
		}(w)
	}
	wg.Wait()
	g := parts[0]
	for _, part := range parts[1:] {
		for i, v := range part {
			g[i] += v
		}
	}
	return g
}

// scatter returns a visitor adding the Coulomb and exchange contributions of
// one unique integral, expanded over its distinct index permutations, to g.
func scatter(g, dens []float64, n int) func(i, j, k, l int, v float64) {
	return func(i, j, k, l int, v float64) {
		if v == 0 {
			return
		}
		perms := [8][4]int{
			{i, j, k, l}, {j, i, k, l}, {i, j, l, k}, {j, i, l, k},
			{k, l, i, j}, {l, k, i, j}, {k, l, j, i}, {l, k, j, i},
		}
		for a := range perms {
			if seen(perms[:a], perms[a]) {
				continue
			}
			p, q, r, s := perms[a][0], perms[a][1], perms[a][2], perms[a][3]
			g[p*n+q] += dens[r*n+s] * v
			g[p*n+r] -= 0.5 * dens[q*n+s] * v
		}
	}
}

func seen(prev [][4]int, x [4]int) bool {
	for _, p := range prev {
		if p == x {
			return true
		}
	}
	return false
}
