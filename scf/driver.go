// driver.go --  This file is part of goHF project.
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
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults used for zero-valued Options fields.
const (
	DefaultMaxIter    = 50
	DefaultTolEnergy  = 1e-8
	DefaultTolDensity = 1e-6

	// degeneracyTol is the orbital energy gap below which the HOMO and LUMO
	// are treated as one level.
	degeneracyTol = 1e-12
)

// Guess selects the starting density when Options.InitialDensity is nil.
type Guess int

const (
	// GuessZero starts from P = 0, so the first Fock matrix is H.
	GuessZero Guess = iota
	// GuessCore starts from the density of the diagonalized core Hamiltonian.
	GuessCore
)

// Extrapolator may replace the Fock matrix of iteration k before it is
// diagonalized. It is the hook for convergence accelerators; the energy of
// the iteration is always evaluated with the unmodified F.
type Extrapolator interface {
	Extrapolate(k int, f, p *mat.SymDense) *mat.SymDense
}

// Options controls an SCF run. The zero value selects the defaults.
type Options struct {
	MaxIter    int
	TolEnergy  float64
	TolDensity float64

	// Damping is α in P ← αP_new + (1−α)P_old. Zero means 1 (undamped).
	// The mixed density is the one tested for convergence and returned.
	Damping float64

	// LinearDependence is the smallest accepted overlap eigenvalue.
	LinearDependence float64

	// Workers bounds the goroutines of the Fock build; see FockBuilder.
	Workers int

	Guess          Guess
	InitialDensity mat.Symmetric

	Logger       *slog.Logger
	Extrapolator Extrapolator

	// OnIteration, if set, is called after every iteration.
	OnIteration func(Iteration)
}

func (o Options) withDefaults() (Options, error) {
	if o.MaxIter == 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.TolEnergy == 0 {
		o.TolEnergy = DefaultTolEnergy
	}
	if o.TolDensity == 0 {
		o.TolDensity = DefaultTolDensity
	}
	if o.Damping == 0 {
		o.Damping = 1
	}
	if o.LinearDependence == 0 {
		o.LinearDependence = DefaultLinearDependence
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	switch {
	case o.MaxIter < 1:
		return o, fmt.Errorf("scf: max iterations %d must be at least 1", o.MaxIter)
	case o.TolEnergy < 0 || o.TolDensity < 0:
		return o, fmt.Errorf("scf: thresholds must be positive (%g, %g)", o.TolEnergy, o.TolDensity)
	case o.Damping < 0 || o.Damping > 1:
		return o, fmt.Errorf("scf: damping %g outside (0, 1]", o.Damping)
	}
	return o, nil
}

// Input is the full set of integrals for one closed-shell problem.
type Input struct {
	S, T, V          mat.Symmetric
	ERI              *ERIStore
	NuclearRepulsion float64
	NElectrons       int
}

func (in Input) validate() (int, error) {
	if in.S == nil {
		return 0, fmt.Errorf("overlap matrix is nil: %w", ErrDimensionMismatch)
	}
	n := in.S.SymmetricDim()
	if n < 1 {
		return 0, fmt.Errorf("empty basis: %w", ErrDimensionMismatch)
	}
	if err := checkSquare("kinetic matrix", in.T, n); err != nil {
		return 0, err
	}
	if err := checkSquare("nuclear attraction matrix", in.V, n); err != nil {
		return 0, err
	}
	if in.ERI == nil || in.ERI.BasisSize() != n {
		return 0, fmt.Errorf("eri store does not match basis of %d functions: %w", n, ErrDimensionMismatch)
	}
	if in.NElectrons <= 0 || in.NElectrons%2 != 0 || in.NElectrons > 2*n {
		return 0, fmt.Errorf("%d electrons in %d orbitals: %w", in.NElectrons, n, ErrInvalidElectronCount)
	}
	return n, nil
}

// Iteration records one pass of the SCF loop.
type Iteration struct {
	Index  int
	Energy float64
	DeltaE float64
	DeltaP float64

	// OrbitalGradient is the RMS of Xᵀ(FPS − SPF)X for the density of
	// this iteration and its Fock matrix.
	OrbitalGradient float64
}

// Result is the state of the last SCF iteration.
type Result struct {
	TotalEnergy      float64
	ElectronicEnergy float64
	NuclearRepulsion float64

	OrbitalEnergies []float64
	MOCoefficients  *mat.Dense
	Density         *mat.SymDense
	Fock            *mat.SymDense
	CoreHamiltonian *mat.SymDense

	Iterations int
	Converged  bool

	// DegenerateFrontier is set when the highest occupied and lowest
	// virtual orbital energies coincide, making the occupation ambiguous.
	DegenerateFrontier bool

	History []Iteration
}

// Run collects the integrals of p and calls RunSCF.
func Run(ctx context.Context, p Provider, opts Options) (*Result, error) {
	in, err := InputFrom(p)
	if err != nil {
		return nil, err
	}
	return RunSCF(ctx, in, opts)
}

// RunSCF iterates the closed-shell Roothaan equations to self-consistency.
//
// Each iteration k diagonalizes Xᵀ F(k) X, forms P(k+1) from the N_elec/2
// lowest orbitals (mixed with P(k) when damped), builds F(k+1) from it and
// evaluates E(k+1) = ½ tr[P(k+1)(H + F(k+1))] + E_nuc. The first Fock matrix
// is built from the initial density. The run converges when |ΔE| < TolEnergy
// and ‖P(k+1) − P(k)‖_F < TolDensity. After MaxIter iterations without
// convergence the partial result is returned together with a
// *ConvergenceError. The context is checked between iterations only.
func RunSCF(ctx context.Context, in Input, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	n, err := in.validate()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	nocc := in.NElectrons / 2

	h, err := CoreHamiltonian(in.T, in.V)
	if err != nil {
		return nil, err
	}
	x, err := SymmetricOrthogonalizer(in.S, opts.LinearDependence)
	if err != nil {
		return nil, err
	}
	fb := &FockBuilder{H: h, ERI: in.ERI, Workers: opts.Workers}

	p, err := initialDensity(in, opts, h, x, nocc)
	if err != nil {
		return nil, err
	}
	log.Info("starting scf", "basis", n, "electrons", in.NElectrons, "eri", in.ERI.Len(),
		"max_iter", opts.MaxIter, "tol_energy", opts.TolEnergy, "tol_density", opts.TolDensity,
		"damping", opts.Damping)

	mon := NewMonitor(opts.TolEnergy, opts.TolDensity, opts.MaxIter, n, p)
	res := &Result{NuclearRepulsion: in.NuclearRepulsion, CoreHamiltonian: h}
	f := fb.Build(p)
	for k := 0; ; k++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("scf: stopped before iteration %d: %w", k+1, err)
		}
		fd := f
		if opts.Extrapolator != nil {
			fd = opts.Extrapolator.Extrapolate(k, f, p)
		}
		eps, c, err := diagonalize(fd, x)
		if err != nil {
			return nil, fmt.Errorf("fock matrix, iteration %d: %w", k+1, err)
		}
		if nocc < n && eps[nocc]-eps[nocc-1] < degeneracyTol {
			res.DegenerateFrontier = true
			log.Warn("degenerate level split across the occupied/virtual boundary",
				"iter", k+1, "homo", eps[nocc-1], "lumo", eps[nocc])
		}
		pNew := Density(c, nocc)
		if opts.Damping < 1 {
			pNew = damp(pNew, p, opts.Damping)
		}
		fNew := fb.Build(pNew)
		eEl := ElectronicEnergy(pNew, h, fNew)
		grad := orbitalGradient(fNew, pNew, in.S, x)

		verdict := mon.Update(eEl+in.NuclearRepulsion, pNew)
		dE, dP := mon.Last()
		it := Iteration{Index: k + 1, Energy: eEl + in.NuclearRepulsion, DeltaE: dE, DeltaP: dP, OrbitalGradient: grad}
		res.History = append(res.History, it)
		log.Debug("scf iteration", "iter", it.Index, "energy", it.Energy, "dE", dE, "dP", dP, "grad", grad)
		if opts.OnIteration != nil {
			opts.OnIteration(it)
		}

		res.ElectronicEnergy = eEl
		res.TotalEnergy = eEl + in.NuclearRepulsion
		res.OrbitalEnergies = eps
		res.MOCoefficients = c
		res.Fock = fNew
		res.Density = pNew
		res.Iterations = k + 1

		switch verdict {
		case Converged:
			res.Converged = true
			log.Info("scf converged", "iterations", res.Iterations, "energy", res.TotalEnergy)
			return res, nil
		case Exhausted:
			log.Warn("scf not converged", "iterations", res.Iterations, "dE", dE, "dP", dP)
			return res, &ConvergenceError{Result: res, DeltaE: dE, DeltaP: dP}
		}
		p, f = pNew, fNew
	}
}

func initialDensity(in Input, opts Options, h, x *mat.SymDense, nocc int) (*mat.SymDense, error) {
	n := h.SymmetricDim()
	switch {
	case opts.InitialDensity != nil:
		if err := checkSquare("initial density", opts.InitialDensity, n); err != nil {
			return nil, err
		}
		p := mat.NewSymDense(n, nil)
		p.CopySym(opts.InitialDensity)
		return p, nil
	case opts.Guess == GuessCore:
		_, c, err := diagonalize(h, x)
		if err != nil {
			return nil, fmt.Errorf("core guess: %w", err)
		}
		return Density(c, nocc), nil
	}
	return mat.NewSymDense(n, nil), nil
}

// diagonalize solves F C = S C ε through F' = Xᵀ F X and C = X C'.
func diagonalize(f, x *mat.SymDense) ([]float64, *mat.Dense, error) {
	fp := transform(x, f)
	eps, cp, err := eigh(fp)
	if err != nil {
		return nil, nil, err
	}
	c := new(mat.Dense)
	c.Mul(x, cp)
	return eps, c, nil
}

// damp returns α pNew + (1−α) pOld.
func damp(pNew, pOld *mat.SymDense, alpha float64) *mat.SymDense {
	n := pNew.SymmetricDim()
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			res.SetSym(i, j, alpha*pNew.At(i, j)+(1-alpha)*pOld.At(i, j))
		}
	}
	return res
}

// Symmetric reports whether a is symmetric to within tol.
func Symmetric(a mat.Matrix, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if math.Abs(a.At(i, j)-a.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}
