// gaussian.go --  This file is part of goHF project.
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

// McMurchie-Davidson integrals over contracted Cartesian Gaussians.
// Helgaker, Jorgensen, Olsen, Molecular Electronic-Structure Theory, ch. 9.

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
)

// AO is a contracted Cartesian Gaussian x^l y^m z^n exp(-a r^2) centred on
// an atom. Coeff already includes the primitive normalization.
type AO struct {
	Atom   int
	Label  string
	Coords [3]float64
	L      [3]int
	Alpha  []float64
	Coeff  []float64
}

var cartesian = [2][][3]int{
	{{0, 0, 0}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

var cartesianSuffix = [2][]string{{"s"}, {"px", "py", "pz"}}

// expandShell returns the normalized Cartesian functions of a shell.
func expandShell(atomIdx int, atm Atom, sh Shell) []AO {
	var res []AO
	for k, lmn := range cartesian[sh.L] {
		ao := AO{
			Atom:   atomIdx,
			Label:  atm.Name + " " + strconv.Itoa(sh.N) + cartesianSuffix[sh.L][k],
			Coords: atm.Coords,
			L:      lmn,
		}
		for _, pg := range sh.Prims {
			ao.Alpha = append(ao.Alpha, pg.Zeta)
			ao.Coeff = append(ao.Coeff, pg.PreExp*primitiveNorm(pg.Zeta, lmn))
		}
		ao.normalize()
		res = append(res, ao)
	}
	return res
}

func doubleFactorial(n int) float64 {
	res := 1.0
	for ; n > 1; n -= 2 {
		res *= float64(n)
	}
	return res
}

func primitiveNorm(alpha float64, lmn [3]int) float64 {
	l := lmn[0] + lmn[1] + lmn[2]
	df := doubleFactorial(2*lmn[0]-1) * doubleFactorial(2*lmn[1]-1) * doubleFactorial(2*lmn[2]-1)
	return math.Pow(2*alpha/math.Pi, 0.75) * math.Pow(4*alpha, float64(l)/2) / math.Sqrt(df)
}

// normalize rescales the contraction to unit self-overlap.
func (f *AO) normalize() {
	s := OverlapAO(f, f)
	floats.Scale(1/math.Sqrt(s), f.Coeff)
}

func boys(x float64, n int) float64 {
	nf := float64(n)
	if x < 1e-8 {
		return 1/(2*nf+1) - x/(2*nf+3)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2 * math.Pow(x, nf+0.5))
}

// hermiteE is the expansion coefficient E^{ij}_t of a one-dimensional
// Gaussian overlap distribution in Hermite Gaussians; qx = A_x - B_x.
func hermiteE(i, j, t int, qx, a, b float64) float64 {
	p := a + b
	q := a * b / p
	switch {
	case i < 0 || j < 0 || t < 0 || t > i+j:
		return 0
	case i == 0 && j == 0 && t == 0:
		return math.Exp(-q * qx * qx)
	case j == 0:
		return hermiteE(i-1, j, t-1, qx, a, b)/(2*p) -
			q*qx/a*hermiteE(i-1, j, t, qx, a, b) +
			float64(t+1)*hermiteE(i-1, j, t+1, qx, a, b)
	default:
		return hermiteE(i, j-1, t-1, qx, a, b)/(2*p) +
			q*qx/b*hermiteE(i, j-1, t, qx, a, b) +
			float64(t+1)*hermiteE(i, j-1, t+1, qx, a, b)
	}
}

func hermiteCoeffs(i, j int, qx, a, b float64) []float64 {
	res := make([]float64, i+j+1)
	for t := range res {
		res[t] = hermiteE(i, j, t, qx, a, b)
	}
	return res
}

// hermiteR holds the Hermite Coulomb integrals R^0_{tuv} for t+u+v <= lmax.
type hermiteR struct {
	d    int
	vals []float64
}

func newHermiteR(lmax int, p float64, pc [3]float64) hermiteR {
	d := lmax + 1
	idx := func(n, t, u, v int) int { return ((n*d+t)*d+u)*d + v }
	r := hermiteR{d: d, vals: make([]float64, d*d*d*d)}
	x := p * (pc[0]*pc[0] + pc[1]*pc[1] + pc[2]*pc[2])
	for n := lmax; n >= 0; n-- {
		r.vals[idx(n, 0, 0, 0)] = math.Pow(-2*p, float64(n)) * boys(x, n)
		for t := 0; t <= lmax-n; t++ {
			for u := 0; u <= lmax-n-t; u++ {
				for v := 0; v <= lmax-n-t-u; v++ {
					var val float64
					switch {
					case t > 0:
						val = pc[0] * r.vals[idx(n+1, t-1, u, v)]
						if t > 1 {
							val += float64(t-1) * r.vals[idx(n+1, t-2, u, v)]
						}
					case u > 0:
						val = pc[1] * r.vals[idx(n+1, t, u-1, v)]
						if u > 1 {
							val += float64(u-1) * r.vals[idx(n+1, t, u-2, v)]
						}
					case v > 0:
						val = pc[2] * r.vals[idx(n+1, t, u, v-1)]
						if v > 1 {
							val += float64(v-1) * r.vals[idx(n+1, t, u, v-2)]
						}
					default:
						continue
					}
					r.vals[idx(n, t, u, v)] = val
				}
			}
		}
	}
	return r
}

func (r hermiteR) at(t, u, v int) float64 {
	return r.vals[(t*r.d+u)*r.d+v]
}

func productCenter(a float64, A [3]float64, b float64, B [3]float64) [3]float64 {
	p := a + b
	return [3]float64{(a*A[0] + b*B[0]) / p, (a*A[1] + b*B[1]) / p, (a*A[2] + b*B[2]) / p}
}

func overlapPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64) float64 {
	sx := hermiteE(l1[0], l2[0], 0, A[0]-B[0], a, b)
	sy := hermiteE(l1[1], l2[1], 0, A[1]-B[1], a, b)
	sz := hermiteE(l1[2], l2[2], 0, A[2]-B[2], a, b)
	return sx * sy * sz * math.Pow(math.Pi/(a+b), 1.5)
}

func kineticPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64) float64 {
	shifted := func(k, d int) [3]int {
		l := l2
		l[k] += d
		return l
	}
	res := b * float64(2*(l2[0]+l2[1]+l2[2])+3) * overlapPrim(a, l1, A, b, l2, B)
	for k := 0; k < 3; k++ {
		res -= 2 * b * b * overlapPrim(a, l1, A, b, shifted(k, 2), B)
		if l2[k] > 1 {
			res -= 0.5 * float64(l2[k]*(l2[k]-1)) * overlapPrim(a, l1, A, b, shifted(k, -2), B)
		}
	}
	return res
}

func nuclearPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64, C [3]float64) float64 {
	p := a + b
	P := productCenter(a, A, b, B)
	var e [3][]float64
	for k := 0; k < 3; k++ {
		e[k] = hermiteCoeffs(l1[k], l2[k], A[k]-B[k], a, b)
	}
	r := newHermiteR(len(e[0])+len(e[1])+len(e[2])-3, p, [3]float64{P[0] - C[0], P[1] - C[1], P[2] - C[2]})
	val := 0.0
	for t, et := range e[0] {
		for u, eu := range e[1] {
			for v, ev := range e[2] {
				val += et * eu * ev * r.at(t, u, v)
			}
		}
	}
	return 2 * math.Pi / p * val
}

// OverlapAO is <f|g>.
func OverlapAO(f, g *AO) float64 {
	res := 0.0
	for i, a := range f.Alpha {
		for j, b := range g.Alpha {
			res += f.Coeff[i] * g.Coeff[j] * overlapPrim(a, f.L, f.Coords, b, g.L, g.Coords)
		}
	}
	return res
}

// KineticAO is <f|-½∇²|g>.
func KineticAO(f, g *AO) float64 {
	res := 0.0
	for i, a := range f.Alpha {
		for j, b := range g.Alpha {
			res += f.Coeff[i] * g.Coeff[j] * kineticPrim(a, f.L, f.Coords, b, g.L, g.Coords)
		}
	}
	return res
}

// NuclearAO is <f|-Σ_C Z_C/|r-C||g> over the given atoms.
func NuclearAO(f, g *AO, atoms []Atom) float64 {
	res := 0.0
	for _, atm := range atoms {
		for i, a := range f.Alpha {
			for j, b := range g.Alpha {
				res -= float64(atm.Z) * f.Coeff[i] * g.Coeff[j] *
					nuclearPrim(a, f.L, f.Coords, b, g.L, g.Coords, atm.Coords)
			}
		}
	}
	return res
}

// chargeDist is one primitive product of a function pair, with its Hermite
// expansion coefficients.
type chargeDist struct {
	p     float64
	P     [3]float64
	coeff float64
	e     [3][]float64
}

type pairDist []chargeDist

func newPairDist(f, g *AO) pairDist {
	res := make(pairDist, 0, len(f.Alpha)*len(g.Alpha))
	for i, a := range f.Alpha {
		for j, b := range g.Alpha {
			cd := chargeDist{
				p:     a + b,
				P:     productCenter(a, f.Coords, b, g.Coords),
				coeff: f.Coeff[i] * g.Coeff[j],
			}
			for k := 0; k < 3; k++ {
				cd.e[k] = hermiteCoeffs(f.L[k], g.L[k], f.Coords[k]-g.Coords[k], a, b)
			}
			res = append(res, cd)
		}
	}
	return res
}

// electronRepulsion is (fg|hk) from the two charge distributions.
func electronRepulsion(bra, ket pairDist) float64 {
	res := 0.0
	for i := range bra {
		ab := &bra[i]
		for j := range ket {
			cd := &ket[j]
			p, q := ab.p, cd.p
			alpha := p * q / (p + q)
			lmax := len(ab.e[0]) + len(ab.e[1]) + len(ab.e[2]) +
				len(cd.e[0]) + len(cd.e[1]) + len(cd.e[2]) - 6
			r := newHermiteR(lmax, alpha, [3]float64{ab.P[0] - cd.P[0], ab.P[1] - cd.P[1], ab.P[2] - cd.P[2]})
			val := 0.0
			for t, et := range ab.e[0] {
				for u, eu := range ab.e[1] {
					for v, ev := range ab.e[2] {
						eb := et * eu * ev
						if eb == 0 {
							continue
						}
						for tau, etau := range cd.e[0] {
							for nu, enu := range cd.e[1] {
								for phi, ephi := range cd.e[2] {
									term := eb * etau * enu * ephi * r.at(t+tau, u+nu, v+phi)
									if (tau+nu+phi)%2 == 1 {
										term = -term
									}
									val += term
								}
							}
						}
					}
				}
			}
			res += ab.coeff * cd.coeff * val * 2 * math.Pow(math.Pi, 2.5) / (p * q * math.Sqrt(p+q))
		}
	}
	return res
}
