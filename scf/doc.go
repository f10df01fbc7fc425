// doc.go --  This file is part of goHF project.
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

// Package scf implements the restricted closed-shell Hartree-Fock
// self-consistent field procedure.
//
// The package consumes one- and two-electron integrals over an atomic orbital
// basis and produces molecular orbitals, orbital energies, the density matrix
// and the total energy. Integrals reach the solver either as an Input value
// holding the matrices and a packed ERIStore, or through any type satisfying
// Provider.
//
// Two-electron integrals are kept in a packed store addressed by a compound
// index that folds the eight permutations of (μν|λσ) onto one offset:
//
//	Pair(a, b) = a(a+1)/2 + b   (a >= b)
//	Index(μ, ν, λ, σ) = Pair(Pair(μ, ν), Pair(λ, σ))
//
// Each SCF iteration builds F = H + G(P), transforms it with the Löwdin
// orthogonalizer X = S^-1/2, diagonalizes, back-transforms and rebuilds the
// density from the lowest N_elec/2 orbitals. The run stops when both the energy
// change and the Frobenius norm of the density change fall below their
// thresholds, or fails with a *ConvergenceError after MaxIter iterations.
package scf
