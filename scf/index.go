// index.go --  This file is part of goHF project.
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

// Pair packs an unordered index pair into its lower-triangle offset.
func Pair(a, b int) int {
	if a < b {
		a, b = b, a
	}
	return a*(a+1)/2 + b
}

// Index returns the canonical packed offset of (mu nu|lam sig). All eight
// permutations of the quartet share the same offset.
func Index(mu, nu, lam, sig int) int {
	return Pair(Pair(mu, nu), Pair(lam, sig))
}

// PackedLen is the number of unique two-electron integrals for n basis
// functions, n(n+1)(n^2+n+2)/8.
func PackedLen(n int) int {
	if n <= 0 {
		return 0
	}
	return n * (n + 1) * (n*n + n + 2) / 8
}

// unpairTable lists the (i, j) pair behind every Pair offset below n, in
// offset order.
func unpairTable(n int) [][2]int {
	res := make([][2]int, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			res = append(res, [2]int{i, j})
		}
	}
	return res
}
