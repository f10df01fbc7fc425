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

// Package integrals provides the one- and two-electron integrals consumed
// by package scf. Integrals may be read from a directory of text files,
// held in memory, supplied function by function for tests, or generated
// for a molecule in a built-in Gaussian basis set.
package integrals
