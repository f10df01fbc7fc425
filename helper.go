// helper.go --  This file is part of goHF project.
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
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

func ReadFileLines(fname string) ([]string, error) {
	var result []string

	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, errors.Wrap(scanner.Err(), fname)
}

// TxtFileFromMatrix writes m row by row in fixed columns.
func TxtFileFromMatrix(m mat.Matrix, fname string) error {
	var ftext strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			fmt.Fprintf(&ftext, "%16.10f", m.At(i, j))
		}
		ftext.WriteString("\n")
	}
	return errors.Wrap(os.WriteFile(fname, []byte(ftext.String()), 0644), "write matrix")
}

// saveMatrices writes the final Fock, density and MO coefficient matrices
// of res into dir.
func saveMatrices(dir string, res *scf.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create matrix directory")
	}
	files := []struct {
		name string
		m    mat.Matrix
		set  bool
	}{
		{"fock.txt", res.Fock, res.Fock != nil},
		{"density.txt", res.Density, res.Density != nil},
		{"mo.txt", res.MOCoefficients, res.MOCoefficients != nil},
		{"hcore.txt", res.CoreHamiltonian, res.CoreHamiltonian != nil},
	}
	for _, f := range files {
		// A typed nil pointer in f.m does not compare equal to nil.
		if !f.set {
			continue
		}
		if err := TxtFileFromMatrix(f.m, filepath.Join(dir, f.name)); err != nil {
			return err
		}
	}
	return nil
}

// MyMemDebug logs heap statistics at debug level.
func MyMemDebug(logger *slog.Logger) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	logger.Debug("memory",
		"alloc", memStats.Alloc,
		"total_alloc", memStats.TotalAlloc,
		"heap_alloc", memStats.HeapAlloc,
		"heap_sys", memStats.HeapSys)
}
