// files.go --  This file is part of goHF project.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// Integral file names inside a directory. Each may also be stored with a
// ".zst" or ".gz" suffix.
const (
	OverlapFile   = "s.dat"
	KineticFile   = "t.dat"
	NuclearFile   = "v.dat"
	ERIFile       = "eri.dat"
	RepulsionFile = "enuc.dat"
)

// IndexBase is the number of the first orbital in integral files.
type IndexBase int

const (
	ZeroBased IndexBase = 0
	// OneBased is the chemists' convention and the default.
	OneBased IndexBase = 1
)

type loadConfig struct {
	base IndexBase
}

// LoadOption adjusts LoadDir.
type LoadOption func(*loadConfig)

// WithIndexBase sets the index of the first orbital in every file.
func WithIndexBase(b IndexBase) LoadOption {
	return func(c *loadConfig) { c.base = b }
}

// Files is a provider backed by a directory of integral files:
//
//	s.dat, t.dat, v.dat  "μ ν value" per line, one triangle is enough
//	eri.dat              "μ ν λ σ value", one member of each symmetry orbit
//	enuc.dat             nuclear repulsion on the first line
//
// The basis size is the largest orbital index found in s.dat.
type Files struct {
	*Memory
	Dir string
}

// LoadDir reads every integral file in dir. nelec is the electron count,
// which the files do not carry.
func LoadDir(dir string, nelec int, opts ...LoadOption) (*Files, error) {
	cfg := loadConfig{base: OneBased}
	for _, o := range opts {
		o(&cfg)
	}

	entries, err := readTable(filepath.Join(dir, OverlapFile), 2, cfg.base)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, e := range entries {
		n = max(n, e.idx[0]+1, e.idx[1]+1)
	}
	if n == 0 {
		return nil, errors.Wrapf(scf.ErrDimensionMismatch, "%s: no overlap integrals", dir)
	}
	s, err := symFromTable(entries, n, OverlapFile)
	if err != nil {
		return nil, err
	}
	t, err := readOneElectron(filepath.Join(dir, KineticFile), n, cfg.base)
	if err != nil {
		return nil, err
	}
	v, err := readOneElectron(filepath.Join(dir, NuclearFile), n, cfg.base)
	if err != nil {
		return nil, err
	}
	eri, err := readERI(filepath.Join(dir, ERIFile), n, cfg.base)
	if err != nil {
		return nil, err
	}
	enuc, err := readRepulsion(filepath.Join(dir, RepulsionFile))
	if err != nil {
		return nil, err
	}
	m, err := NewMemory(s, t, v, eri, enuc, nelec)
	if err != nil {
		return nil, err
	}
	return &Files{Memory: m, Dir: dir}, nil
}

type tableEntry struct {
	idx  [4]int
	val  float64
	line int
}

// openIntegralFile opens name or, failing that, name.zst or name.gz.
func openIntegralFile(name string) (io.ReadCloser, string, error) {
	for _, candidate := range []string{name, name + ".zst", name + ".gz"} {
		f, err := os.Open(candidate)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, candidate, errors.Wrap(err, "open integral file")
		}
		switch filepath.Ext(candidate) {
		case ".zst":
			dec, err := zstd.NewReader(f)
			if err != nil {
				f.Close()
				return nil, candidate, errors.Wrap(err, candidate)
			}
			rc := dec.IOReadCloser()
			return &stackedCloser{Reader: rc, closers: []io.Closer{rc, f}}, candidate, nil
		case ".gz":
			gz, err := gzip.NewReader(f)
			if err != nil {
				f.Close()
				return nil, candidate, errors.Wrap(err, candidate)
			}
			return &stackedCloser{Reader: gz, closers: []io.Closer{gz, f}}, candidate, nil
		}
		return f, candidate, nil
	}
	return nil, name, errors.Wrapf(os.ErrNotExist, "integral file %s", name)
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// readTable parses lines of nidx orbital indices followed by a value.
func readTable(name string, nidx int, base IndexBase) ([]tableEntry, error) {
	r, path, err := openIntegralFile(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var res []tableEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		words := strings.Fields(scanner.Text())
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		if len(words) != nidx+1 {
			return nil, errors.Errorf("%s:%d: want %d indices and a value, got %q", path, line, nidx, scanner.Text())
		}
		var e tableEntry
		e.line = line
		for k := 0; k < nidx; k++ {
			i, err := strconv.Atoi(words[k])
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", path, line)
			}
			e.idx[k] = i - int(base)
			if e.idx[k] < 0 {
				return nil, errors.Wrapf(scf.ErrDimensionMismatch, "%s:%d: index %d below %d", path, line, i, base)
			}
		}
		e.val, err = strconv.ParseFloat(words[nidx], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		res = append(res, e)
	}
	return res, errors.Wrap(scanner.Err(), path)
}

func symFromTable(entries []tableEntry, n int, name string) (*mat.SymDense, error) {
	m := mat.NewSymDense(n, nil)
	for _, e := range entries {
		if e.idx[0] >= n || e.idx[1] >= n {
			return nil, errors.Wrapf(scf.ErrDimensionMismatch, "%s:%d: index outside basis of %d", name, e.line, n)
		}
		m.SetSym(e.idx[0], e.idx[1], e.val)
	}
	return m, nil
}

func readOneElectron(name string, n int, base IndexBase) (*mat.SymDense, error) {
	entries, err := readTable(name, 2, base)
	if err != nil {
		return nil, err
	}
	return symFromTable(entries, n, filepath.Base(name))
}

func readERI(name string, n int, base IndexBase) (*scf.ERIStore, error) {
	entries, err := readTable(name, 4, base)
	if err != nil {
		return nil, err
	}
	eri := scf.NewERIStore(n)
	for _, e := range entries {
		if err := eri.Set(e.idx[0], e.idx[1], e.idx[2], e.idx[3], e.val); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filepath.Base(name), e.line)
		}
	}
	return eri, nil
}

func readRepulsion(name string) (float64, error) {
	r, path, err := openIntegralFile(name)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, errors.Wrap(err, path)
		}
		return 0, errors.Errorf("%s: empty file", path)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	return v, errors.Wrap(err, path)
}

// WriteDir stores the integrals of p in dir using the LoadDir layout with
// one-based indices. With compress set every file is written as .zst.
func WriteDir(dir string, p scf.Provider, compress bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create integral directory")
	}
	n := p.BasisSize()
	one := []struct {
		name string
		m    *mat.SymDense
	}{
		{OverlapFile, p.Overlap()},
		{KineticFile, p.Kinetic()},
		{NuclearFile, p.NuclearAttraction()},
	}
	for _, o := range one {
		err := writeFile(filepath.Join(dir, o.name), compress, func(w io.Writer) error {
			for i := 0; i < n; i++ {
				for j := 0; j <= i; j++ {
					if _, err := fmt.Fprintf(w, "%3d %3d %22.15e\n", i+1, j+1, o.m.At(i, j)); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	err := writeFile(filepath.Join(dir, ERIFile), compress, func(w io.Writer) error {
		var eri *scf.ERIStore
		if st, ok := p.(scf.ERIStorer); ok {
			eri = st.ERIStore()
		} else {
			eri = scf.NewERIStore(n)
			eri.Fill(p.ERI)
		}
		var werr error
		eri.Quartets(func(i, j, k, l int, v float64) {
			if werr != nil || v == 0 {
				return
			}
			_, werr = fmt.Fprintf(w, "%3d %3d %3d %3d %22.15e\n", i+1, j+1, k+1, l+1, v)
		})
		return werr
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, RepulsionFile), compress, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%.15f\n", p.NuclearRepulsion())
		return err
	})
}

func writeFile(name string, compress bool, body func(io.Writer) error) error {
	if compress {
		name += ".zst"
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create integral file")
	}
	var w io.WriteCloser = nopWriteCloser{f}
	if compress {
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return errors.Wrap(err, name)
		}
	}
	bw := bufio.NewWriter(w)
	if err := body(bw); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	return errors.Wrap(f.Close(), name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
