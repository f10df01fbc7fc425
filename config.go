// config.go --  This file is part of goHF project.
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
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"example.com/gohf/integrals"
	"example.com/gohf/scf"
)

// RunConfig is the run file read with --config. Command-line flags that are
// set explicitly override its values.
type RunConfig struct {
	NElectrons int     `yaml:"nelec"`
	MaxIter    int     `yaml:"max_iter"`
	TolEnergy  float64 `yaml:"tol_energy"`
	TolDensity float64 `yaml:"tol_density"`
	Damping    float64 `yaml:"damping"`
	Guess      string  `yaml:"guess"`
	Workers    int     `yaml:"workers"`
	IndexBase  int     `yaml:"index_base"`
	Plot       string  `yaml:"plot"`
	Archive    string  `yaml:"archive"`
	Matrices   string  `yaml:"matrices"`
}

func defaultConfig() RunConfig {
	return RunConfig{
		MaxIter:    scf.DefaultMaxIter,
		TolEnergy:  scf.DefaultTolEnergy,
		TolDensity: scf.DefaultTolDensity,
		Damping:    1,
		Guess:      "zero",
		IndexBase:  int(integrals.OneBased),
	}
}

// loadConfig reads a yaml run file over the defaults. Unknown keys are
// rejected.
func loadConfig(path string) (RunConfig, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// overlay copies the fields of flags whose flag was set on the command line.
func (c RunConfig) overlay(flags RunConfig, changed func(name string) bool) RunConfig {
	if changed("nelec") {
		c.NElectrons = flags.NElectrons
	}
	if changed("max-iter") {
		c.MaxIter = flags.MaxIter
	}
	if changed("tol-energy") {
		c.TolEnergy = flags.TolEnergy
	}
	if changed("tol-density") {
		c.TolDensity = flags.TolDensity
	}
	if changed("damping") {
		c.Damping = flags.Damping
	}
	if changed("guess") {
		c.Guess = flags.Guess
	}
	if changed("workers") {
		c.Workers = flags.Workers
	}
	if changed("index-base") {
		c.IndexBase = flags.IndexBase
	}
	if changed("plot") {
		c.Plot = flags.Plot
	}
	if changed("archive") {
		c.Archive = flags.Archive
	}
	if changed("matrices") {
		c.Matrices = flags.Matrices
	}
	return c
}

func parseGuess(s string) (scf.Guess, error) {
	switch strings.ToLower(s) {
	case "", "zero":
		return scf.GuessZero, nil
	case "core":
		return scf.GuessCore, nil
	}
	return 0, fmt.Errorf("unknown guess %q, want zero or core", s)
}

func (c RunConfig) indexBase() (integrals.IndexBase, error) {
	switch c.IndexBase {
	case 0:
		return integrals.ZeroBased, nil
	case 1:
		return integrals.OneBased, nil
	}
	return 0, fmt.Errorf("index base must be 0 or 1, got %d", c.IndexBase)
}

// options converts the run file to solver options.
func (c RunConfig) options(logger *slog.Logger) (scf.Options, error) {
	guess, err := parseGuess(c.Guess)
	if err != nil {
		return scf.Options{}, err
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	return scf.Options{
		MaxIter:    c.MaxIter,
		TolEnergy:  c.TolEnergy,
		TolDensity: c.TolDensity,
		Damping:    c.Damping,
		Guess:      guess,
		Workers:    workers,
		Logger:     logger,
	}, nil
}
