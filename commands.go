// commands.go --  This file is part of goHF project.
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
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/gohf/archive"
	"example.com/gohf/convplot"
	"example.com/gohf/integrals"
	"example.com/gohf/scf"
)

// rootOptions holds the global flags. flags receives the command line,
// cfg is the effective configuration after --config and flag overrides.
type rootOptions struct {
	Verbose    bool
	ConfigPath string

	flags  RunConfig
	cfg    RunConfig
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{flags: defaultConfig()}

	cmd := &cobra.Command{
		Use:   "gohf",
		Short: "goHF - restricted Hartree-Fock SCF",
		Long: `goHF solves the closed-shell Hartree-Fock equations.

Integrals are read from a directory of integral files (scf) or computed
from a molecule input file in a built-in Gaussian basis set (run).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "log every iteration")
	pf.StringVar(&opts.ConfigPath, "config", "", "yaml run file")
	pf.IntVar(&opts.flags.NElectrons, "nelec", 0, "number of electrons (integral directories only)")
	pf.IntVar(&opts.flags.MaxIter, "max-iter", opts.flags.MaxIter, "iteration cap")
	pf.Float64Var(&opts.flags.TolEnergy, "tol-energy", opts.flags.TolEnergy, "energy convergence threshold")
	pf.Float64Var(&opts.flags.TolDensity, "tol-density", opts.flags.TolDensity, "density convergence threshold")
	pf.Float64Var(&opts.flags.Damping, "damping", opts.flags.Damping, "density mixing factor in (0, 1]")
	pf.StringVar(&opts.flags.Guess, "guess", opts.flags.Guess, "starting density (zero|core)")
	pf.IntVar(&opts.flags.Workers, "workers", 0, "goroutines for Fock and ERI builds (0 = GOMAXPROCS)")
	pf.IntVar(&opts.flags.IndexBase, "index-base", opts.flags.IndexBase, "first orbital index in integral files (0|1)")
	pf.StringVar(&opts.flags.Plot, "plot", "", "write a convergence plot to this file")
	pf.StringVar(&opts.flags.Archive, "archive", "", "SQLite run archive")
	pf.StringVar(&opts.flags.Matrices, "matrices", "", "write final matrices to this directory")

	cmd.AddCommand(newSCFCommand(opts))
	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	return cmd
}

func (o *rootOptions) resolve(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	o.cfg = defaultConfig()
	if o.ConfigPath != "" {
		cfg, err := loadConfig(o.ConfigPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	o.cfg = o.cfg.overlay(o.flags, cmd.Flags().Changed)
	return nil
}

// solve runs the SCF on p, prints the report to w and handles the plot,
// matrix and archive outputs. A run that hits the iteration cap is still
// reported and archived before its error is returned.
func (o *rootOptions) solve(ctx context.Context, label string, p scf.Provider, labels []string, w io.Writer) (*scf.Result, error) {
	sopts, err := o.cfg.options(o.logger)
	if err != nil {
		return nil, err
	}
	res, runErr := scf.Run(ctx, p, sopts)
	var cerr *scf.ConvergenceError
	if runErr != nil && !errors.As(runErr, &cerr) {
		return nil, errors.Wrap(runErr, label)
	}

	WriteReport(w, Report{Title: label, Labels: labels, Electrons: p.NElectrons(), Result: res})

	if o.cfg.Plot != "" {
		if len(res.History) > 1 {
			if err := convplot.Save(res.History, label, o.cfg.Plot); err != nil {
				return res, errors.Wrap(err, "convergence plot")
			}
		} else {
			o.logger.Warn("too few iterations to plot", "iterations", len(res.History))
		}
	}
	if o.cfg.Matrices != "" {
		if err := saveMatrices(o.cfg.Matrices, res); err != nil {
			return res, err
		}
	}
	if o.cfg.Archive != "" {
		st, err := archive.Open(o.cfg.Archive)
		if err != nil {
			return res, err
		}
		rec, err := st.Record(ctx, label, p.NElectrons(), res)
		st.Close()
		if err != nil {
			return res, err
		}
		o.logger.Info("run archived", "id", rec.ID, "archive", o.cfg.Archive)
	}
	MyMemDebug(o.logger)
	return res, runErr
}

func newSCFCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scf <dir>",
		Short: "Run the SCF on a directory of integral files",
		Long: `Run the SCF on the integrals in dir: s.dat, t.dat, v.dat, eri.dat and
enuc.dat, each optionally compressed as .zst or .gz. The electron count is
not stored with the integrals and must be given with --nelec.

Example:
  gohf scf --nelec 10 ./input/h2o/STO-3G`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.NElectrons <= 0 {
				return errors.New("--nelec is required for an integral directory")
			}
			base, err := opts.cfg.indexBase()
			if err != nil {
				return err
			}
			f, err := integrals.LoadDir(args[0], opts.cfg.NElectrons, integrals.WithIndexBase(base))
			if err != nil {
				return err
			}
			_, err = opts.solve(cmd.Context(), args[0], f, nil, cmd.OutOrStdout())
			return err
		},
	}
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input>",
		Short: "Compute integrals for a molecule input and run the SCF",
		Long: `Read a molecule input file, compute its integrals in the requested basis
set and run the SCF. The output is written next to the input with the
extension replaced by .out.

Example:
  gohf run water.inp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInput(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}
}

func runInput(ctx context.Context, o *rootOptions, inpFname string, stdout io.Writer) error {
	outFname := outputName(inpFname)
	fmt.Fprintln(stdout, "Output file: ", outFname)
	file, err := initLog(outFname)
	if err != nil {
		return errors.Wrap(err, "open output file")
	}
	defer func() {
		file.Close()
		setLoggers(io.Discard)
	}()

	InfoLogger.Println("Starting goHF...")
	appInfo()

	OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		ErrorLogger.Println("Cannot read input file: ", err)
		return err
	}
	for _, line := range inpData {
		OutputLogger.Println(line)
	}
	printOutputDelimiter()

	mol, err := integrals.ParseInput(inpData)
	if err != nil {
		ErrorLogger.Println("Parsing input: ", err)
		return errors.Wrap(err, inpFname)
	}
	OutputLogger.Print("Parsing input. ", len(mol.Atoms), " atoms, basis ", mol.BasisName, ", charge ", mol.Charge, ".")
	if o.cfg.Workers <= 0 && mol.NProcs > 0 {
		o.cfg.Workers = mol.NProcs
		OutputLogger.Print("Parsing input. Number of threads set to ", mol.NProcs, ".")
	}

	g, err := integrals.NewGenerator(mol, o.cfg.Workers)
	if err != nil {
		ErrorLogger.Println("Integrals: ", err)
		return errors.Wrap(err, inpFname)
	}
	for i, note := range g.BasisNotes {
		OutputLogger.Println(i+1, "Basis for atom ", mol.Atoms[i].Name, ": ", note)
	}
	OutputLogger.Println("Basis functions: ", g.BasisSize(), ", electrons: ", g.NElectrons())
	printOutputDelimiter()

	res, err := o.solve(ctx, filepath.Base(inpFname), g, g.Labels(), OutputLogger.Writer())
	if res != nil {
		fmt.Fprintln(stdout, "Final total energy = ", res.TotalEnergy, " a.u.")
	}
	if err != nil {
		if errors.Is(err, scf.ErrDidNotConverge) {
			WarningLogger.Println(err)
		} else {
			ErrorLogger.Println(err)
		}
		return err
	}
	InfoLogger.Println("Exiting goHF...")
	fmt.Fprintln(stdout, "goHF done.")
	return nil
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var compress bool
	cmd := &cobra.Command{
		Use:   "export <input> <dir>",
		Short: "Compute integrals for a molecule input and write them as files",
		Long: `Compute the integrals of a molecule input file and write them to dir in
the layout read by "gohf scf", with one-based indices.

Example:
  gohf export --compress water.inp ./h2o`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inpData, err := ReadFileLines(args[0])
			if err != nil {
				return err
			}
			mol, err := integrals.ParseInput(inpData)
			if err != nil {
				return errors.Wrap(err, args[0])
			}
			g, err := integrals.NewGenerator(mol, opts.cfg.Workers)
			if err != nil {
				return errors.Wrap(err, args[0])
			}
			if err := integrals.WriteDir(args[1], g, compress); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d basis functions, %d electrons written to %s\n",
				g.BasisSize(), g.NElectrons(), args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&compress, "compress", false, "write zstd-compressed files")
	return cmd
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List archived runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Archive == "" {
				return errors.New("--archive is required")
			}
			st, err := archive.Open(opts.cfg.Archive)
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 1 {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				writeRunDetails(cmd.OutOrStdout(), run)
				return nil
			}
			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			writeRunList(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list (0 = all)")
	return cmd
}
