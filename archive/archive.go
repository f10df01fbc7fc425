// archive.go --  This file is part of goHF project.
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

// Package archive keeps finished SCF runs and their iteration history in
// a SQLite database.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"example.com/gohf/scf"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("archive: run not found")

// Store is an open archive database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one archived SCF calculation. History is filled by Get only.
type Run struct {
	ID               string
	Label            string
	BasisSize        int
	Electrons        int
	TotalEnergy      float64
	ElectronicEnergy float64
	NuclearRepulsion float64
	Iterations       int
	Converged        bool
	CreatedAt        time.Time
	History          []scf.Iteration
}

// Open creates or opens the archive at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to archive: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000", schemaSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("prepare archive: %w", err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores res, converged or not, under a new time-ordered id.
func (s *Store) Record(ctx context.Context, label string, electrons int, res *scf.Result) (Run, error) {
	if res == nil {
		return Run{}, errors.New("archive: nil result")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	run := Run{
		ID:               id.String(),
		Label:            label,
		BasisSize:        len(res.OrbitalEnergies),
		Electrons:        electrons,
		TotalEnergy:      res.TotalEnergy,
		ElectronicEnergy: res.ElectronicEnergy,
		NuclearRepulsion: res.NuclearRepulsion,
		Iterations:       res.Iterations,
		Converged:        res.Converged,
		CreatedAt:        s.now().UTC(),
		History:          res.History,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, label, basis_size, electrons, total_energy, electronic_energy,
		 nuclear_repulsion, iterations, converged, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Label, run.BasisSize, run.Electrons, run.TotalEnergy, run.ElectronicEnergy,
		run.NuclearRepulsion, run.Iterations, run.Converged, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	for _, it := range res.History {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO iterations (run_id, idx, energy, delta_e, delta_p, orbital_gradient)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, it.Index, it.Energy, it.DeltaE, it.DeltaP, it.OrbitalGradient)
		if err != nil {
			return Run{}, fmt.Errorf("record iteration %d: %w", it.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

const runColumns = `id, label, basis_size, electrons, total_energy, electronic_energy,
	nuclear_repulsion, iterations, converged, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var created string
	err := row.Scan(&r.ID, &r.Label, &r.BasisSize, &r.Electrons, &r.TotalEnergy, &r.ElectronicEnergy,
		&r.NuclearRepulsion, &r.Iterations, &r.Converged, &created)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad timestamp: %w", r.ID, err)
	}
	return r, nil
}

// List returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var res []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// Get returns one run with its iteration history.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, energy, delta_e, delta_p, orbital_gradient
		FROM iterations WHERE run_id = ? ORDER BY idx
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it scf.Iteration
		if err := rows.Scan(&it.Index, &it.Energy, &it.DeltaE, &it.DeltaP, &it.OrbitalGradient); err != nil {
			return Run{}, fmt.Errorf("get history: %w", err)
		}
		r.History = append(r.History, it)
	}
	return r, rows.Err()
}
