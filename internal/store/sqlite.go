package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/nav-landing/internal/config"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps simulations in a SQLite database. Writes go through a
// single connection; reads use their own pool.
type SQLiteStore struct {
	writer *sql.DB
	reader *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath and applies
// pending migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &SQLiteStore{writer: writer, reader: reader}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close releases both connection pools.
func (s *SQLiteStore) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

const simulationColumns = `id, fund_name, scenario_name, known_nav_date, fund_end_date, known_nav,
	share_count, impacts_json, impacts_multidates_json, actifs_json, created_at, updated_at`

// Save inserts the parameters, or updates the simulation already stored
// under the same fund and scenario names.
func (s *SQLiteStore) Save(ctx context.Context, params config.FundParameters) (Simulation, error) {
	params, err := prepare(params)
	if err != nil {
		return Simulation{}, err
	}
	doc := params.ToDocument()
	impacts, err := marshalList(doc.Impacts)
	if err != nil {
		return Simulation{}, fmt.Errorf("encode impacts: %w", err)
	}
	dated, err := marshalList(doc.DatedImpacts)
	if err != nil {
		return Simulation{}, fmt.Errorf("encode dated impacts: %w", err)
	}
	assets, err := marshalList(doc.Assets)
	if err != nil {
		return Simulation{}, fmt.Errorf("encode assets: %w", err)
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return Simulation{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	sim := Simulation{Parameters: params, CreatedAt: now, UpdatedAt: now}

	var createdAt string
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM simulations WHERE fund_name = ? AND scenario_name = ?`,
		doc.FundName, doc.ScenarioName,
	).Scan(&sim.ID, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		sim.ID = uuid.NewString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO simulations (`+simulationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sim.ID, doc.FundName, doc.ScenarioName, doc.KnownNAVDate, doc.FundEndDate,
			string(doc.KnownNAV), string(doc.ShareCount), impacts, dated, assets,
			now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return Simulation{}, fmt.Errorf("insert simulation: %w", err)
		}
	case err != nil:
		return Simulation{}, fmt.Errorf("find simulation: %w", err)
	default:
		sim.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		_, err = tx.ExecContext(ctx,
			`UPDATE simulations SET known_nav_date = ?, fund_end_date = ?, known_nav = ?, share_count = ?,
				impacts_json = ?, impacts_multidates_json = ?, actifs_json = ?, updated_at = ?
			 WHERE id = ?`,
			doc.KnownNAVDate, doc.FundEndDate, string(doc.KnownNAV), string(doc.ShareCount),
			impacts, dated, assets, now.Format(time.RFC3339Nano), sim.ID,
		)
		if err != nil {
			return Simulation{}, fmt.Errorf("update simulation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Simulation{}, fmt.Errorf("commit: %w", err)
	}
	return sim, nil
}

// Get returns the simulation with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Simulation, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+simulationColumns+` FROM simulations WHERE id = ?`, id)
	return scanSimulation(row)
}

// FindByName returns the simulation stored for a fund and scenario.
func (s *SQLiteStore) FindByName(ctx context.Context, fundName, scenarioName string) (Simulation, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+simulationColumns+` FROM simulations WHERE fund_name = ? AND scenario_name = ?`,
		fundName, scenarioName)
	return scanSimulation(row)
}

// List returns the stored simulations ordered by fund and scenario.
func (s *SQLiteStore) List(ctx context.Context, fundName string) ([]Summary, error) {
	query := `SELECT id, fund_name, scenario_name, known_nav_date, fund_end_date, updated_at FROM simulations`
	args := []any{}
	if fundName != "" {
		query += ` WHERE fund_name = ?`
		args = append(args, fundName)
	}
	query += ` ORDER BY fund_name, scenario_name`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var summary Summary
		var updatedAt string
		if err := rows.Scan(&summary.ID, &summary.FundName, &summary.ScenarioName,
			&summary.KnownNAVDate, &summary.FundEndDate, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan simulation row: %w", err)
		}
		summary.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Delete removes the simulation with the given ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.writer.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSimulation(row *sql.Row) (Simulation, error) {
	var (
		sim                    Simulation
		doc                    config.Document
		knownNAV, shareCount   string
		impacts, dated, assets string
		createdAt, updatedAt   string
	)
	err := row.Scan(&sim.ID, &doc.FundName, &doc.ScenarioName, &doc.KnownNAVDate, &doc.FundEndDate,
		&knownNAV, &shareCount, &impacts, &dated, &assets, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Simulation{}, ErrNotFound
	}
	if err != nil {
		return Simulation{}, fmt.Errorf("scan simulation: %w", err)
	}

	doc.KnownNAV = json.RawMessage(knownNAV)
	doc.ShareCount = json.RawMessage(shareCount)
	if err := json.Unmarshal([]byte(impacts), &doc.Impacts); err != nil {
		return Simulation{}, fmt.Errorf("decode impacts: %w", err)
	}
	if err := json.Unmarshal([]byte(dated), &doc.DatedImpacts); err != nil {
		return Simulation{}, fmt.Errorf("decode dated impacts: %w", err)
	}
	if err := json.Unmarshal([]byte(assets), &doc.Assets); err != nil {
		return Simulation{}, fmt.Errorf("decode assets: %w", err)
	}

	sim.Parameters, err = decode(doc)
	if err != nil {
		return Simulation{}, err
	}
	sim.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	sim.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return sim, nil
}
