// Package store persists named simulations: a fund parameter set saved
// under its (fund, scenario) pair.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/pkg/constants"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no simulation matches the lookup.
var ErrNotFound = errors.New("simulation not found")

// Simulation is a stored parameter set.
type Simulation struct {
	ID         string
	Parameters config.FundParameters
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary describes a stored simulation without its parameters.
type Summary struct {
	ID           string    `json:"id"`
	FundName     string    `json:"nom_fonds"`
	ScenarioName string    `json:"nom_scenario"`
	KnownNAVDate string    `json:"date_vl_connue"`
	FundEndDate  string    `json:"date_fin_fonds"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists simulations. Saving a (fund, scenario) pair that already
// exists updates it in place.
type Store interface {
	Save(ctx context.Context, params config.FundParameters) (Simulation, error)
	Get(ctx context.Context, id string) (Simulation, error)
	FindByName(ctx context.Context, fundName, scenarioName string) (Simulation, error)
	// List returns every simulation, or those of fundName when it is not empty.
	List(ctx context.Context, fundName string) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	path := cfg.Path
	if path == "" {
		path = constants.DefaultStoragePath
	}

	switch cfg.Driver {
	case constants.StorageDriverSQLite, "":
		return OpenSQLite(path)
	case constants.StorageDriverFile:
		return OpenFiles(path, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// prepare validates params and fills the default scenario name so that the
// (fund, scenario) key matches what a later load normalizes to.
func prepare(params config.FundParameters) (config.FundParameters, error) {
	if err := params.Validate(); err != nil {
		return config.FundParameters{}, err
	}
	if strings.TrimSpace(params.ScenarioName) == "" {
		params.ScenarioName = constants.DefaultScenarioName
	}
	return params, nil
}

func summarize(sim Simulation) Summary {
	doc := sim.Parameters.ToDocument()
	return Summary{
		ID:           sim.ID,
		FundName:     doc.FundName,
		ScenarioName: doc.ScenarioName,
		KnownNAVDate: doc.KnownNAVDate,
		FundEndDate:  doc.FundEndDate,
		UpdatedAt:    sim.UpdatedAt,
	}
}

// decode rebuilds parameters from their stored document. Stored documents
// were normalized before saving, so notices are not expected here.
func decode(doc config.Document) (config.FundParameters, error) {
	params, _, err := doc.Normalize(zap.NewNop())
	if err != nil {
		return config.FundParameters{}, fmt.Errorf("stored simulation is invalid: %w", err)
	}
	return params, nil
}

func marshalList(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
