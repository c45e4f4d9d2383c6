package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/nav-landing/internal/config"
	"go.uber.org/zap"
)

// FileStore keeps one <id>.json file per simulation in a directory.
type FileStore struct {
	dir    string
	logger *zap.Logger
	mu     sync.RWMutex
}

type fileRecord struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Parameters config.Document `json:"parametres"`
}

// OpenFiles opens the file store rooted at dir, creating the directory if
// needed. Files that cannot be read are skipped by scans and logged to logger.
func OpenFiles(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Close is a no-op; files are written synchronously.
func (s *FileStore) Close() error {
	return nil
}

// Save writes the parameters, reusing the ID of the simulation already
// stored under the same fund and scenario names.
func (s *FileStore) Save(ctx context.Context, params config.FundParameters) (Simulation, error) {
	params, err := prepare(params)
	if err != nil {
		return Simulation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record := fileRecord{CreatedAt: now, UpdatedAt: now, Parameters: params.ToDocument()}

	records, err := s.readAll(ctx)
	if err != nil {
		return Simulation{}, err
	}
	for _, existing := range records {
		if existing.Parameters.FundName == params.FundName && existing.Parameters.ScenarioName == params.ScenarioName {
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			break
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if err := s.write(record); err != nil {
		return Simulation{}, err
	}
	return Simulation{ID: record.ID, Parameters: params, CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt}, nil
}

// Get returns the simulation with the given ID.
func (s *FileStore) Get(ctx context.Context, id string) (Simulation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Simulation{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.read(s.path(id))
	if err != nil {
		return Simulation{}, err
	}
	return record.simulation()
}

// FindByName returns the simulation stored for a fund and scenario.
func (s *FileStore) FindByName(ctx context.Context, fundName, scenarioName string) (Simulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readAll(ctx)
	if err != nil {
		return Simulation{}, err
	}
	for _, record := range records {
		if record.Parameters.FundName == fundName && record.Parameters.ScenarioName == scenarioName {
			return record.simulation()
		}
	}
	return Simulation{}, ErrNotFound
}

// List returns the stored simulations ordered by fund and scenario.
func (s *FileStore) List(ctx context.Context, fundName string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := []Summary{}
	for _, record := range records {
		if fundName != "" && record.Parameters.FundName != fundName {
			continue
		}
		sim, err := record.simulation()
		if err != nil {
			s.logger.Warn("skipping invalid simulation",
				zap.String("op", "store.FileStore.List"),
				zap.String("id", record.ID),
				zap.Error(err),
			)
			continue
		}
		summaries = append(summaries, summarize(sim))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].FundName != summaries[j].FundName {
			return summaries[i].FundName < summaries[j].FundName
		}
		return summaries[i].ScenarioName < summaries[j].ScenarioName
	})
	return summaries, nil
}

// Delete removes the simulation with the given ID.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) read(path string) (fileRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileRecord{}, ErrNotFound
	}
	if err != nil {
		return fileRecord{}, fmt.Errorf("read simulation: %w", err)
	}

	var record fileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fileRecord{}, fmt.Errorf("decode simulation %s: %w", filepath.Base(path), err)
	}
	if record.ID == "" {
		record.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return record, nil
}

func (s *FileStore) readAll(ctx context.Context) ([]fileRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store directory: %w", err)
	}

	records := make([]fileRecord, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		record, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable simulation file",
				zap.String("op", "store.FileStore.readAll"),
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// write replaces the record's file atomically.
func (s *FileStore) write(record fileRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode simulation: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write simulation: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write simulation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write simulation: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(record.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write simulation: %w", err)
	}
	return nil
}

func (r fileRecord) simulation() (Simulation, error) {
	params, err := decode(r.Parameters)
	if err != nil {
		return Simulation{}, err
	}
	return Simulation{ID: r.ID, Parameters: params, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}, nil
}
