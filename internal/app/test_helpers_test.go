package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.FileSystem        = (*mockFileSystem)(nil)
	_ secondary.Confirmer         = (*mockConfirmer)(nil)
	_ secondary.HistoryRepository = (*mockHistoryRepository)(nil)
)

// mockFileSystem implements secondary.FileSystem over an in-memory afero
// file system and records every mutating call.
type mockFileSystem struct {
	fs          afero.Fs
	mkdirAllErr error
	writeErrs   map[string]error
	mkdirs      []string
	writes      []string
	removes     []string
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{fs: afero.NewMemMapFs()}
}

func (m *mockFileSystem) DirExists(ctx context.Context, path string) (bool, error) {
	return afero.DirExists(m.fs, path)
}

func (m *mockFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := m.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (m *mockFileSystem) MkdirAll(ctx context.Context, path string) error {
	if m.mkdirAllErr != nil {
		return m.mkdirAllErr
	}
	return m.fs.MkdirAll(path, 0o755)
}

func (m *mockFileSystem) Mkdir(ctx context.Context, path string) error {
	m.mkdirs = append(m.mkdirs, path)
	return m.fs.Mkdir(path, 0o755)
}

func (m *mockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return afero.ReadFile(m.fs, path)
}

func (m *mockFileSystem) Remove(ctx context.Context, path string) error {
	m.removes = append(m.removes, path)
	return m.fs.Remove(path)
}

func (m *mockFileSystem) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := m.writeErrs[path]; err != nil {
		return err
	}
	m.writes = append(m.writes, path)
	return afero.WriteFile(m.fs, path, content, 0o644)
}

func (m *mockFileSystem) Walk(ctx context.Context, root string, fn func(path string) error) error {
	return afero.Walk(m.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		return fn(filepath.ToSlash(path))
	})
}

// put seeds a file without recording it as a write.
func (m *mockFileSystem) put(path, content string) {
	if err := afero.WriteFile(m.fs, path, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

// read returns a file's content or "" when it is missing.
func (m *mockFileSystem) read(path string) string {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return ""
	}
	return string(data)
}

// mockConfirmer implements secondary.Confirmer for testing.
type mockConfirmer struct {
	answer bool
	err    error
	asked  []string
}

func (m *mockConfirmer) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	m.asked = append(m.asked, path)
	return m.answer, m.err
}

// mockHistoryRepository implements secondary.HistoryRepository for testing.
type mockHistoryRepository struct {
	mu        sync.Mutex
	runs      map[string]*secondary.RunRecord
	artifacts map[string][]*secondary.ArtifactRecord
	createErr error
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{
		runs:      make(map[string]*secondary.RunRecord),
		artifacts: make(map[string][]*secondary.ArtifactRecord),
	}
}

func (m *mockHistoryRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *mockHistoryRepository) UpdateRunStatus(ctx context.Context, id, status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return models.ErrRunNotFound
	}
	run.Status = status
	run.Error = errMsg
	return nil
}

func (m *mockHistoryRepository) AddArtifact(ctx context.Context, artifact *secondary.ArtifactRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[artifact.RunID] = append(m.artifacts[artifact.RunID], artifact)
	return nil
}

func (m *mockHistoryRepository) GetRun(ctx context.Context, id string) (*secondary.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, models.ErrRunNotFound
}

func (m *mockHistoryRepository) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.RunRecord
	for _, r := range m.runs {
		if filters.Entity != "" && r.Entity != filters.Entity {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	// Apply limit
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockHistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.artifacts[runID], nil
}

func (m *mockHistoryRepository) PruneRuns(ctx context.Context, olderThanDays int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.runs)
	if olderThanDays == 0 {
		m.runs = make(map[string]*secondary.RunRecord)
		return n, nil
	}
	return 0, nil
}
