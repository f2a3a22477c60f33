package queue

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"loyalty-sync/core/apperr"

	"github.com/goccy/go-json"
)

// FileQueue keeps entries as a JSON array in a local file.
// Writes go to a temporary file that is renamed over the queue, so a crash never leaves a
// half-written array behind.
type FileQueue[T any] struct {
	path string
	mu   sync.Mutex
}

// NewFileQueue returns a queue stored at path. The file is created on first append.
func NewFileQueue[T any](path string) *FileQueue[T] {
	return &FileQueue[T]{path: path}
}

// Path returns the queue file location.
func (q *FileQueue[T]) Path() string {
	return q.path
}

// Append adds items to the end of the queue.
func (q *FileQueue[T]) Append(_ context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	existing, err := q.read()
	if err != nil {
		return apperr.Queue("append failed turnovers", err)
	}
	if err := q.write(append(existing, items...)); err != nil {
		return apperr.Queue("append failed turnovers", err)
	}
	return nil
}

// ReadAll returns every entry. A missing or empty file is an empty queue.
func (q *FileQueue[T]) ReadAll(_ context.Context) ([]T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.read()
	if err != nil {
		return nil, apperr.Queue("read failed turnovers", err)
	}
	return items, nil
}

// Clear empties the queue.
func (q *FileQueue[T]) Clear(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.write([]T{}); err != nil {
		return apperr.Queue("clear failed turnovers", err)
	}
	return nil
}

// Drain empties the queue and returns the entries it held.
func (q *FileQueue[T]) Drain(_ context.Context) ([]T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.read()
	if err != nil {
		return nil, apperr.Queue("drain failed turnovers", err)
	}
	if len(items) == 0 {
		return items, nil
	}
	if err := q.write([]T{}); err != nil {
		return nil, apperr.Queue("drain failed turnovers", err)
	}
	return items, nil
}

func (q *FileQueue[T]) read() ([]T, error) {
	data, err := os.ReadFile(q.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *FileQueue[T]) write(items []T) error {
	dir := filepath.Dir(q.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(q.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, q.path)
}
