package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// Store handles state file persistence with file locking. T is
// constrained to Document today but kept generic so a future on-disk
// layout change stays a type-parameter swap rather than a rewrite.
type Store[T State] struct {
	statePath string
	lockPath  string
	fileLock  *flock.Flock
	locked    bool
}

// NewStore creates a Store rooted at dir (typically the per-user state
// directory, e.g. ~/.local/share/criticalup).
func NewStore[T State](dir string) (*Store[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	statePath := filepath.Join(dir, "state.json")
	lockPath := filepath.Join(dir, "state.lock")

	return &Store[T]{
		statePath: statePath,
		lockPath:  lockPath,
		fileLock:  flock.New(lockPath),
	}, nil
}

// Lock acquires an exclusive lock on the state file, recording this
// process's PID so a conflicting Lock call can report who holds it.
func (s *Store[T]) Lock() error {
	if s.locked {
		return nil
	}

	locked, err := s.fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		pid, _ := s.readLockPID()
		return criticalerrors.NewBusyError(s.lockPath, pid)
	}

	if err := s.writeLockPID(); err != nil {
		_ = s.fileLock.Unlock()
		return fmt.Errorf("failed to write PID to lock file: %w", err)
	}

	s.locked = true
	return nil
}

// Unlock releases the lock.
func (s *Store[T]) Unlock() error {
	if !s.locked {
		return nil
	}
	if err := s.fileLock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	s.locked = false
	return nil
}

// Load reads the state from disk. Must be called after Lock().
func (s *Store[T]) Load() (*T, error) {
	if !s.locked {
		return nil, fmt.Errorf("state: must acquire lock before loading state")
	}
	return s.readState()
}

// Save writes the state to disk atomically. Must be called after Lock().
func (s *Store[T]) Save(st *T) error {
	if !s.locked {
		return fmt.Errorf("state: must acquire lock before saving state")
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.statePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.statePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}

// LoadReadOnly reads the state from disk without requiring a lock. Use for
// read-only operations such as `which` and `verify`.
func (s *Store[T]) LoadReadOnly() (*T, error) {
	return s.readState()
}

func (s *Store[T]) readState() (*T, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return new(T), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st T
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if doc, ok := any(&st).(*Document); ok {
		result := ValidateDocument(doc)
		for _, w := range result.Warnings {
			slog.Warn("state validation warning", "field", w.Field, "message", w.Message)
		}
		if !result.IsValid() {
			issues := make([]string, len(result.Errors))
			for i, e := range result.Errors {
				issues[i] = e.String()
			}
			return nil, criticalerrors.NewCorruptStateError(s.statePath, issues)
		}
	}

	return &st, nil
}

// StatePath returns the path to the state file.
func (s *Store[T]) StatePath() string {
	return s.statePath
}

// LockPath returns the path to the lock file.
func (s *Store[T]) LockPath() string {
	return s.lockPath
}

func (s *Store[T]) readLockPID() (int, error) {
	data, err := os.ReadFile(s.lockPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, err
	}
	return pid, nil
}

func (s *Store[T]) writeLockPID() error {
	pid := os.Getpid()
	return os.WriteFile(s.lockPath, []byte(strconv.Itoa(pid)), 0o644)
}
