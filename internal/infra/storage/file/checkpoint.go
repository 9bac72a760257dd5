// Package file persists the progress pointer as a single decimal value in a
// plain-text file, replaced atomically on every advance.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fmarchini/whalewatch/internal/chainsync"
)

type store struct {
	path string
}

var _ chainsync.CheckpointStorage = (*store)(nil)

// NewStore returns a checkpoint store backed by the file at path. The file is
// created on the first save.
func NewStore(path string) *store {
	return &store{
		path: path,
	}
}

// SaveCheckpoint writes the height to a temporary file in the same directory
// and renames it over the target, so a crash mid-write can never leave a
// truncated pointer behind. The poll driver is the only writer.
func (s *store) SaveCheckpoint(ctx context.Context, height uint64) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}

	_, err = tmp.WriteString(strconv.FormatUint(height, 10) + "\n")
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

// LoadLatestCheckpoint reads the persisted height. A missing file means the
// service has never run and maps to chainsync.ErrNoCheckpointFound.
func (s *store) LoadLatestCheckpoint(ctx context.Context) (uint64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, chainsync.ErrNoCheckpointFound
		}
		return 0, err
	}

	height, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt checkpoint file %s: %w", s.path, err)
	}

	return height, nil
}
