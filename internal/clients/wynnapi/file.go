package wynnapi

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

type fileClient struct {
	path string
}

// NewFile returns a Client reading a snapshot written by WriteSnapshot
func NewFile(path string) (Client, error) {
	if path == "" {
		return nil, errors.InvalidArgument("snapshot path is required")
	}
	return &fileClient{path: path}, nil
}

// Database reads the snapshot file
func (f *fileClient) Database(_ context.Context) (map[string]json.RawMessage, error) {
	body, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("snapshot %s does not exist", f.path)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read snapshot")
	}
	return decodeDatabase(body)
}

// WriteSnapshot stores records at path, replacing any previous snapshot
// atomically through a temporary file.
func WriteSnapshot(path string, records map[string]json.RawMessage) error {
	body, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create snapshot directory")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "failed to move snapshot into place")
	}
	return nil
}
