package results

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// FileConfig contains configuration for the file result log
type FileConfig struct {
	// Dir holds one <run>.jsonl file per run
	Dir string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Dir == "" {
		vb.RequiredField("Dir")
	}
	return vb.Build()
}

type fileStore struct {
	dir string
	mu  sync.Mutex
}

var _ Store = (*fileStore)(nil)

// NewFile creates a result log writing one JSON array per line. Every append
// is synced, so after a crash the file holds a valid prefix plus at most one
// truncated line. List ignores it and the next Append cuts it off.
func NewFile(cfg *FileConfig) (Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create result directory %s", cfg.Dir)
	}
	return &fileStore{dir: cfg.Dir}, nil
}

func (f *fileStore) path(runID string) (string, error) {
	if runID == "" {
		return "", errors.InvalidArgument(errRunIDEmpty)
	}
	if strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return "", errors.InvalidArgumentf("run ID %q is not a valid file name", runID)
	}
	return filepath.Join(f.dir, runID+".jsonl"), nil
}

func (f *fileStore) Append(_ context.Context, runID string, names []string) error {
	if err := validateAppend(runID, names); err != nil {
		return err
	}
	path, err := f.path(runID)
	if err != nil {
		return err
	}

	record, err := json.Marshal(names)
	if err != nil {
		return errors.Wrap(err, "failed to marshal candidate")
	}
	record = append(record, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open result log %s", path)
	}
	defer func() { _ = file.Close() }()

	end, err := repairTail(file)
	if err != nil {
		return errors.Wrapf(err, "failed to repair result log %s", path)
	}
	if _, err := file.WriteAt(record, end); err != nil {
		return errors.Wrapf(err, "failed to append to result log %s", path)
	}
	if err := file.Sync(); err != nil {
		return errors.Wrapf(err, "failed to sync result log %s", path)
	}
	return nil
}

// repairTail makes the log end on a line boundary and returns the offset to
// write at. A final line left without its newline by a crash is kept when it
// decodes and cut off otherwise.
func repairTail(file *os.File) (int64, error) {
	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if size == 0 {
		return 0, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return 0, err
	}
	if last[0] == '\n' {
		return size, nil
	}

	body := make([]byte, size)
	if _, err := file.ReadAt(body, 0); err != nil {
		return 0, err
	}
	start := int64(bytes.LastIndexByte(body, '\n') + 1)

	var names []string
	if json.Unmarshal(body[start:], &names) == nil {
		if _, err := file.WriteAt([]byte("\n"), size); err != nil {
			return 0, err
		}
		return size + 1, nil
	}
	if err := file.Truncate(start); err != nil {
		return 0, err
	}
	return start, nil
}

func (f *fileStore) List(_ context.Context, runID string) ([][]string, error) {
	path, err := f.path(runID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return [][]string{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read result log %s", path)
	}
	return parseLog(body, runID)
}

// parseLog decodes complete lines. Only the final line may be damaged and it
// is dropped; damage anywhere else is data loss.
func parseLog(body []byte, runID string) ([][]string, error) {
	complete := bytes.HasSuffix(body, []byte("\n"))

	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to scan result log")
	}

	out := make([][]string, 0, len(lines))
	for i, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var names []string
		if err := json.Unmarshal(line, &names); err != nil {
			if i == len(lines)-1 && !complete {
				break
			}
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "corrupt candidate record").
				WithMeta("run_id", runID).
				WithMeta("line", i+1)
		}
		out = append(out, names)
	}
	return out, nil
}

func (f *fileStore) Count(ctx context.Context, runID string) (int, error) {
	sets, err := f.List(ctx, runID)
	if err != nil {
		return 0, err
	}
	return len(sets), nil
}

func (f *fileStore) Delete(_ context.Context, runID string) error {
	path, err := f.path(runID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete result log %s", path)
	}
	return nil
}
