package runner

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

const regressionsHeader = `// Seeds for failure cases arbshrink has generated in the past. They are read
// automatically and re-run before any novel cases are generated.
//
// It is recommended to check this file in to source control so that
// everyone who runs the tests benefits from these saved cases.
`

const dirPerms = 0o755

// Entry is one persisted failing input.
type Entry struct {
	// Test names the property the input failed.
	Test string `json:"test"`

	// Input is the hex-encoded minimal failing buffer.
	Input string `json:"input"`

	// Value is a human-readable rendering of the value Input constructs.
	Value string `json:"value,omitempty"`
}

// Bytes decodes Input.
func (e Entry) Bytes() ([]byte, error) {
	return hex.DecodeString(e.Input)
}

type regressionsFile struct {
	Entries []Entry `json:"entries"`
}

// Store persists minimal failing inputs in a HuJSON file.
//
// Writes replace the file atomically and are serialized across processes by
// an advisory lock on "<path>.lock".
type Store struct {
	path string
}

// NewStore returns a store backed by path. The file is created on first Save.
func NewStore(path string) *Store {
	if path == "" {
		panic("path is empty")
	}

	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Entries returns all persisted entries in file order. A missing file yields
// no entries.
func (s *Store) Entries() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read regressions: %w", err)
	}

	return parseRegressions(s.path, data)
}

// Load returns the decoded inputs persisted for test.
func (s *Store) Load(test string) ([][]byte, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	var inputs [][]byte

	for _, entry := range entries {
		if entry.Test != test {
			continue
		}

		raw, decodeErr := entry.Bytes()
		if decodeErr != nil {
			return nil, fmt.Errorf("%w %s: test %q: %w", errRegressionsInvalid, s.path, test, decodeErr)
		}

		inputs = append(inputs, raw)
	}

	return inputs, nil
}

// Save appends entry unless an entry with the same test and input exists.
func (s *Store) Save(entry Entry) error {
	dir := filepath.Dir(s.path)

	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return fmt.Errorf("create regressions dir: %w", err)
	}

	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return err
	}

	saveErr := s.saveLocked(entry)

	return errors.Join(saveErr, unlock())
}

func (s *Store) saveLocked(entry Entry) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}

	for _, existing := range entries {
		if existing.Test == entry.Test && existing.Input == entry.Input {
			return nil
		}
	}

	entries = append(entries, entry)

	body, err := json.Marshal(regressionsFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("encode regressions: %w", err)
	}

	formatted, err := hujson.Format(append([]byte(regressionsHeader), body...))
	if err != nil {
		return fmt.Errorf("format regressions: %w", err)
	}

	writeErr := atomic.WriteFile(s.path, bytes.NewReader(formatted))
	if writeErr != nil {
		return fmt.Errorf("write regressions: %w", writeErr)
	}

	return nil
}

func parseRegressions(path string, data []byte) ([]Entry, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errRegressionsInvalid, path, err)
	}

	var file regressionsFile

	unmarshalErr := json.Unmarshal(standardized, &file)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("%w %s: %w", errRegressionsInvalid, path, unmarshalErr)
	}

	return file.Entries, nil
}
