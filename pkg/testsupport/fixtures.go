package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recordfmt/pkg/record"
)

// JohnDoe returns a fresh copy of the canonical nested record used across the
// adapter and field contract tests.
func JohnDoe() map[string]any {
	return map[string]any{
		"id":      112,
		"name":    "John",
		"surname": "Doe",
		"blank":   "",
		"address": map[string]any{
			"city": "New York",
		},
		"contacts": []any{
			map[string]any{
				"desc":    "personal email",
				"contact": "john.doe@doughnut.com",
			},
			map[string]any{
				"desc":    "telephone",
				"contact": "123456789",
			},
		},
		"one_contact": []any{
			map[string]any{
				"desc":    "personal email",
				"contact": "john.doe@doughnut.com",
			},
		},
		"params": []any{
			map[string]any{
				"name":  "weight",
				"value": "83",
			},
			map[string]any{
				"name":  "size",
				"value": "32",
			},
		},
	}
}

// Records wraps JohnDoe in a single-record collection.
func Records() record.Collection {
	return record.NewCollection(JohnDoe())
}

// LoadRecords reads a YAML (or JSON) fixture holding a list of records.
func LoadRecords(t *testing.T, path string) record.Collection {
	t.Helper()

	coll, err := LoadRecordsFromPath(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	return coll
}

// LoadRecordsFromPath returns a collection without requiring testing.T.
func LoadRecordsFromPath(path string) (record.Collection, error) {
	if path == "" {
		return record.Collection{}, errors.New("testsupport: records path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return record.Collection{}, fmt.Errorf("testsupport: read records: %w", err)
	}
	var records []any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return record.Collection{}, fmt.Errorf("testsupport: unmarshal records: %w", err)
	}
	return record.NewCollection(records...), nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// TempFile creates a file in the test's temp dir. The file is closed on
// cleanup; callers may close it earlier.
func TempFile(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}
