package fundwatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/fundwatch/date"
)

var (
	aug2024 = date.New(2024, 8)
	sep2024 = date.New(2024, 9)
	oct2024 = date.New(2024, 10)
	nov2024 = date.New(2024, 11)
)

// h is a short hand to create a holding.
func h(id, name string, weight float64) Holding {
	return Holding{ID: id, Name: name, Quantity: Q(100), Weight: Percent(weight)}
}

// names returns the names of holdings.
func names(holdings []*Holding) []string {
	var res []string
	for _, h := range holdings {
		res = append(res, h.Name)
	}
	return res
}

// mustResolve resolves snapshots with the default settings.
func mustResolve(t *testing.T, snapshots ...*Snapshot) *Resolution {
	t.Helper()
	r, err := NewResolver(DefaultThreshold, nil)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	res, err := r.Resolve(snapshots...)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return res
}

// writeFile creates a file named 'name' in dir with content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
	return path
}
