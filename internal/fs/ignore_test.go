package fs

import (
	"path/filepath"
	"testing"
)

func TestNewIgnoreMatcher(t *testing.T) {
	t.Run("skips blank lines and comments", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"", "  ", "# comment", "*.log"})
		if len(m.patterns) != 1 {
			t.Fatalf("expected 1 pattern, got %d", len(m.patterns))
		}
		if m.patterns[0].pattern != "*.log" {
			t.Errorf("expected *.log, got %s", m.patterns[0].pattern)
		}
	})

	t.Run("classifies path vs basename patterns", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"*.log", "build/output"})
		if m.patterns[0].matchPath {
			t.Error("*.log should not be a path pattern")
		}
		if !m.patterns[1].matchPath {
			t.Error("build/output should be a path pattern")
		}
	})
}

func TestIgnoreMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{
			name:     "basename glob matches file in root",
			patterns: []string{"*.log"},
			path:     "app.log",
			want:     true,
		},
		{
			name:     "basename glob matches file in subdirectory",
			patterns: []string{"*.log"},
			path:     filepath.Join("sub", "app.log"),
			want:     true,
		},
		{
			name:     "basename glob does not match different extension",
			patterns: []string{"*.log"},
			path:     "app.txt",
			want:     false,
		},
		{
			name:     "exact basename matches in subdirectory",
			patterns: []string{".DS_Store"},
			path:     filepath.Join("sub", ".DS_Store"),
			want:     true,
		},
		{
			name:     "path pattern matches exact relative path",
			patterns: []string{"build/output"},
			path:     filepath.Join("build", "output"),
			want:     true,
		},
		{
			name:     "path pattern does not match wrong path",
			patterns: []string{"build/output"},
			path:     filepath.Join("src", "output"),
			want:     false,
		},
		{
			name:     "path pattern with glob",
			patterns: []string{"build/*.o"},
			path:     filepath.Join("build", "main.o"),
			want:     true,
		},
		{
			name:     "no patterns matches nothing",
			patterns: nil,
			path:     "anything.txt",
			want:     false,
		},
		{
			name:     "multiple patterns second matches",
			patterns: []string{"*.log", "*.tmp"},
			path:     "data.tmp",
			want:     true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewIgnoreMatcher(tt.patterns)
			got := m.Match(tt.path)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
