package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates name under a fresh temp dir with content and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// mutableProvider is a config.Provider whose path can change between calls.
type mutableProvider struct {
	mu   sync.Mutex
	path string
}

func (p *mutableProvider) DataFilePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *mutableProvider) set(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
}
