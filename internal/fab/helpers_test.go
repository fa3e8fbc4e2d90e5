package fab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type line struct {
	level string
	msg   string
}

// recorder captures status lines in order.
type recorder struct {
	lines []line
}

func (r *recorder) Info(msg string)    { r.lines = append(r.lines, line{"info", msg}) }
func (r *recorder) Success(msg string) { r.lines = append(r.lines, line{"success", msg}) }
func (r *recorder) Warning(msg string) { r.lines = append(r.lines, line{"warning", msg}) }
func (r *recorder) Error(msg string)   { r.lines = append(r.lines, line{"error", msg}) }

func (r *recorder) messages() []string {
	out := make([]string, len(r.lines))
	for i, l := range r.lines {
		out[i] = l.msg
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
