package build

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// failingCopier fails when asked to copy the category named fail.
type failingCopier struct {
	fail  string
	err   error
	calls []string
}

func (c *failingCopier) CopyDir(ctx context.Context, src, dst string, keep func(rel string) bool) (int, error) {
	category := filepath.Base(src)
	c.calls = append(c.calls, category)
	if category == c.fail {
		// leave something behind to check it gets cleaned up
		os.MkdirAll(dst, 0o755)
		os.WriteFile(filepath.Join(dst, "partial"), nil, 0o644)
		return 0, c.err
	}
	return FSCopier{}.CopyDir(ctx, src, dst, keep)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// writeTree creates files (slash-separated, relative to root) with their
// own name as content.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
