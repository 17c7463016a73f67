package fileutil

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
)

// osfsWrapper lets tests inject rename failures.
type osfsWrapper struct {
	billy.Filesystem
	renameErr error
}

func (w *osfsWrapper) Rename(from, to string) error {
	if w.renameErr != nil {
		return w.renameErr
	}
	return w.Filesystem.Rename(from, to)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
