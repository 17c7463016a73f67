package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"rootsweep/internal/layout"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStateDirectory passes when the state directory is usable or can be
// created under its nearest existing ancestor.
func CheckStateDirectory(path string) Result {
	const name = "State directory"
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	ancestor := nearestExisting(path)
	if ancestor == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
	}
	if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckLayout checks every target directory of table below root. A missing
// directory fails unless createDirs is set, because moves into it would halt
// the run.
func CheckLayout(root string, table layout.Layout, createDirs bool) []Result {
	results := make([]Result, 0, table.Len())
	for _, entry := range table.Entries() {
		results = append(results, CheckTargetDirectory(root, entry, createDirs))
	}
	return results
}

// CheckTargetDirectory checks a single layout entry.
func CheckTargetDirectory(root string, entry layout.Entry, createDirs bool) Result {
	name := "Target " + entry.Dir
	dir := filepath.Join(root, filepath.FromSlash(entry.Dir))
	mapped := fmt.Sprintf("%d mapped", len(entry.Files))

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", entry.Dir)}
	case err == nil:
		if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", entry.Dir, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s, writable)", entry.Dir, mapped)}
	case os.IsNotExist(err) && createDirs:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s, will be created)", entry.Dir, mapped)}
	case os.IsNotExist(err):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist; moves into it will fail)", entry.Dir)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", entry.Dir, err)}
	}
}

func nearestExisting(path string) string {
	current := filepath.Clean(path)
	for {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
