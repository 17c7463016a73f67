package layout

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"rootsweep/internal/faults"
)

// Entry pairs a target directory with the filenames that belong there.
type Entry struct {
	Dir   string   `json:"dir" toml:"dir"`
	Files []string `json:"files" toml:"files"`
}

// Layout is an ordered, validated mapping table.
type Layout struct {
	entries []Entry
	index   map[string]int
}

// New copies and validates entries. Directory and file names are normalized to
// Unicode NFC so tables typed on different platforms compare equal.
func New(entries []Entry) (Layout, error) {
	if len(entries) == 0 {
		return Layout{}, faults.Wrap(faults.ErrValidation, "layout", "validate", "layout has no entries", nil)
	}
	copied := make([]Entry, 0, len(entries))
	index := make(map[string]int)
	for i, entry := range entries {
		dir := norm.NFC.String(entry.Dir)
		if err := ValidateDir(dir); err != nil {
			return Layout{}, faults.Wrap(faults.ErrValidation, "layout", "validate", fmt.Sprintf("entry %d", i+1), err)
		}
		if len(entry.Files) == 0 {
			return Layout{}, faults.Wrap(faults.ErrValidation, "layout", "validate", fmt.Sprintf("entry %d (%s) lists no files", i+1, dir), nil)
		}
		files := make([]string, 0, len(entry.Files))
		for _, name := range entry.Files {
			name = norm.NFC.String(name)
			if err := ValidateName(name); err != nil {
				return Layout{}, faults.Wrap(faults.ErrValidation, "layout", "validate", fmt.Sprintf("entry %d (%s)", i+1, dir), err)
			}
			if prev, ok := index[name]; ok {
				return Layout{}, faults.Wrap(
					faults.ErrValidation,
					"layout",
					"validate",
					fmt.Sprintf("file %q is listed under both %s and %s", name, copied[prev].Dir, dir),
					nil,
				)
			}
			index[name] = i
			files = append(files, name)
		}
		copied = append(copied, Entry{Dir: dir, Files: files})
	}
	return Layout{entries: copied, index: index}, nil
}

// Entries returns a copy of the entries in sweep order.
func (l Layout) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, entry := range l.entries {
		out[i] = Entry{Dir: entry.Dir, Files: append([]string(nil), entry.Files...)}
	}
	return out
}

// Len returns the number of entries.
func (l Layout) Len() int { return len(l.entries) }

// FileCount returns the number of filenames across all entries.
func (l Layout) FileCount() int { return len(l.index) }

// Dirs returns the target directories in sweep order.
func (l Layout) Dirs() []string {
	dirs := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		dirs = append(dirs, entry.Dir)
	}
	return dirs
}

// Lookup returns the target directory for name.
func (l Layout) Lookup(name string) (string, bool) {
	i, ok := l.index[norm.NFC.String(name)]
	if !ok {
		return "", false
	}
	return l.entries[i].Dir, true
}

// TargetPath joins a target directory and filename into a slash-separated
// path relative to the root.
func TargetPath(dir, name string) string {
	return path.Join(dir, name)
}

// ValidateName checks that name is a single path segment: not empty, not "."
// or "..", and free of separators.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("empty file name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid file name: %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name must not contain path separators: %q", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("file name contains NUL: %q", name)
	}
	return nil
}

// ValidateDir checks that dir is a relative, slash-separated path that stays
// inside the root and is not the root itself.
func ValidateDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty target directory")
	}
	if strings.Contains(dir, `\`) {
		return fmt.Errorf("target directory must use forward slashes: %q", dir)
	}
	if strings.HasPrefix(dir, "/") {
		return fmt.Errorf("absolute target directories are not allowed: %q", dir)
	}
	if _, err := SafeJoin(".", dir); err != nil {
		return err
	}
	if path.Clean(dir) == "." {
		return fmt.Errorf("target directory resolves to the root: %q", dir)
	}
	return nil
}

// SafeJoin joins root and parts and ensures the result stays inside root.
func SafeJoin(root string, parts ...string) (string, error) {
	joined := path.Join(append([]string{root}, parts...)...)
	cleanRoot := path.Clean(root)
	if cleanRoot == "." {
		if joined == ".." || strings.HasPrefix(joined, "../") {
			return "", fmt.Errorf("path escapes the root: %s", path.Join(parts...))
		}
		return joined, nil
	}
	if joined != cleanRoot && !strings.HasPrefix(joined, strings.TrimSuffix(cleanRoot, "/")+"/") {
		return "", fmt.Errorf("path escapes the root: %s", joined)
	}
	return joined, nil
}
