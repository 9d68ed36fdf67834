// internal/util/util.go
package util

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HasExt reports whether name ends in one of exts, ignoring case.
// exts are expected in lower case with the leading dot.
func HasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest,
// so "smith LAW-group" becomes "Smith Law-Group".
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// ExecutableDir returns the directory holding the running binary, resolving
// symlinks, or "" when it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
