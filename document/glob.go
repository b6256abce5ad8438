// File discovery for CLI input paths.
//
// Arguments may be plain files, directories, or glob patterns with **
// support. Hidden directories (starting with .) are skipped during walks.

package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandPaths resolves path arguments to an ordered, de-duplicated file
// list. Argument order is preserved; matches within one pattern are sorted.
func ExpandPaths(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, arg := range args {
		matches, err := expandOne(arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}

func expandOne(arg string) ([]string, error) {
	// Plain file or directory first; glob metacharacters fall through.
	if info, err := os.Stat(arg); err == nil {
		if !info.IsDir() {
			return []string{arg}, nil
		}
		return walkDir(arg)
	}

	if strings.Contains(arg, "**") {
		return walkGlob(arg)
	}

	matches, err := filepath.Glob(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", arg)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// walkDir lists all non-hidden files under dir.
func walkDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// walkGlob matches a ** pattern against the tree rooted at the pattern's
// static prefix.
func walkGlob(pattern string) ([]string, error) {
	base := staticPrefix(pattern)
	rel := strings.TrimPrefix(strings.TrimPrefix(pattern, base), string(filepath.Separator))

	var files []string
	err := filepath.WalkDir(base, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != base {
				return filepath.SkipDir
			}
			return nil
		}
		relPath, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		if matchGlobPattern(relPath, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	sort.Strings(files)
	return files, nil
}

// staticPrefix returns the pattern's leading directory components that
// contain no glob metacharacters, or "." if there are none.
func staticPrefix(pattern string) string {
	parts := strings.Split(filepath.ToSlash(pattern), "/")
	var static []string
	for _, p := range parts {
		if strings.ContainsAny(p, "*?[") {
			break
		}
		static = append(static, p)
	}
	if len(static) == 0 {
		return "."
	}
	prefix := filepath.Join(static...)
	if strings.HasPrefix(pattern, "/") {
		prefix = string(filepath.Separator) + prefix
	}
	if prefix == "" {
		return "."
	}
	return prefix
}

// matchGlobPattern matches a relative path against a glob pattern with **
// support.
func matchGlobPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	parts := strings.Split(pattern, "**")
	if len(parts) == 1 {
		return matchPattern(pattern, path)
	}

	prefix := strings.TrimSuffix(parts[0], "/")
	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false
	}

	suffix := strings.TrimPrefix(parts[len(parts)-1], "/")
	if suffix == "" {
		return true
	}
	if strings.Contains(suffix, "/") {
		return strings.HasSuffix(path, suffix) || matchPattern("*/"+suffix, "/"+path)
	}
	return matchPattern(suffix, filepath.Base(path))
}

// matchPattern wraps filepath.Match, returning false on error.
func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	return err == nil && matched
}
