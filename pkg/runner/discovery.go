package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// pythonExtensions are the file extensions accepted without content
// sniffing.
var pythonExtensions = map[string]bool{
	".py":  true,
	".pyi": true,
}

// skippedDirs are directory names never descended into.
var skippedDirs = map[string]bool{
	"__pycache__":  true,
	"venv":         true,
	"node_modules": true,
}

// sniffLimit bounds how much of an extensionless file is read for
// language detection.
const sniffLimit = 1024

// Discover finds Python files under opts.Paths. It returns a sorted,
// deduplicated list of absolute paths. Explicitly named files are
// accepted regardless of exclude patterns; directories are walked with
// hidden and vendored entries skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if isPythonFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(workDir)
}

// walkDirectory recursively collects Python files under root.
func walkDirectory(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			name := entry.Name()
			if path != root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			if matchesAny(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if matchesAny(relPath, opts.ExcludeGlobs) {
			return nil
		}
		if isPythonFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// isPythonFile accepts files by extension, falling back to content
// detection for extensionless scripts (shebang lines).
func isPythonFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		return pythonExtensions[ext]
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil || len(head) == 0 {
		return false
	}
	return enry.GetLanguage(filepath.Base(path), head) == "Python"
}

// matchesAny matches relPath against a set of glob patterns. Patterns
// with "**" match path prefixes and suffixes; plain patterns also match
// the bare filename, so "test_*.py" works without a directory part.
func matchesAny(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matchGlob(relPath, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

func matchGlob(path, pattern string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

// matchDoubleStar handles the "**" recursive forms: "**/name",
// "dir/**", and "prefix/**/suffix".
func matchDoubleStar(path, pattern string) bool {
	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" {
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			return false
		}
	}
	if suffix == "" {
		return true
	}

	// The suffix may match at any depth below the prefix.
	rest := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	if ok, err := filepath.Match(suffix, rest); err == nil && ok {
		return true
	}
	parts := strings.Split(rest, "/")
	for i := range parts {
		if ok, err := filepath.Match(suffix, strings.Join(parts[i:], "/")); err == nil && ok {
			return true
		}
	}
	return false
}
