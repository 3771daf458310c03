// Package walker enumerates the source files a scan should read.
package walker

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"rscanner/internal/finding"
)

var (
	DefaultExtensions  = []string{".rs"}
	DefaultExcludeDirs = []string{"target"}
)

// Walker lists files by extension. Directories whose name starts with a dot
// are always skipped, as are the names in ExcludeDirs. ReadDir lists a
// directory; nil means os.ReadDir.
type Walker struct {
	Extensions  []string
	ExcludeDirs []string
	ReadDir     func(name string) ([]os.DirEntry, error)
}

func New() *Walker {
	return &Walker{
		Extensions:  append([]string(nil), DefaultExtensions...),
		ExcludeDirs: append([]string(nil), DefaultExcludeDirs...),
	}
}

// Entry is one step of a walk: a matching file, or a directory that could
// not be read, in which case Err holds its *finding.IOError.
type Entry struct {
	Path string
	Err  error
}

// Walk runs the default walker.
func Walk(root string) ([]string, error) {
	return New().Walk(root)
}

// Walk returns the matching files under root in depth-first pre-order,
// siblings sorted by name. A root that is neither a directory nor a matching
// file gives an empty result. An unreadable directory stops the walk with an
// *finding.IOError.
func (w *Walker) Walk(root string) ([]string, error) {
	var files []string
	err := w.walk(root, func(e Entry) error {
		if e.Err != nil {
			return e.Err
		}
		files = append(files, e.Path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Entries walks like Walk but does not stop at unreadable directories: each
// one is reported at its traversal position and its subtree is skipped.
func (w *Walker) Entries(root string) []Entry {
	var entries []Entry
	_ = w.walk(root, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries
}

// walk calls fn for every entry in order and stops at the first error fn
// returns.
func (w *Walker) walk(root string, fn func(Entry) error) error {
	info, err := os.Stat(root)
	switch {
	case err == nil && info.IsDir():
	case err == nil && info.Mode().IsRegular() && w.matchFile(root):
		return fn(Entry{Path: root})
	default:
		log.Warnf("path is not a source file or directory, skipped: %s", root)
		return nil
	}

	var (
		count   int
		visited = make(map[string]bool)
		stack   = newDFS()
	)
	stack.Push(node{path: root, isDir: true})
	for stack.HasNext() {
		current, _ := stack.Pop()
		if !current.isDir {
			count++
			if err := fn(Entry{Path: current.path}); err != nil {
				return err
			}
			continue
		}

		resolved, err := resolve(current.path)
		if err != nil {
			if err := fn(Entry{Path: current.path, Err: finding.NewIOError(current.path, err)}); err != nil {
				return err
			}
			continue
		}
		if visited[resolved] {
			log.Debugf("directory already visited, skipped: %s", current.path)
			continue
		}
		visited[resolved] = true

		children, err := w.children(current.path)
		if err != nil {
			if err := fn(Entry{Path: current.path, Err: err}); err != nil {
				return err
			}
			continue
		}
		stack.Push(children...)
	}
	log.Debugf("walk %s: %d files", root, count)
	return nil
}

func (w *Walker) children(dir string) ([]node, error) {
	readDir := w.ReadDir
	if readDir == nil {
		readDir = os.ReadDir
	}
	entries, err := readDir(dir)
	if err != nil {
		return nil, finding.NewIOError(dir, err)
	}
	result := make([]node, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// follow links like a plain stat would; a dangling link counts as a file
			if target, err := os.Stat(path); err == nil {
				isDir = target.IsDir()
			}
		}
		switch {
		case isDir && w.excludeDir(entry.Name()):
			log.Debugf("excluded directory: %s", path)
		case isDir:
			result = append(result, node{path: path, isDir: true})
		case w.matchFile(path):
			result = append(result, node{path: path})
		}
	}
	return result, nil
}

func (w *Walker) excludeDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, excluded := range w.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

func (w *Walker) matchFile(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, want := range w.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func resolve(dir string) (string, error) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(real)
}
