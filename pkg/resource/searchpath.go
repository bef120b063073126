package resource

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SearchPath finds named resources in some backing storage and reports where
// they live as a concrete URL. Names are slash-separated and relative.
type SearchPath interface {
	// FindResource returns the URL of name, or an error wrapping ErrNotFound.
	FindResource(name string) (*url.URL, error)
}

// SearchPaths consults each entry in order; the first hit wins.
type SearchPaths []SearchPath

func (s SearchPaths) FindResource(name string) (*url.URL, error) {
	for _, sp := range s {
		u, err := sp.FindResource(name)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// CleanName normalizes a search-path name: a leading slash is dropped, "." and
// ".." elements are collapsed, and names escaping the root are rejected.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "", fmt.Errorf("empty resource name")
	}
	cleaned := path.Clean(name)
	if !fs.ValidPath(cleaned) {
		return "", fmt.Errorf("resource name %q escapes the search path root", name)
	}
	return cleaned, nil
}

// DirSearchPath resolves names against a directory on the local filesystem.
type DirSearchPath struct {
	Root string
}

func (d DirSearchPath) FindResource(name string) (*url.URL, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(d.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve search path root: %w", err)
	}

	full := filepath.Join(root, filepath.FromSlash(name))
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", full, err)
	}
	return FileURL(full), nil
}

// FileURL returns the file: URL of an absolute filesystem path.
func FileURL(absPath string) *url.URL {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}

// ArchiveSearchPath resolves names against the entries of a zip archive.
// Results are jar: URLs of the form jar:file:///archive.zip!/name.
type ArchiveSearchPath struct {
	Path string
}

func (a ArchiveSearchPath) FindResource(name string) (*url.URL, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive path: %w", err)
	}

	zr, err := zip.OpenReader(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", abs, err)
	}
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		entry := strings.TrimSuffix(f.Name, "/")
		if entry == name {
			found = true
			break
		}
		// Directories are not always stored as explicit entries.
		if strings.HasPrefix(f.Name, name+"/") {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, abs)
	}

	entry := (&url.URL{Path: name}).EscapedPath()
	return &url.URL{Scheme: "jar", Opaque: FileURL(abs).String() + "!/" + entry}, nil
}

// FSSearchPath resolves names against an fs.FS such as an embed.FS.
// Results are mem://<Name>/<path> URLs.
type FSSearchPath struct {
	Name string
	FS   fs.FS
}

func (f FSSearchPath) FindResource(name string) (*url.URL, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	if f.FS == nil {
		return nil, fmt.Errorf("%w: %s (no filesystem)", ErrNotFound, name)
	}

	if _, err := fs.Stat(f.FS, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, f.Name)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return &url.URL{Scheme: MemScheme, Host: f.Name, Path: "/" + name}, nil
}
