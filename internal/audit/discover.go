package audit

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultProjectMarker identifies a package folder.
const DefaultProjectMarker = "package.json"

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
}

// DiscoverProjects walks root and returns every folder (other than root
// itself) that contains marker, in lexical order.
func DiscoverProjects(fsys afero.Fs, root, marker string) ([]Project, error) {
	if marker == "" {
		marker = DefaultProjectMarker
	}
	root = filepath.Clean(root)
	var projects []Project
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		if path == root {
			return nil
		}
		ok, err := afero.Exists(fsys, filepath.Join(path, marker))
		if err != nil {
			return err
		}
		if ok {
			projects = append(projects, Project{Name: filepath.Base(path), Folder: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}
