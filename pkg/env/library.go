// pkg/env/library.go
package env

import (
	"os"
	"path/filepath"
)

// GetLibraryPaths returns every existing library directory below the prefixes
func (e *Environment) GetLibraryPaths() []string {
	return e.existing(e.Layout.Libraries)
}

// GetIncludePaths returns every existing include directory below the prefixes
func (e *Environment) GetIncludePaths() []string {
	return e.existing(e.Layout.Includes)
}

func (e *Environment) existing(rel []string) []string {
	var dirs []string
	for _, prefix := range e.Prefixes {
		for _, r := range rel {
			dir := filepath.Join(prefix, r)
			if dirExists(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// FindLibrary searches for a specific library by name.
// Returns the first match found in library search paths.
func (e *Environment) FindLibrary(name string) *Library {
	for _, dir := range e.GetLibraryPaths() {
		for _, ext := range LibraryExtensions(e.OS) {
			for _, filename := range candidates(name, ext) {
				fullPath := filepath.Join(dir, filename)
				if fileExists(fullPath) {
					return newLibrary(name, fullPath, ext)
				}

				// Versioned: libopenblas.so.0
				matches, _ := filepath.Glob(fullPath + ".*")
				if len(matches) > 0 {
					return newLibrary(name, matches[0], ext)
				}
			}
		}
	}
	return nil
}

// HasLibrary checks if a library exists below the prefixes
func (e *Environment) HasLibrary(name string) bool {
	return e.FindLibrary(name) != nil
}

// LibraryDirs returns the distinct directories holding the named libraries,
// in the order the libraries were given. Libraries that are not found are
// left to the linker's default search path.
func (e *Environment) LibraryDirs(names []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, name := range names {
		lib := e.FindLibrary(name)
		if lib == nil || seen[lib.Dir] {
			continue
		}
		seen[lib.Dir] = true
		dirs = append(dirs, lib.Dir)
	}
	return dirs
}

// candidates are the file names a library may be stored under
func candidates(name, ext string) []string {
	if ext == ".lib" || ext == ".dll" {
		return []string{name + ext, "lib" + name + ext}
	}
	return []string{"lib" + name + ext}
}

func newLibrary(name, path, ext string) *Library {
	return &Library{
		Name:     name,
		Path:     path,
		Dir:      filepath.Dir(path),
		Type:     ext,
		IsStatic: ext == ".a" || ext == ".lib",
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
