package flags

import (
	"path/filepath"
)

// MainSource and KQuantsSource are the translation units of the direct build
const (
	MainSource    = "ggml.c"
	KQuantsSource = "k_quants.c"
)

// IncludeDir is added to the include path, relative to the source directory
const IncludeDir = "include"

// Sources lists the files compiled directly from dir
func Sources(dir string, noKQuants bool) []string {
	srcs := []string{filepath.Join(dir, MainSource)}
	if !noKQuants {
		srcs = append(srcs, filepath.Join(dir, KQuantsSource))
	}
	return srcs
}
