// pkg/env/doc.go
package env

/*
Package env locates the vendor libraries an accelerated build links
against (cuBLAS, CLBlast, OpenCL, OpenBLAS) below a set of install prefixes.

Each prefix is searched with the target's library layout, so a prefix of
/usr finds usr/lib/x86_64-linux-gnu/libopenblas.so on Debian-style systems
and /opt/homebrew/opt/openblas finds lib/libopenblas.dylib on macOS.

Basic Usage:

	e := env.New(platform.OSLinux, []string{"/usr", "/usr/local/cuda"})

	blas := e.FindLibrary("openblas")
	if blas != nil {
		fmt.Printf("Found: %s at %s\n", blas.Name, blas.Path)
	}

	// Directories to pass as link-search paths
	dirs := e.LibraryDirs(env.Libraries(platform.OSLinux, cfg))
*/
