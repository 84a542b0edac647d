package sheetlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup. It mirrors testing.T.Chdir, which needs Go 1.24,
// so the suite can run on older toolchains. PWD is set directly rather than
// through t.Setenv because, like T.Chdir, this must keep working in
// non-parallel subtests of parallel parents.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	// On POSIX platforms PWD is "an absolute pathname of the current
	// working directory", so keep it in sync like testing.T.Chdir does.
	switch runtime.GOOS {
	case "windows", "plan9":
		// These platforms do not use the PWD variable.
	default:
		if !filepath.IsAbs(dir) {
			dir, err = os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
		}
		prev, had := os.LookupEnv("PWD")
		if err := os.Setenv("PWD", dir); err != nil {
			t.Fatalf("cannot set environment variable PWD: %v", err)
		}
		t.Cleanup(func() {
			if had {
				_ = os.Setenv("PWD", prev)
			} else {
				_ = os.Unsetenv("PWD")
			}
		})
	}
	t.Cleanup(func() {
		if err := oldwd.Chdir(); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
		if err := oldwd.Close(); err != nil {
			t.Errorf("closing original working directory: %v", err)
		}
	})
}
