package testutil

import (
	"os"
	"testing"
)

// Chdir changes the working directory to dir and restores the previous one
// when the test ends. It stands in for testing.T.Chdir on older toolchains.
func Chdir(t testing.TB, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory %s: %v", prev, err)
		}
	})
}
