// Package testutil lets a test binary stand in for the recall executable.
//
// A package using FakeRecall must call RunFakeRecallIfRequested from TestMain
// before m.Run, so the re-executed binary behaves like the recall tool instead
// of running the test suite again.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	envFakeRecall = "HOOK_MEMORY_RECALL_FAKE"
	envStdout     = "HOOK_MEMORY_RECALL_FAKE_STDOUT"
	envStderr     = "HOOK_MEMORY_RECALL_FAKE_STDERR"
	envExitCode   = "HOOK_MEMORY_RECALL_FAKE_EXIT"
	envSleep      = "HOOK_MEMORY_RECALL_FAKE_SLEEP"
	envArgsFile   = "HOOK_MEMORY_RECALL_FAKE_ARGS_FILE"
)

// FakeRecall describes how the fake recall executable behaves
type FakeRecall struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Sleep    time.Duration
}

// Install configures the environment for the fake and returns the command
// to run and a function reporting the arguments of the last invocation
// (nil if the fake never ran).
func (f FakeRecall) Install(t *testing.T) (string, func() []string) {
	t.Helper()

	command, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to locate test binary: %v", err)
	}

	argsFile := filepath.Join(t.TempDir(), "args.json")

	t.Setenv(envFakeRecall, "1")
	t.Setenv(envStdout, f.Stdout)
	t.Setenv(envStderr, f.Stderr)
	t.Setenv(envExitCode, fmt.Sprint(f.ExitCode))
	t.Setenv(envSleep, f.Sleep.String())
	t.Setenv(envArgsFile, argsFile)

	lastArgs := func() []string {
		data, err := os.ReadFile(argsFile)
		if err != nil {
			return nil
		}

		var args []string
		if err := json.Unmarshal(data, &args); err != nil {
			t.Fatalf("failed to decode recorded args: %v", err)
		}
		return args
	}

	return command, lastArgs
}

// RunFakeRecallIfRequested turns the current process into the fake recall
// executable when the environment asks for it. It never returns in that case.
func RunFakeRecallIfRequested() {
	if os.Getenv(envFakeRecall) != "1" {
		return
	}

	if path := os.Getenv(envArgsFile); path != "" {
		data, _ := json.Marshal(os.Args[1:])
		_ = os.WriteFile(path, data, 0600)
	}

	if d, err := time.ParseDuration(os.Getenv(envSleep)); err == nil && d > 0 {
		time.Sleep(d)
	}

	fmt.Fprint(os.Stdout, os.Getenv(envStdout))
	fmt.Fprint(os.Stderr, os.Getenv(envStderr))

	var code int
	fmt.Sscan(os.Getenv(envExitCode), &code)
	os.Exit(code)
}
