// Package nm talks to NetworkManager through nmcli. All state-changing
// calls are fire-and-forget: the dashboard never blocks on or inspects the
// outcome of an external process; the next status poll reflects whatever
// actually happened.
package nm

import (
	"io"
	"os/exec"
)

// Runner executes external commands. Query commands return captured output;
// spawn commands detach immediately. The seam exists so tests can substitute
// a recording fake.
type Runner interface {
	// Output runs a command to completion and returns its stdout.
	Output(name string, args ...string) ([]byte, error)
	// Spawn starts a command and detaches, discarding all output.
	Spawn(name string, args ...string) error
	// SpawnWithInput starts a command, writes input followed by a newline to
	// its stdin, and detaches.
	SpawnWithInput(input, name string, args ...string) error
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Output runs the command and returns its stdout.
func (r *ExecRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Spawn starts the command detached. The process is reaped in the
// background so it never becomes a zombie; its exit status is dropped.
func (r *ExecRunner) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// SpawnWithInput starts the command, writes input plus a trailing newline to
// its stdin, closes it, and detaches.
func (r *ExecRunner) SpawnWithInput(input, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_, _ = io.WriteString(stdin, input+"\n")
		_ = stdin.Close()
		_ = cmd.Wait()
	}()
	return nil
}
