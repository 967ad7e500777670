package executor

import "os/exec"

// Executor replaces the running process with another program, the way
// chrt(1) and taskset(1) start their command after changing their own
// scheduling attributes.
type Executor interface {
	LookPath(file string) (string, error)
	// Exec only returns on failure.
	Exec(path string, argv []string, env []string) error
}

// DefaultExecutor is the standard implementation using execve(2).
type DefaultExecutor struct{}

func (e *DefaultExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
