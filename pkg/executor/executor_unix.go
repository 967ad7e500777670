//go:build unix

package executor

import "golang.org/x/sys/unix"

func (e *DefaultExecutor) Exec(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}
