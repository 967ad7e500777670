//go:build !unix

package executor

import "errors"

func (e *DefaultExecutor) Exec(path string, argv []string, env []string) error {
	return errors.New("exec is only supported on unix platforms")
}
