package executor

// MockExecutor is a mock implementation of Executor for testing.
type MockExecutor struct {
	LookPathFunc func(file string) (string, error)
	ExecFunc     func(path string, argv []string, env []string) error
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Exec(path string, argv []string, env []string) error {
	if m.ExecFunc != nil {
		return m.ExecFunc(path, argv, env)
	}
	return nil
}
