package schedutils

import (
	"github.com/stretchr/testify/mock"
)

// MockSystemOps mocks the SystemOps interface.
type MockSystemOps struct {
	mock.Mock
}

func (m *MockSystemOps) SchedGetaffinity(pid int, set CPUSet) (int, error) {
	args := m.Called(pid, set)
	return args.Int(0), args.Error(1)
}

func (m *MockSystemOps) SchedSetaffinity(pid int, set CPUSet) error {
	args := m.Called(pid, set)
	return args.Error(0)
}

func (m *MockSystemOps) SchedGetscheduler(pid int) (int, error) {
	args := m.Called(pid)
	return args.Int(0), args.Error(1)
}

func (m *MockSystemOps) SchedSetscheduler(pid int, policy int, priority int) error {
	args := m.Called(pid, policy, priority)
	return args.Error(0)
}

func (m *MockSystemOps) SchedGetparam(pid int) (int, error) {
	args := m.Called(pid)
	return args.Int(0), args.Error(1)
}

func (m *MockSystemOps) SchedGetPriorityMin(policy int) (int, error) {
	args := m.Called(policy)
	return args.Int(0), args.Error(1)
}

func (m *MockSystemOps) SchedGetPriorityMax(policy int) (int, error) {
	args := m.Called(policy)
	return args.Int(0), args.Error(1)
}

// setOfWidth matches CPU sets able to hold exactly bits CPUs.
func setOfWidth(bits int) interface{} {
	return mock.MatchedBy(func(s CPUSet) bool {
		return s.Len() == bits
	})
}
