package schedutils

import (
	"fmt"
	"math/bits"
	"unsafe"
)

// CPUSet is a variable-width CPU affinity bitmask in the kernel's layout: bit
// n of word n/64 stands for CPU n. See sched_getaffinity(2).
type CPUSet []uint64

// MaxSetBits caps the width of a single CPU set. It is far above any
// NR_CPUS a kernel is built with.
const MaxSetBits = 1 << 24

var (
	wordBytes = int(unsafe.Sizeof(uint64(0)))
	wordBits  = wordBytes * 8
)

// NewCPUSet returns a zeroed set wide enough for maxCPUs CPUs, rounded up to
// whole words.
func NewCPUSet(maxCPUs int) (CPUSet, error) {
	if maxCPUs <= 0 {
		return nil, fmt.Errorf("cpu set width %d: %w", maxCPUs, ErrInvalidArgument)
	}
	if maxCPUs > MaxSetBits {
		return nil, fmt.Errorf("cpu set width %d exceeds %d: %w", maxCPUs, MaxSetBits, ErrOutOfMemory)
	}
	return make(CPUSet, (maxCPUs+wordBits-1)/wordBits), nil
}

// CPUSetFromCPUs returns a set of width maxCPUs with exactly the given CPUs
// set. Any CPU outside [0, maxCPUs) is an error; duplicates are fine.
func CPUSetFromCPUs(cpus []int, maxCPUs int) (CPUSet, error) {
	s, err := NewCPUSet(maxCPUs)
	if err != nil {
		return nil, err
	}
	for _, cpu := range cpus {
		if cpu < 0 || cpu >= maxCPUs {
			return nil, fmt.Errorf("invalid CPU %d (must be in 0-%d): %w", cpu, maxCPUs-1, ErrInvalidArgument)
		}
		s.Set(cpu)
	}
	return s, nil
}

// Bytes returns the size of the set in bytes, as passed to the kernel.
func (s CPUSet) Bytes() int {
	return len(s) * wordBytes
}

// Len returns the number of CPUs the set can hold.
func (s CPUSet) Len() int {
	return len(s) * wordBits
}

// Set adds cpu to the set. CPUs outside the set's width are ignored.
func (s CPUSet) Set(cpu int) {
	if cpu < 0 || cpu >= s.Len() {
		return
	}
	s[cpu/wordBits] |= uint64(1) << (uint(cpu) % uint(wordBits))
}

// IsSet reports whether cpu is part of the set.
func (s CPUSet) IsSet(cpu int) bool {
	if cpu < 0 || cpu >= s.Len() {
		return false
	}
	return s[cpu/wordBits]&(uint64(1)<<(uint(cpu)%uint(wordBits))) != 0
}

// Count returns the number of CPUs in the set.
func (s CPUSet) Count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// CPUs returns the CPUs in the set in ascending order. All-zero words are
// skipped without inspecting their bits.
func (s CPUSet) CPUs() []int {
	cpus := make([]int, 0, s.Count())
	for idx, w := range s {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			cpus = append(cpus, idx*wordBits+tz)
			w &= w - 1
		}
	}
	return cpus
}
