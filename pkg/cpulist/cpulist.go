// Package cpulist converts between CPU numbers and their textual forms, as
// used by taskset(1) and the Cpus_allowed* fields in /proc/$PID/status:
// lists of ranges such as "0-3,8" and hexadecimal masks such as "ff1e".
package cpulist

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"github.com/thediveo/faf"
)

// MaxCPU is the highest CPU number accepted when parsing.
const MaxCPU = 1<<24 - 1

// Parse returns the CPU numbers of a textual CPU list, such as "1-4,8,10-11",
// in ascending order and without duplicates. An empty list is fine.
func Parse(b []byte) ([]int, error) {
	return ParseLimit(b, MaxCPU+1)
}

// ParseLimit works like Parse, but rejects CPU numbers of limit and above
// before any range gets expanded.
func ParseLimit(b []byte, limit int) ([]int, error) {
	if limit <= 0 || limit > MaxCPU+1 {
		limit = MaxCPU + 1
	}
	bs := faf.NewBytestring(b)
	cpus := []int{}
	for {
		if bs.EOL() {
			return normalize(cpus), nil
		}
		from, ok := bs.Uint64()
		if !ok {
			return nil, errors.New("expected unsigned integer number")
		}
		to := from
		if !bs.EOL() {
			ch, _ := bs.Next()
			switch ch {
			case '-':
				if to, ok = bs.Uint64(); !ok {
					return nil, errors.New("expected unsigned integer number")
				}
				if to < from {
					return nil, fmt.Errorf("invalid range %d-%d", from, to)
				}
				if !bs.EOL() {
					if ch, _ = bs.Next(); ch != ',' {
						return nil, errors.New("expected ','")
					}
				}
			case ',':
			default:
				return nil, errors.New("expected '-' or ','")
			}
		}
		if to >= uint64(limit) {
			return nil, fmt.Errorf("CPU %d out of range", to)
		}
		for cpu := from; cpu <= to; cpu++ {
			cpus = append(cpus, int(cpu))
		}
	}
}

// Format returns the textual list representation of cpus, with consecutive
// CPUs collapsed into "x-y" ranges. cpus need not be sorted.
func Format(cpus []int) string {
	cpus = normalize(slices.Clone(cpus))
	var b strings.Builder
	for idx := 0; idx < len(cpus); {
		from := cpus[idx]
		to := from
		for idx++; idx < len(cpus) && cpus[idx] == to+1; idx++ {
			to = cpus[idx]
		}
		if b.Len() > 0 {
			b.WriteString(",")
		}
		if from == to {
			b.WriteString(strconv.Itoa(from))
			continue
		}
		fmt.Fprintf(&b, "%d-%d", from, to)
	}
	return b.String()
}

// ParseMask returns the CPU numbers of a hexadecimal affinity mask, with the
// least significant bit standing for CPU 0. A leading "0x" and "," word
// separators (as in /proc/$PID/status) are accepted.
func ParseMask(s string) ([]int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil, errors.New("empty mask")
	}
	if len(s) > (MaxCPU+1)/4 {
		return nil, errors.New("mask too long")
	}
	cpus := []int{}
	for idx := len(s) - 1; idx >= 0; idx-- {
		nibble, err := strconv.ParseUint(s[idx:idx+1], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid mask %q", s)
		}
		base := (len(s) - 1 - idx) * 4
		for nibble != 0 {
			cpus = append(cpus, base+bits.TrailingZeros64(nibble))
			nibble &= nibble - 1
		}
	}
	return cpus, nil
}

// FormatMask returns the hexadecimal mask for cpus, without "0x" prefix.
// Negative CPU numbers are ignored.
func FormatMask(cpus []int) string {
	var words []uint64
	for _, cpu := range cpus {
		if cpu < 0 {
			continue
		}
		for cpu/64 >= len(words) {
			words = append(words, 0)
		}
		words[cpu/64] |= uint64(1) << (uint(cpu) % 64)
	}
	if len(words) == 0 {
		return "0"
	}
	var b strings.Builder
	b.WriteString(strconv.FormatUint(words[len(words)-1], 16))
	for idx := len(words) - 2; idx >= 0; idx-- {
		fmt.Fprintf(&b, "%016x", words[idx])
	}
	return b.String()
}

func normalize(cpus []int) []int {
	slices.Sort(cpus)
	return slices.Compact(cpus)
}
