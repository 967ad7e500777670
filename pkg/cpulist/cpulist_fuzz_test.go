package cpulist

import (
	"slices"
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add([]byte("1-3,7,63-65"))
	f.Add([]byte(""))
	f.Add([]byte("0-0abc"))
	f.Add([]byte("4294967296-4294967297"))

	f.Fuzz(func(t *testing.T, input []byte) {
		cpus, err := Parse(input)
		if err != nil {
			return
		}
		if !slices.IsSorted(cpus) {
			t.Fatalf("unsorted result for %q: %v", input, cpus)
		}
		again, err := Parse([]byte(Format(cpus)))
		if err != nil || !slices.Equal(cpus, again) {
			t.Fatalf("Format/Parse mismatch for %q: %v vs %v (%v)", input, cpus, again, err)
		}
	})
}

func FuzzParseMask(f *testing.F) {
	f.Add("ff1e")
	f.Add("0x1,00000000")
	f.Add("zz")

	f.Fuzz(func(t *testing.T, input string) {
		_, _ = ParseMask(input)
	})
}
