package schedutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyName(t *testing.T) {
	tests := []struct {
		policy   Policy
		expected string
	}{
		{SchedOther, "SCHED_OTHER"},
		{SchedFIFO, "SCHED_FIFO"},
		{SchedRR, "SCHED_RR"},
		{SchedBatch, "SCHED_BATCH"},
		{SchedIdle, "SCHED_IDLE"},
		{SchedDeadline, "SCHED_DEADLINE"},
		{SchedFIFO | SchedResetOnFork, "SCHED_FIFO"},
		{4, UnknownPolicyName},
		{7, UnknownPolicyName},
		{-1, UnknownPolicyName},
		{SchedResetOnFork | 42, UnknownPolicyName},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, PolicyName(tt.policy))
			assert.Equal(t, tt.expected, tt.policy.String())
		})
	}
}

func TestPolicyFromName_RoundTrip(t *testing.T) {
	for _, p := range Policies() {
		for _, flags := range []Policy{0, SchedResetOnFork} {
			got, err := PolicyFromName(PolicyName(p | flags))
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
}

func TestPolicyFromName_Invalid(t *testing.T) {
	for _, name := range []string{"bogus", "", "sched_fifo", "SCHED_FIFO ", "UNKNOWN", "SCHED_NORMAL"} {
		_, err := PolicyFromName(name)
		assert.ErrorIs(t, err, ErrInvalidArgument, "name %q", name)
	}
}

func TestPolicies(t *testing.T) {
	ps := Policies()
	assert.Equal(t, []Policy{SchedOther, SchedFIFO, SchedRR, SchedBatch, SchedIdle, SchedDeadline}, ps)

	// callers must not be able to mess with the recognized policies
	ps[0] = 42
	assert.Equal(t, SchedOther, Policies()[0])
}

func TestPolicy_ResetOnFork(t *testing.T) {
	assert.True(t, (SchedRR | SchedResetOnFork).ResetOnFork())
	assert.False(t, SchedRR.ResetOnFork())
}
