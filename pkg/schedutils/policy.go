package schedutils

import "fmt"

// Policy is a Linux scheduling policy code as used by sched_setscheduler(2),
// optionally or'ed with SchedResetOnFork.
type Policy int

// Scheduling policies, see sched(7).
const (
	SchedOther    Policy = 0
	SchedFIFO     Policy = 1
	SchedRR       Policy = 2
	SchedBatch    Policy = 3
	SchedIdle     Policy = 5
	SchedDeadline Policy = 6

	// SchedResetOnFork makes children of the process revert to SCHED_OTHER
	// (or default nice) instead of inheriting privileged scheduling.
	SchedResetOnFork Policy = 0x40000000
)

// UnknownPolicyName is what PolicyName returns for unrecognized codes.
const UnknownPolicyName = "UNKNOWN"

var policies = []Policy{SchedOther, SchedFIFO, SchedRR, SchedBatch, SchedIdle, SchedDeadline}

var policyNames = map[Policy]string{
	SchedOther:    "SCHED_OTHER",
	SchedFIFO:     "SCHED_FIFO",
	SchedRR:       "SCHED_RR",
	SchedBatch:    "SCHED_BATCH",
	SchedIdle:     "SCHED_IDLE",
	SchedDeadline: "SCHED_DEADLINE",
}

// Policies returns the recognized policy codes in ascending order.
func Policies() []Policy {
	return append([]Policy(nil), policies...)
}

// PolicyName returns the canonical name of the policy, ignoring the
// reset-on-fork flag. Unrecognized codes yield "UNKNOWN".
func PolicyName(p Policy) string {
	if name, ok := policyNames[p&^SchedResetOnFork]; ok {
		return name
	}
	return UnknownPolicyName
}

// PolicyFromName returns the policy code for a canonical policy name such as
// "SCHED_FIFO". Matching is exact and case-sensitive.
func PolicyFromName(name string) (Policy, error) {
	for _, p := range policies {
		if policyNames[p] == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown scheduler %q: %w", name, ErrInvalidArgument)
}

func (p Policy) String() string {
	return PolicyName(p)
}

// ResetOnFork reports whether the reset-on-fork flag is set.
func (p Policy) ResetOnFork() bool {
	return p&SchedResetOnFork != 0
}
