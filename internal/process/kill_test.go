package process

import "testing"

// Real process trees are only killed by the PDF export; these cases only
// check that bogus pids are harmless.
func TestKillProcessGroup_IgnoresBogusPIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, 999999999} {
		KillProcessGroup(pid)
	}
}
