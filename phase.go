package octree

import "time"

// PhaseObserver is a nil-safe hook for phase timing: [Build] and
// [Tree.Compress] call it once per bulk-synchronous phase they run,
// with the phase's name and wall-clock duration. It exists for
// collaborators that want visibility into construction cost without
// this package importing a logging dependency of its own; passing no
// observer costs nothing beyond the nil check.
type PhaseObserver func(phase string, elapsed time.Duration)

// firstObserver returns the first non-nil observer in opts, or nil if
// opts is empty or every entry is nil. Build and Compress accept their
// observer as a trailing variadic argument so that existing call sites
// with no observer need no change; passing more than one is accepted
// but only the first non-nil one is used.
func firstObserver(opts []PhaseObserver) PhaseObserver {
	for _, o := range opts {
		if o != nil {
			return o
		}
	}
	return nil
}

// timePhase reports elapsed wall-clock time for one phase to observe,
// if observe is non-nil.
func timePhase(observe PhaseObserver, phase string, start time.Time) {
	if observe != nil {
		observe(phase, time.Since(start))
	}
}
