package mcp

// availabilityState tracks the engine's position within a Timeline and the
// per-processor next-free-time map R. It owns the threshold-crossing logic
// of §4.5: retiring processors that fall out of the active set by setting
// R to the sentinel UB, and admitting newly active processors at min_R.
type availabilityState struct {
	timeline *Timeline
	index    int
	ub       int
	r        map[int]int
}

func newAvailabilityState(t *Timeline, ub int) *availabilityState {
	s := &availabilityState{timeline: t, index: 0, ub: ub, r: make(map[int]int)}
	for _, p := range s.activeSet() {
		s.r[p] = 0
	}
	return s
}

// activeLow returns the currently active low-memory-capable processor set.
func (s *availabilityState) activeLow() []int {
	return s.timeline.Low[s.index]
}

// activeHigh returns the currently active high-memory-capable processor set.
func (s *availabilityState) activeHigh() []int {
	return s.timeline.High[s.index]
}

// activeSet returns the union of the currently active low and high sets.
func (s *availabilityState) activeSet() []int {
	out := make([]int, 0, len(s.activeLow())+len(s.activeHigh()))
	out = append(out, s.activeLow()...)
	out = append(out, s.activeHigh()...)
	return out
}

// ready returns R[p], the time at which processor p is next free. Processors
// not yet observed (not yet active, never placed on) default to 0.
func (s *availabilityState) ready(p int) int {
	return s.r[p]
}

// commit records that processor p is now busy until newReady.
func (s *availabilityState) commit(p, newReady int) {
	s.r[p] = newReady
}

// advance recomputes min_R over the active set and, if the next threshold
// exists and min_R has reached it, performs one threshold crossing:
// processors leaving the active set are retired (R set to UB); processors
// entering it are admitted at min_R. At most one threshold is crossed per
// call, matching the single-step semantics of §4.5; sustained progress
// crosses subsequent thresholds on later calls.
func (s *availabilityState) advance() {
	active := s.activeSet()
	if len(active) == 0 {
		return
	}
	minR := s.r[active[0]]
	for _, p := range active[1:] {
		if s.r[p] < minR {
			minR = s.r[p]
		}
	}

	if s.index+1 >= len(s.timeline.Thresholds) {
		return
	}
	nextThreshold := s.timeline.Thresholds[s.index+1]
	if minR < nextThreshold {
		return
	}

	prevSet := make(map[int]bool, len(active))
	for _, p := range active {
		prevSet[p] = true
	}

	s.index++
	newSet := make(map[int]bool, len(s.activeSet()))
	for _, p := range s.activeSet() {
		newSet[p] = true
	}

	for p := range prevSet {
		if !newSet[p] {
			s.r[p] = s.ub
		}
	}
	for p := range newSet {
		if !prevSet[p] {
			s.r[p] = minR
		}
	}
}

// allProcessors returns every processor id referenced anywhere in the
// timeline, used to build the schedule output's full core_<i> key set.
func (t *Timeline) allProcessors() []int {
	seen := make(map[int]bool)
	var out []int
	add := func(ids []int) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	for i := range t.Thresholds {
		add(t.Low[i])
		add(t.High[i])
	}
	return out
}
