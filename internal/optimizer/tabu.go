package optimizer

// TabuList is a FIFO of recently-made move attribute keys (spec.md §4.6). A
// candidate is tabu if its key is present. Capacity (tenure) may change
// between iterations under the adaptive/hybrid variants; shrinking evicts
// from the front until the list fits.
type TabuList struct {
	order  []TabuKey
	counts map[TabuKey]int
	tenure int
}

// NewTabuList creates a tabu list with the given initial tenure.
func NewTabuList(tenure int) *TabuList {
	return &TabuList{counts: make(map[TabuKey]int), tenure: tenure}
}

// IsTabu reports whether key is currently forbidden.
func (t *TabuList) IsTabu(key TabuKey) bool {
	return t.counts[key] > 0
}

// Push records a newly accepted move, evicting the oldest entries while the
// list holds more than tenure entries afterward.
func (t *TabuList) Push(key TabuKey) {
	t.order = append(t.order, key)
	t.counts[key]++
	t.evictOverflow()
}

func (t *TabuList) evictOverflow() {
	for len(t.order) > t.tenure && len(t.order) > 0 {
		oldest := t.order[0]
		t.order = t.order[1:]
		t.counts[oldest]--
		if t.counts[oldest] <= 0 {
			delete(t.counts, oldest)
		}
	}
}

// SetTenure changes the capacity, applied on the next Push (and
// immediately evicting any overflow if the new tenure is smaller).
func (t *TabuList) SetTenure(tenure int) {
	t.tenure = tenure
	t.evictOverflow()
}

// Tenure returns the current tenure.
func (t *TabuList) Tenure() int { return t.tenure }

// Len returns the number of entries currently held (never exceeds Tenure).
func (t *TabuList) Len() int { return len(t.order) }

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
