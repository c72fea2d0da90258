package chart

import "strconv"

// Pair links a persisting element's old and new positions.
type Pair struct {
	Prev, Next int
}

// Plan is the enter/update/exit reconciliation of two keyed element lists.
// Enter holds indices into next, Exit indices into prev.
type Plan struct {
	Enter  []int
	Update []Pair
	Exit   []int
}

// Reconcile diffs prev against next by key. When a key repeats, the first
// unmatched element on each side pairs up and the rest enter or exit.
func Reconcile[K comparable](prev, next []K) Plan {
	byKey := make(map[K][]int, len(prev))
	for i, k := range prev {
		byKey[k] = append(byKey[k], i)
	}

	var plan Plan
	matched := make([]bool, len(prev))
	for i, k := range next {
		idx := byKey[k]
		if len(idx) == 0 {
			plan.Enter = append(plan.Enter, i)
			continue
		}
		byKey[k] = idx[1:]
		matched[idx[0]] = true
		plan.Update = append(plan.Update, Pair{Prev: idx[0], Next: i})
	}
	for i, ok := range matched {
		if !ok {
			plan.Exit = append(plan.Exit, i)
		}
	}
	return plan
}

// BarKey identifies a bar across updates.
type BarKey struct {
	Label      string
	Occurrence int
}

func (k BarKey) String() string {
	if k.Occurrence == 0 {
		return k.Label
	}
	return k.Label + "#" + strconv.Itoa(k.Occurrence)
}

// Keys returns the diff key of every point under mode.
func Keys(data Dataset, mode KeyMode) []BarKey {
	keys := make([]BarKey, len(data))
	if mode == KeyByIndex {
		for i := range data {
			keys[i] = BarKey{Label: strconv.Itoa(i)}
		}
		return keys
	}
	seen := make(map[string]int, len(data))
	for i, p := range data {
		keys[i] = BarKey{Label: p.Label, Occurrence: seen[p.Label]}
		seen[p.Label]++
	}
	return keys
}
