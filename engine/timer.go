package engine

import "time"

// Timing is the accumulated cost of a single plugin.
type Timing struct {
	ID      string
	Calls   int
	Elapsed time.Duration
}

type timer struct {
	order []string
	byID  map[string]*Timing
}

func newTimer() *timer {
	return &timer{byID: make(map[string]*Timing)}
}

// start begins measuring id, returned func stops it.
func (t *timer) start(id string) func() {
	begin := time.Now()
	return func() {
		rec, ok := t.byID[id]
		if !ok {
			rec = &Timing{ID: id}
			t.byID[id] = rec
			t.order = append(t.order, id)
		}
		rec.Calls++
		rec.Elapsed += time.Since(begin)
	}
}

func (t *timer) report() []Timing {
	out := make([]Timing, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byID[id])
	}
	return out
}
