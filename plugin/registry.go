package plugin

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

var (
	ErrNoID        = errors.New("plugin has no id")
	ErrDuplicateID = errors.New("duplicate plugin id")
)

type registered struct {
	plugin Plugin
	desc   Descriptor
	index  int
}

// Registry keeps admitted plugins in per-category buckets.
type Registry struct {
	opts    *Options
	log     *zap.Logger
	buckets [4][]registered
	seen    map[string]struct{}
	next    int
}

// NewRegistry creates registry filtering plugins with opts.
func NewRegistry(opts *Options, log *zap.Logger) *Registry {
	if opts == nil {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		opts: opts,
		log:  log.Named("registry"),
		seen: make(map[string]struct{}),
	}
}

// Register admits p unless options filter it out. Returns false for
// rejected plugins.
func (r *Registry) Register(p Plugin) (bool, error) {
	d := p.Descriptor()
	if d.ID == "" {
		return false, fmt.Errorf("%w (%T)", ErrNoID, p)
	}
	if _, ok := r.seen[d.ID]; ok {
		return false, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	r.seen[d.ID] = struct{}{}

	// discovery order counts rejected plugins as well
	index := r.next
	r.next++

	if !r.opts.admits(d) {
		r.log.Debug("Plugin filtered out", zap.String("id", d.ID))
		return false, nil
	}
	c := d.Category()
	r.buckets[c] = append(r.buckets[c], registered{plugin: p, desc: d, index: index})
	r.log.Debug("Plugin registered", zap.String("id", d.ID), zap.Stringer("category", c), zap.Int("order", d.Rank()))
	return true, nil
}

// RegisterAll registers plugins in the given order stopping at the first
// error.
func (r *Registry) RegisterAll(plugins ...Plugin) error {
	for _, p := range plugins {
		if _, err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Sort orders every bucket by (rank, discovery index).
func (r *Registry) Sort() {
	for c := range r.buckets {
		b := r.buckets[c]
		sort.SliceStable(b, func(i, j int) bool {
			if b[i].desc.Rank() != b[j].desc.Rank() {
				return b[i].desc.Rank() < b[j].desc.Rank()
			}
			return b[i].index < b[j].index
		})
	}
}

// Plugins returns a copy of the category bucket in its current order.
func (r *Registry) Plugins(c Category) []Plugin {
	out := make([]Plugin, 0, len(r.buckets[c]))
	for _, e := range r.buckets[c] {
		out = append(out, e.plugin)
	}
	return out
}

// IDs returns plugin ids of the category bucket in its current order.
func (r *Registry) IDs(c Category) []string {
	out := make([]string, 0, len(r.buckets[c]))
	for _, e := range r.buckets[c] {
		out = append(out, e.desc.ID)
	}
	return out
}

// Len returns number of admitted plugins.
func (r *Registry) Len() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b)
	}
	return n
}
