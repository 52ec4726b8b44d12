package mapper

// Overrides is a two-layer table of forced value -> candidate matches. The
// context layer wins over the global layer for the same value. Instances are
// read-only after construction and safe for concurrent use.
type Overrides[V, C, X comparable] struct {
	global   map[V]C
	contexts map[X]map[V]C
}

// NewOverrides creates a global (context-free) override table.
func NewOverrides[V, C, X comparable](global map[V]C) *Overrides[V, C, X] {
	return NewContextOverrides[V, C, X](global, nil)
}

// NewContextOverrides creates an override table with per-context layers on
// top of a shared global layer. Both arguments may be nil. The input maps are
// copied.
func NewContextOverrides[V, C, X comparable](global map[V]C, contexts map[X]map[V]C) *Overrides[V, C, X] {
	o := &Overrides[V, C, X]{
		global: make(map[V]C, len(global)),
	}

	for v, c := range global {
		o.global[v] = c
	}

	if len(contexts) > 0 {
		o.contexts = make(map[X]map[V]C, len(contexts))

		for x, layer := range contexts {
			m := make(map[V]C, len(layer))
			for v, c := range layer {
				m[v] = c
			}

			o.contexts[x] = m
		}
	}

	return o
}

// Get looks up the override for a value, preferring the context layer.
func (o *Overrides[V, C, X]) Get(context X, value V) (C, bool) {
	if layer, ok := o.contexts[context]; ok {
		if c, ok := layer[value]; ok {
			return c, true
		}
	}

	c, ok := o.global[value]

	return c, ok
}

// ContextSensitive reports whether any per-context layers exist. Using a
// context-sensitive table with the zero context is an error.
func (o *Overrides[V, C, X]) ContextSensitive() bool {
	return len(o.contexts) > 0
}

// Len returns the total number of override entries across all layers.
func (o *Overrides[V, C, X]) Len() int {
	n := len(o.global)
	for _, layer := range o.contexts {
		n += len(layer)
	}

	return n
}
