package runtime

// Record is an insertion-ordered string-keyed map. Re-setting a key replaces
// its value and keeps its original position.
type Record struct {
	keys    []string
	entries map[string]Value
}

// NewRecord builds an empty record.
func NewRecord() *Record {
	return &Record{entries: make(map[string]Value)}
}

// Set inserts or replaces key.
func (r *Record) Set(key string, val Value) {
	if val == nil {
		val = Empty
	}
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = val
}

// Get returns the value under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	val, ok := r.entries[key]
	return val, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// At returns the idx-th entry (0-based) in insertion order.
func (r *Record) At(idx int) (string, Value, bool) {
	if r == nil || idx < 0 || idx >= len(r.keys) {
		return "", nil, false
	}
	key := r.keys[idx]
	return key, r.entries[key], true
}

// Clone returns a shallow copy.
func (r *Record) Clone() *Record {
	out := NewRecord()
	for _, key := range r.Keys() {
		out.Set(key, r.entries[key])
	}
	return out
}
