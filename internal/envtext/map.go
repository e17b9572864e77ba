package envtext

// Map is an ordered set of dotenv variables. Keys keep the position of their
// first definition while values follow the last one.
type Map struct {
	keys   []string
	values map[string]string
}

func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Set records a value. Redefining a key updates its value in place.
func (m *Map) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Value returns the value for key or an empty string.
func (m *Map) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns a copy of the keys in definition order.
func (m *Map) Keys() []string {
	if m == nil || len(m.keys) == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
