package domain

// Arguments holds validated, coerced, defaulted inputs for one invocation.
// Values are string, float64, int, bool, []float64 or map[string]float64.
type Arguments map[string]any

func (a Arguments) String(name string) string {
	s, _ := a[name].(string)
	return s
}

func (a Arguments) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (a Arguments) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (a Arguments) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

func (a Arguments) Floats(name string) []float64 {
	f, _ := a[name].([]float64)
	return f
}

func (a Arguments) FloatMap(name string) map[string]float64 {
	m, _ := a[name].(map[string]float64)
	return m
}

// Has reports whether the argument is present (supplied or defaulted).
func (a Arguments) Has(name string) bool {
	_, ok := a[name]
	return ok
}
