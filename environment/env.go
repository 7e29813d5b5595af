package env

// Env is one scope frame. Frames only point outwards, so a chain always
// ends at the global frame. Closures keep their defining frame alive by
// holding a pointer to it.
type Env struct {
	outer *Env

	values map[string]any
}

func New() *Env {
	return &Env{values: make(map[string]any), outer: nil}
}

func NewChild(outer *Env) *Env {
	return &Env{values: make(map[string]any), outer: outer}
}

func (e *Env) Outer() *Env {
	return e.outer
}

// Define binds name in this frame only, replacing any previous binding.
func (e *Env) Define(name string, value any) {
	e.values[name] = value
}

// Assign updates the nearest frame that binds name and reports whether
// one was found.
func (e *Env) Assign(name string, value any) bool {
	_, ok := e.values[name]
	if !ok {
		if e.outer != nil {
			return e.outer.Assign(name, value)
		}

		return false
	}

	e.values[name] = value
	return true
}

// Get looks name up through the whole chain.
func (e *Env) Get(name string) (any, bool) {
	val, ok := e.values[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}

	return val, ok
}

// Ancestor returns the frame distance links outwards.
func (e *Env) Ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.outer
	}

	return env
}

// GetAt reads name from the frame distance links outwards without
// searching any other frame.
func (e *Env) GetAt(distance int, name string) (any, bool) {
	env := e.Ancestor(distance)
	if env == nil {
		return nil, false
	}

	val, ok := env.values[name]
	return val, ok
}

// AssignAt writes name into the frame distance links outwards.
func (e *Env) AssignAt(distance int, name string, value any) bool {
	env := e.Ancestor(distance)
	if env == nil {
		return false
	}

	env.values[name] = value
	return true
}
