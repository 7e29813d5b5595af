package eval

type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

func (i *Instance) Class() *Class {
	return i.class
}

func (i *Instance) String() string {
	return i.class.Name + " instance"
}

// Get returns a field only; methods are looked up by the evaluator.
func (i *Instance) Get(key string) (any, bool) {
	val, ok := i.fields[key]
	return val, ok
}

func (i *Instance) Set(key string, value any) {
	i.fields[key] = value
}
