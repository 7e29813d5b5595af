package eval

type Class struct {
	Name       string
	Superclass *Class

	methods map[string]*Function
	statics map[string]*Function
}

func newClass(name string, superclass *Class, methods, statics map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, methods: methods, statics: statics}
}

// FindMethod looks up an instance method on c and then up the superclass
// chain.
func (c *Class) FindMethod(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.methods[name]; ok {
			return m
		}
	}

	return nil
}

func (c *Class) FindStatic(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.statics[name]; ok {
			return m
		}
	}

	return nil
}

func (c *Class) initializer() *Function {
	if init := c.FindMethod("init"); init != nil && init.isInitializer {
		return init
	}

	return nil
}

func (c *Class) Arity() uint8 {
	if init := c.initializer(); init != nil {
		return init.Arity()
	}

	return 0
}

func (c *Class) Call(e *Evaluator, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.initializer(); init != nil {
		if _, err := init.Bind(instance).Call(e, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}
