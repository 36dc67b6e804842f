package check

// Universe is the root scope containing the builtins.
var Universe *Scope

// builtins lists the predeclared functions with their argument bounds.
// A max of -1 means any number of further arguments.
var builtins = []struct {
	name     string
	min, max int
}{
	{"print", 0, -1},
	{"len", 1, 1},
	{"str", 1, 1},
	{"int", 1, 1},
	{"float", 1, 1},
	{"keys", 1, 1},
	{"push", 2, -1},
	{"range", 1, 3},
	{"typeof", 1, 1},
	{"assert", 1, 2},
}

func init() {
	Universe = NewScope(nil, 0, 0, "universe")
	for _, b := range builtins {
		Universe.Insert(NewBuiltin(b.name, b.min, b.max))
	}
}

// IsBuiltin reports whether name is a predeclared builtin.
func IsBuiltin(name string) bool {
	return Universe.Lookup(name) != nil
}
