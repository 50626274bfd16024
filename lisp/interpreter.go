package lisp

// Interpreter evaluates forms against a global environment.
type Interpreter struct {
	Runtime *Runtime
	Env     *LEnv
}

// NewInterpreter returns an Interpreter with a fresh global environment and
// runtime, modified by configs in order.
func NewInterpreter(configs ...Config) (*Interpreter, error) {
	env := NewEnv(nil)
	in := &Interpreter{
		Runtime: env.Runtime,
		Env:     env,
	}
	for _, config := range configs {
		if err := config(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Eval evaluates form in the global environment.
func (in *Interpreter) Eval(form *LVal) (*LVal, error) {
	return in.Env.Eval(form)
}

// EvalIn evaluates form in env.  When env is nil the global environment is
// used.
func (in *Interpreter) EvalIn(form *LVal, env *LEnv) (*LVal, error) {
	if env == nil {
		env = in.Env
	}
	return env.Eval(form)
}

// EvalString reads every form in source with the runtime Reader and
// evaluates them in sequence.  EvalString returns the value of the last form.
func (in *Interpreter) EvalString(source string) (*LVal, error) {
	return in.Env.LoadString(source)
}

// LoadFile evaluates every form in the file at path.
func (in *Interpreter) LoadFile(path string) (*LVal, error) {
	return in.Env.LoadFile(path)
}
