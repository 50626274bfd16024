package lisp

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment.  An LEnv is one frame of a chain of lexical
// scopes.  Frames are shared and mutable, closures hold references to the
// frame in which they were created.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
	depth   int
}

// NewEnv returns initializes and returns a new LEnv.  When parent is nil the
// returned LEnv is a root environment with a new Runtime.
func NewEnv(parent *LEnv) *LEnv {
	env := &LEnv{
		ID:     getEnvID(),
		Scope:  make(map[string]*LVal),
		Parent: parent,
	}
	if parent != nil {
		env.Runtime = parent.Runtime
		env.depth = parent.depth + 1
	} else {
		env.Runtime = NewRuntime()
	}
	return env
}

func (env *LEnv) stack() *CallStack {
	if env == nil || env.Runtime == nil {
		return nil
	}
	return env.Runtime.Stack
}

// Depth returns the number of ancestors of env.  A root environment has depth
// zero.
func (env *LEnv) Depth() int {
	return env.depth
}

// Global returns the root environment (global scope) of env.
func (env *LEnv) Global() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

func symbolKey(k *LVal) (string, error) {
	if k == nil || k.Type != LSymbol {
		typ := LNil
		if k != nil {
			typ = k.Type
		}
		return "", Errorf(TypingError, "not a symbol: %v (%v)", k, typ)
	}
	return strings.ToUpper(k.Str), nil
}

// Lookup takes an LSymbol k and returns the LVal it is bound to in env or the
// nearest ancestor binding it.  Lookup returns a BindingError if no frame
// binds k.
func (env *LEnv) Lookup(k *LVal) (*LVal, error) {
	key, err := symbolKey(k)
	if err != nil {
		return nil, err
	}
	for e := env; e != nil; e = e.Parent {
		v, ok := e.Scope[key]
		if ok {
			return v, nil
		}
	}
	lerr := env.errorf(BindingError, "no such variable in environment: %s", key)
	lerr.Symbol = key
	return nil, lerr
}

// Bound returns true if k is bound in env or any of its ancestors.
func (env *LEnv) Bound(k *LVal) bool {
	key, err := symbolKey(k)
	if err != nil {
		return false
	}
	return env.frameOf(key) != nil
}

func (env *LEnv) frameOf(key string) *LEnv {
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[key]; ok {
			return e
		}
	}
	return nil
}

// Define binds k to v in env, shadowing any binding of k in an ancestor.
func (env *LEnv) Define(k, v *LVal) error {
	key, err := symbolKey(k)
	if err != nil {
		return err
	}
	if v == nil {
		v = Nil()
	}
	env.Scope[key] = v
	return nil
}

// Assign stores v in the nearest frame that already binds k.  If no frame
// binds k then a new binding is created in env itself.
func (env *LEnv) Assign(k, v *LVal) error {
	key, err := symbolKey(k)
	if err != nil {
		return err
	}
	if v == nil {
		v = Nil()
	}
	target := env.frameOf(key)
	if target == nil {
		target = env
	}
	target.Scope[key] = v
	return nil
}

// DefineGlobal binds k to v in the root environment.
func (env *LEnv) DefineGlobal(k, v *LVal) error {
	return env.Global().Define(k, v)
}

// Symbols returns the sorted names bound locally in env.
func (env *LEnv) Symbols() []string {
	keys := make([]string, 0, len(env.Scope))
	for k := range env.Scope {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (env *LEnv) String() string {
	return fmt.Sprintf("#<env %d depth=%d %v>", env.ID, env.depth, env.Symbols())
}
