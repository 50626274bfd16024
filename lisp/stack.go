package lisp

import (
	"fmt"
	"io"
)

// DefaultMaxHeight is the default limit on the number of nested function and
// macro applications.
const DefaultMaxHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits the height of the stack.  A value less than one means
	// no limit.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name  string
	Macro bool
	// EnvID identifies the frame created to bind the call's arguments.
	EnvID uint
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes f onto s.  Push fails when the stack is already at its maximum
// height.
func (s *CallStack) Push(f CallFrame) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		lerr := Errorf(StackError, "maximum stack height %d exceeded calling %s", s.MaxHeight, f.Name)
		lerr.Stack = s.Copy()
		return lerr
	}
	s.Frames = append(s.Frames, f)
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", s.Height())
	if err != nil || s == nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		mod := ""
		if f.Macro {
			mod = " [macro]"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s (env %d)%s\n", indent, i, f.Name, f.EnvID, mod)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
