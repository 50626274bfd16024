package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	require.NoError(t, s.Push(CallFrame{Name: "F", EnvID: 1}))
	require.NoError(t, s.Push(CallFrame{Name: "M", Macro: true, EnvID: 2}))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "M", s.Top().Name)

	err := s.Push(CallFrame{Name: "G"})
	require.Error(t, err)
	assert.True(t, HasKind(err, StackError))
	assert.Equal(t, 2, err.(*Error).Stack.Height())

	var buf bytes.Buffer
	_, err = s.DebugPrint(&buf)
	require.NoError(t, err)
	expect := `Stack Trace [2 frames -- entrypoint last]:
  height 1: M (env 2) [macro]
  height 0: F (env 1)
`
	assert.Equal(t, expect, buf.String())

	cp := s.Copy()
	assert.Equal(t, "M", s.Pop().Name)
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())

	var empty *CallStack
	assert.Nil(t, empty.Top())
	assert.Nil(t, empty.Copy())
}
