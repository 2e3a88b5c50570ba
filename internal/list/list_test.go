package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendAndAt(t *testing.T) {
	var l List[int]
	l.Append(1)
	l.Append(2)
	l.Append(3)
	require.Equal(t, 3, l.Len())
	require.Equal(t, 2, l.At(1))
	require.Equal(t, []int{1, 2, 3}, l.Items())
}

func TestFind(t *testing.T) {
	var l List[string]
	l.Append("a")
	l.Append("bb")
	l.Append("ccc")
	v, ok := l.Find(func(s string) bool { return len(s) == 2 })
	require.True(t, ok)
	require.Equal(t, "bb", v)

	_, ok = l.Find(func(s string) bool { return len(s) == 9 })
	require.False(t, ok)
}
