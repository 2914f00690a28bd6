package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogRejectsBadCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := NewLog(c)
		assert.ErrorIs(t, err, ErrCapacity)
	}
}

func TestLogKeepsMostRecent(t *testing.T) {
	l, err := NewLog(3)
	require.NoError(t, err)

	l.Push(TagAttack, 1)
	l.Push(TagBlock, 1)
	assert.Equal(t, []Tag{TagAttack, TagBlock}, l.SnapshotOps())
	assert.Equal(t, []int{1, 1}, l.SnapshotTurns())

	l.Push(TagCharge, 2)
	l.Push(TagAttack, 3)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Cap())
	assert.Equal(t, []Tag{TagBlock, TagCharge, TagAttack}, l.SnapshotOps())
	assert.Equal(t, []int{1, 2, 3}, l.SnapshotTurns())

	first, ok := l.At(0)
	assert.True(t, ok)
	assert.Equal(t, Entry{Tag: TagBlock, Turn: 1}, first)
	_, ok = l.At(3)
	assert.False(t, ok)
}

func TestLogWrapsManyTimes(t *testing.T) {
	l, err := NewLog(DefaultCapacity)
	require.NoError(t, err)
	for i := 1; i <= 12; i++ {
		l.Push(Tag(i%3+1), i)
	}
	assert.Equal(t, []int{8, 9, 10, 11, 12}, l.SnapshotTurns())
}

func TestSnapshotIsACopy(t *testing.T) {
	l, err := NewLog(2)
	require.NoError(t, err)
	l.Push(TagAttack, 1)

	ops := l.SnapshotOps()
	ops[0] = TagCharge
	turns := l.SnapshotTurns()
	turns[0] = 99

	assert.Equal(t, []Tag{TagAttack}, l.SnapshotOps())
	assert.Equal(t, []int{1}, l.SnapshotTurns())
}
