package schedcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestThread(id ThreadID, priority int) *Thread {
	t := &Thread{id: id, priority: priority, basePriority: priority}
	return t
}

func collect(l *list) []ThreadID {
	var ids []ThreadID
	l.forEach(func(t *Thread) { ids = append(ids, t.id) })
	return ids
}

func TestList_InsertOrdered_DescendingWithFIFOTies(t *testing.T) {
	l := newList(func(t *Thread) *hook { return &t.readyHook })

	a := newTestThread(1, 10)
	b := newTestThread(2, 30)
	c := newTestThread(3, 30)
	d := newTestThread(4, 20)

	l.insertOrdered(a, lessPriority)
	l.insertOrdered(b, lessPriority)
	l.insertOrdered(c, lessPriority)
	l.insertOrdered(d, lessPriority)

	require.Equal(t, []ThreadID{2, 3, 4, 1}, collect(l))
	require.Equal(t, 4, l.size())
}

func TestList_RemoveAndPopFront(t *testing.T) {
	l := newList(func(t *Thread) *hook { return &t.readyHook })

	a := newTestThread(1, 10)
	b := newTestThread(2, 20)
	c := newTestThread(3, 30)
	l.pushBack(a)
	l.pushBack(b)
	l.pushBack(c)

	l.remove(b)
	require.Equal(t, []ThreadID{1, 3}, collect(l))
	require.Equal(t, 2, l.size())

	front := l.popFront()
	require.Equal(t, ThreadID(1), front.id)
	require.Equal(t, []ThreadID{3}, collect(l))

	require.Nil(t, newList(func(t *Thread) *hook { return &t.readyHook }).popFront())
}

func TestList_Sort(t *testing.T) {
	l := newList(func(t *Thread) *hook { return &t.readyHook })
	a := newTestThread(1, 10)
	b := newTestThread(2, 30)
	c := newTestThread(3, 20)
	l.pushBack(a)
	l.pushBack(b)
	l.pushBack(c)

	l.sort(lessPriority)
	require.Equal(t, []ThreadID{2, 3, 1}, collect(l))
}

func TestList_EmptyAndFront(t *testing.T) {
	l := newList(func(t *Thread) *hook { return &t.readyHook })
	require.True(t, l.empty())
	require.Nil(t, l.front())

	a := newTestThread(1, 10)
	l.pushBack(a)
	require.False(t, l.empty())
	require.Equal(t, a, l.front())
}
