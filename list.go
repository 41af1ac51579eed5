package schedcore

import "golang.org/x/exp/slices"

// hook is one intrusive doubly linked list node, embedded in Thread. A
// Thread has three independent hooks (readyHook, allHook, donationHook) so
// it can be linked into up to three lists simultaneously, exactly as
// spec.md §3 describes ("ready_hook", "all_hook", "donation_hook").
type hook struct {
	prev, next *Thread
	linked     bool
}

// accessor extracts the hook a particular list operates on from a Thread.
// Lists never own their elements; they hold non-owning pointers into the
// TCBs, so a list is cheap to construct and never allocates per element.
type accessor func(*Thread) *hook

// list is an intrusive, doubly linked, optionally ordered list of *Thread.
// It mirrors threads/list.c's list_elem-based lists: insertOrdered scans
// front-to-back and inserts before the first element for which less(new,
// existing) holds, which yields FIFO order among elements the less
// function considers equal.
type list struct {
	head, tail *Thread
	get        accessor
	n          int
}

func newList(get accessor) *list {
	return &list{get: get}
}

func (l *list) empty() bool { return l.n == 0 }

func (l *list) size() int { return l.n }

func (l *list) front() *Thread { return l.head }

// pushBack appends t to the end of the list.
func (l *list) pushBack(t *Thread) {
	h := l.get(t)
	*h = hook{prev: l.tail, next: nil, linked: true}
	if l.tail != nil {
		l.get(l.tail).next = t
	} else {
		l.head = t
	}
	l.tail = t
	l.n++
}

// insertOrdered inserts t before the first element for which less(t, e) is
// true, or at the back if none. A stable FIFO order among equal elements
// falls out of scanning front-to-back.
func (l *list) insertOrdered(t *Thread, less func(a, b *Thread) bool) {
	for e := l.head; e != nil; e = l.get(e).next {
		if less(t, e) {
			l.insertBefore(t, e)
			return
		}
	}
	l.pushBack(t)
}

func (l *list) insertBefore(t, mark *Thread) {
	mh := l.get(mark)
	th := l.get(t)
	*th = hook{prev: mh.prev, next: mark, linked: true}
	if mh.prev != nil {
		l.get(mh.prev).next = t
	} else {
		l.head = t
	}
	mh.prev = t
	l.n++
}

// remove unlinks t. It is a caller bug to remove an element not currently
// linked in this list.
func (l *list) remove(t *Thread) {
	h := l.get(t)
	if h.prev != nil {
		l.get(h.prev).next = h.next
	} else {
		l.head = h.next
	}
	if h.next != nil {
		l.get(h.next).prev = h.prev
	} else {
		l.tail = h.prev
	}
	*h = hook{}
	l.n--
}

// popFront removes and returns the front element, or nil if empty.
func (l *list) popFront() *Thread {
	t := l.head
	if t == nil {
		return nil
	}
	l.remove(t)
	return t
}

// sort re-sorts the list in place using less, preserving the relative
// order of elements for which neither is less than the other (stable).
// Used by the MLFQS per-4-tick re-sort of the ready list.
func (l *list) sort(less func(a, b *Thread) bool) {
	elems := make([]*Thread, 0, l.n)
	for e := l.head; e != nil; e = l.get(e).next {
		elems = append(elems, e)
	}
	// slices.SortStableFunc (as pinned) takes a three-way cmp func(a, b) int,
	// not the bool less this package's insertOrdered uses throughout, so
	// adapt here rather than changing every call site's comparator shape.
	slices.SortStableFunc(elems, func(a, b *Thread) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	*l = list{get: l.get}
	for _, e := range elems {
		l.pushBack(e)
	}
}

// forEach iterates front-to-back. fn must not mutate this list.
func (l *list) forEach(fn func(*Thread)) {
	for e := l.head; e != nil; e = l.get(e).next {
		fn(e)
	}
}
