package ecs

// Iterator is the explicit cursor form of a View for callers that cannot use
// a range loop.
//
//	it := view.Iter()
//	defer it.Close()
//	for it.Next() {
//	    use(it.Entity())
//	}
//
// The iterator holds the world's iteration lock from the first successful
// Next until Next reaches the sentinel (the table's current Next()) or Close
// is called.
type Iterator struct {
	view View
	from uint32 // next row to test
	cur  EntityID
	held bool
}

func (v View) Iter() *Iterator {
	return &Iterator{view: v, cur: InvalidEntity}
}

// Next advances to the next matching entity and reports whether there is one.
func (it *Iterator) Next() bool {
	t := it.view.world.table
	i := it.view.scan(it.from)
	if i == t.Next() {
		it.from = i
		it.cur = InvalidEntity
		it.Close()
		return false
	}
	if !it.held {
		it.view.world.acquire()
		it.held = true
	}
	it.cur = t.entityAt(i)
	it.from = i + 1
	return true
}

// Entity returns the current entity, or InvalidEntity before the first Next
// and after the last.
func (it *Iterator) Entity() EntityID { return it.cur }

// Reset rewinds to row 0 and releases the lock.
func (it *Iterator) Reset() {
	it.Close()
	it.from = 0
	it.cur = InvalidEntity
}

// Close releases the iteration lock. It is safe to call more than once.
func (it *Iterator) Close() {
	if it.held {
		it.view.world.release()
		it.held = false
	}
}
