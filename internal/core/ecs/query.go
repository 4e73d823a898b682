package ecs

// Each1 iterates over entities that have component A.
func Each1[A any](w *World, fn func(EntityID, *A)) {
	ca := mustType[A](w)
	sa := lookupStore[A](w, ca)
	if sa == nil {
		return
	}
	for id := range NewView(w, ca).Entities() {
		a, _ := sa.Get(id.Index())
		fn(id, a)
	}
}

// Each2 iterates over entities that have both component A and B.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	ca, cb := mustType[A](w), mustType[B](w)
	sa, sb := lookupStore[A](w, ca), lookupStore[B](w, cb)
	if sa == nil || sb == nil {
		return
	}
	for id := range NewView(w, ca, cb).Entities() {
		idx := id.Index()
		a, _ := sa.Get(idx)
		b, _ := sb.Get(idx)
		fn(id, a, b)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](w *World, fn func(EntityID, *A, *B, *C)) {
	ca, cb, cc := mustType[A](w), mustType[B](w), mustType[C](w)
	sa, sb, sc := lookupStore[A](w, ca), lookupStore[B](w, cb), lookupStore[C](w, cc)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for id := range NewView(w, ca, cb, cc).Entities() {
		idx := id.Index()
		a, _ := sa.Get(idx)
		b, _ := sb.Get(idx)
		c, _ := sc.Get(idx)
		fn(id, a, b, c)
	}
}
