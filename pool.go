package arbor

import "errors"

// ErrDoubleRelease is returned when a widget is released to a pool that does
// not currently hold it in the used set, most commonly a double release.
var ErrDoubleRelease = errors.New("arbor: release of a widget the pool does not hold")

// Pool recycles widget handles across render passes. Instances move between
// a used set and a free list; the pool never destroys an instance, so the
// total count is the high-water mark of simultaneously visible widgets, not
// the node count. Acquire prefers the exact handle a caller used last time,
// which keeps a row bound to the same widget across passes while it stays
// visible.
//
// Handles are compared by identity, so implementations must be pointers (see
// Pooled). A Pool must not be shared across goroutines.
type Pool[W Pooled] struct {
	used    map[any]W
	free    []W
	freeIdx map[any]int
}

// Acquire returns a widget in the active state: preferred if it is currently
// free, otherwise any free instance, otherwise a new one from template.
// template must not be nil; the zero value of W is a valid preferred and
// means no preference.
func (p *Pool[W]) Acquire(template func() W, preferred W) W {
	if p.used == nil {
		p.used = make(map[any]W)
		p.freeIdx = make(map[any]int)
	}

	var w W
	if i, ok := p.freeIdx[preferred]; ok {
		w = preferred
		p.removeFree(i)
	} else if n := len(p.free); n > 0 {
		w = p.free[n-1]
		p.removeFree(n - 1)
	} else {
		if template == nil {
			panic("arbor: Acquire called with a nil widget template")
		}
		w = template()
	}

	p.used[w] = w
	w.SetActive(true)
	return w
}

// Release deactivates a widget and moves it from the used set to the free
// list. Releasing a widget the pool does not hold in the used set returns
// ErrDoubleRelease and changes nothing.
func (p *Pool[W]) Release(w W) error {
	if _, ok := p.used[w]; !ok {
		return ErrDoubleRelease
	}
	delete(p.used, w)
	p.pushFree(w)
	w.SetActive(false)
	return nil
}

// ReleaseAll deactivates every used widget and moves it to the free list.
// The renderer calls this at the start of each pass so that rows which
// stayed visible can reacquire their previous instance.
func (p *Pool[W]) ReleaseAll() {
	for _, w := range p.used {
		p.pushFree(w)
		w.SetActive(false)
	}
	clear(p.used)
}

// Size returns the total number of instances the pool has ever created,
// used and free combined.
func (p *Pool[W]) Size() int {
	return len(p.used) + len(p.free)
}

// UsedCount returns the number of widgets currently acquired.
func (p *Pool[W]) UsedCount() int {
	return len(p.used)
}

// FreeCount returns the number of widgets currently available for reuse.
func (p *Pool[W]) FreeCount() int {
	return len(p.free)
}

func (p *Pool[W]) pushFree(w W) {
	p.freeIdx[w] = len(p.free)
	p.free = append(p.free, w)
}

// removeFree unlinks free[i] by swapping the tail into its slot.
func (p *Pool[W]) removeFree(i int) {
	w := p.free[i]
	last := len(p.free) - 1
	if i != last {
		moved := p.free[last]
		p.free[i] = moved
		p.freeIdx[moved] = i
	}
	var zero W
	p.free[last] = zero
	p.free = p.free[:last]
	delete(p.freeIdx, w)
}
