package server

import (
	"sync"

	"github.com/presencedash/views"
)

// page is one loaded statistics page: its view controller and avatar view
// live as long as the page does.
type page struct {
	id     string
	view   *views.Controller
	avatar *views.AvatarController
}

// pageRegistry keeps at most max pages and drops the oldest first.
type pageRegistry struct {
	mu    sync.Mutex
	max   int
	pages map[string]*page
	order []string
}

func newPageRegistry(max int) *pageRegistry {
	if max <= 0 {
		max = 1
	}
	return &pageRegistry{max: max, pages: make(map[string]*page)}
}

func (r *pageRegistry) add(p *page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[p.id]; !ok {
		r.order = append(r.order, p.id)
	}
	r.pages[p.id] = p
	for len(r.order) > r.max {
		delete(r.pages, r.order[0])
		// Shift in place so the backing array stays at max+1 entries.
		copy(r.order, r.order[1:])
		r.order = r.order[:len(r.order)-1]
	}
}

func (r *pageRegistry) get(id string) (*page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	return p, ok
}

func (r *pageRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}
