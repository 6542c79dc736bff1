package views

import (
	"html/template"
	"sync"
)

// Surface is the target a view draws into: the chart area together with
// its loading indicator and inline message.
type Surface struct {
	mu      sync.RWMutex
	loading bool
	visible bool
	message string
	content template.HTML
	rows    [][]string
}

// Snapshot is a copy of a Surface at one moment.
type Snapshot struct {
	Loading bool
	Visible bool
	Message string
	Content template.HTML
	// Rows are the display strings of the last rendered table.
	Rows [][]string
}

func NewSurface() *Surface {
	return &Surface{}
}

// Snapshot returns a copy of what the surface currently shows.
func (s *Surface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([][]string, len(s.rows))
	copy(rows, s.rows)
	return Snapshot{
		Loading: s.loading,
		Visible: s.visible,
		Message: s.message,
		Content: s.content,
		Rows:    rows,
	}
}

// replace swaps out everything drawn before.
func (s *Surface) replace(content template.HTML, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
	s.rows = rows
}

func (s *Surface) showLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.visible = false
	s.message = ""
}

func (s *Surface) showChart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.visible = true
	s.message = ""
}

// hide clears the loading indicator and hides the chart, leaving msg as an
// inline notice (empty for none).
func (s *Surface) hide(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.visible = false
	s.message = msg
}
