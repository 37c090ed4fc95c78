package weft

// Focusable is implemented by anything that wants keyboard input when
// focused. HandleKey returns true when the event was consumed.
type Focusable interface {
	HandleKey(e KeyEvent) bool
	SetFocused(focused bool)
}

// FocusManager routes key events to a ring of focusable targets. Tab
// advances focus, Shift+Tab goes back, everything else is offered to
// the current target. Registration order defines the ring.
type FocusManager struct {
	targets []Focusable
	current int
	active  bool
}

// NewFocusManager creates an empty focus ring.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// Register appends f to the ring. The first registered target receives
// focus immediately.
func (m *FocusManager) Register(f Focusable) {
	m.targets = append(m.targets, f)
	if m.current < 0 {
		m.current = 0
		f.SetFocused(true)
	}
}

// Unregister removes f from the ring, moving focus to the next target
// if f held it.
func (m *FocusManager) Unregister(f Focusable) {
	for i, t := range m.targets {
		if t != f {
			continue
		}
		m.targets = append(m.targets[:i], m.targets[i+1:]...)
		if len(m.targets) == 0 {
			m.current = -1
			f.SetFocused(false)
			return
		}
		switch {
		case i < m.current:
			m.current--
		case i == m.current:
			f.SetFocused(false)
			if m.current >= len(m.targets) {
				m.current = 0
			}
			m.targets[m.current].SetFocused(true)
		}
		return
	}
}

// Current returns the focused target, or nil when the ring is empty.
func (m *FocusManager) Current() Focusable {
	if m.current < 0 || m.current >= len(m.targets) {
		return nil
	}
	return m.targets[m.current]
}

// Next moves focus forward around the ring.
func (m *FocusManager) Next() {
	m.step(1)
}

// Prev moves focus backward around the ring.
func (m *FocusManager) Prev() {
	m.step(-1)
}

func (m *FocusManager) step(delta int) {
	if len(m.targets) == 0 {
		return
	}
	m.targets[m.current].SetFocused(false)
	m.current = (m.current + delta + len(m.targets)) % len(m.targets)
	m.targets[m.current].SetFocused(true)
}

// HandleKey routes one event: Tab and Shift+Tab move focus, anything
// else goes to the current target. Returns true when consumed.
func (m *FocusManager) HandleKey(e KeyEvent) bool {
	if e.Kind == KeyTab && e.Mod == 0 {
		m.Next()
		return len(m.targets) > 0
	}
	if e.Kind == KeyTab && e.Mod == ModShift {
		m.Prev()
		return len(m.targets) > 0
	}
	if cur := m.Current(); cur != nil {
		return cur.HandleKey(e)
	}
	return false
}
