package weft

import (
	"io"
	"os"
	"sync"
)

// App ties the pieces together: it owns the screen, the reconciliation
// tree for a root view, the key decoder, and the run loop that turns
// state changes into frames.
//
// The loop is single-threaded. Input decoding runs on its own
// goroutine, but everything it produces funnels through one channel
// into the loop, and reconcile, layout and paint all happen there.
// Invalidations coalesce: however many state cells change between two
// wakeups, at most one frame is rendered for them, and it reflects all
// of the writes.
type App struct {
	screen   *Screen
	root     View
	rootNode *Node

	keys   *KeyReader
	events chan KeyEvent
	dirty  chan struct{}
	quit   chan struct{}

	focus    *FocusManager
	handlers []func(KeyEvent) bool
	unsubs   []func()

	stopOnce sync.Once
}

// NewApp creates an app rendering root to the terminal on stdout and
// reading keys from stdin.
func NewApp(root View) (*App, error) {
	screen, err := NewScreen(nil)
	if err != nil {
		return nil, err
	}
	return newApp(screen, NewKeyReader(os.Stdin), root), nil
}

// newTestApp builds an app against an in-memory screen, for tests.
func newTestApp(root View, w io.Writer, width, height int) *App {
	return newApp(newMemoryScreen(w, width, height), nil, root)
}

func newApp(screen *Screen, keys *KeyReader, root View) *App {
	return &App{
		screen: screen,
		root:   root,
		keys:   keys,
		events: make(chan KeyEvent, 16),
		dirty:  make(chan struct{}, 1),
		quit:   make(chan struct{}),
		focus:  NewFocusManager(),
	}
}

// Focus returns the app's focus manager.
func (a *App) Focus() *FocusManager {
	return a.focus
}

// Track subscribes the app to state cells: any write re-renders on the
// next loop wakeup. Returns the app for chaining.
func (a *App) Track(cells ...StateCell) *App {
	for _, c := range cells {
		a.unsubs = append(a.unsubs, c.Subscribe(a.Invalidate))
	}
	return a
}

// OnKey registers a key handler consulted before the focus ring. A
// handler returning true consumes the event.
func (a *App) OnKey(fn func(KeyEvent) bool) *App {
	a.handlers = append(a.handlers, fn)
	return a
}

// Invalidate schedules a re-render. Safe to call repeatedly; pending
// invalidations collapse into one frame.
func (a *App) Invalidate() {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
}

// Stop ends the run loop. Safe to call more than once and from key
// handlers.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.quit)
	})
}

// Run enters raw mode and drives the loop until Stop is called or an
// error surfaces (a key-read failure, or a view body that never
// resolves). The terminal is restored on the way out.
func (a *App) Run() error {
	if err := a.screen.EnterRawMode(); err != nil {
		return err
	}
	defer a.screen.ExitRawMode()
	defer a.unsubscribe()

	if a.keys != nil {
		go a.readInput()
	}

	if err := a.RenderFrame(); err != nil {
		return err
	}

	for {
		select {
		case <-a.quit:
			return nil

		case e := <-a.events:
			a.dispatchKey(e)
			a.drainEvents()
			select {
			case <-a.quit:
				return nil
			default:
			}
			a.drainDirty()
			if err := a.RenderFrame(); err != nil {
				return err
			}

		case <-a.dirty:
			a.drainDirty()
			if err := a.RenderFrame(); err != nil {
				return err
			}

		case sz := <-a.screen.ResizeChan():
			a.screen.resize(sz.Width, sz.Height)
			logger().Debug("relayout after resize", "width", sz.Width, "height", sz.Height)
			if err := a.RenderFrame(); err != nil {
				return err
			}
		}
	}
}

// RenderFrame runs one full pipeline pass: reconcile the root view into
// the control tree, lay it out against the viewport, paint into the
// back buffer and flush the diff.
func (a *App) RenderFrame() error {
	node, err := Reconcile(a.rootNode, a.root)
	if err != nil {
		return err
	}
	a.rootNode = node

	sz := a.screen.Size()
	root := node.Control()
	root.Propose(SizeOf(sz.Width, sz.Height))
	root.SetPosition(Position{})

	a.screen.Clear()
	paintTree(a.screen.Buffer(), root, 0, 0)
	a.screen.Flush()
	return nil
}

// readInput pumps decoded keys into the loop until the reader fails,
// which on a closed tty means the app is going down anyway.
func (a *App) readInput() {
	for {
		e, err := a.keys.ReadKey()
		if err != nil {
			logger().Debug("input reader stopped", "err", err)
			return
		}
		select {
		case a.events <- e:
		case <-a.quit:
			return
		}
	}
}

// dispatchKey offers an event to the registered handlers, then the
// focus ring, then the built-in bindings. Ctrl+C always quits unless a
// handler consumed it first.
func (a *App) dispatchKey(e KeyEvent) {
	for _, fn := range a.handlers {
		if fn(e) {
			return
		}
	}
	if a.focus.HandleKey(e) {
		return
	}
	if e.Kind == KeyRune && e.Rune == 'c' && e.Mod == ModCtrl {
		a.Stop()
	}
}

// drainEvents dispatches any keys already queued, so a burst of input
// produces one frame, not one per key.
func (a *App) drainEvents() {
	for {
		select {
		case e := <-a.events:
			a.dispatchKey(e)
		default:
			return
		}
	}
}

// drainDirty clears a pending invalidation that the frame about to
// render will satisfy anyway.
func (a *App) drainDirty() {
	select {
	case <-a.dirty:
	default:
	}
}

func (a *App) unsubscribe() {
	for _, fn := range a.unsubs {
		fn()
	}
	a.unsubs = nil
}
