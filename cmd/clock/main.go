package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"weft"
)

// A minimal animated program: the view reads the wall clock, and a
// ticker goroutine just invalidates once a second. All rendering stays
// on the run loop.
func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "clock: stdout is not a terminal")
		os.Exit(1)
	}

	app, err := weft.NewApp(clockView{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "clock:", err)
		os.Exit(1)
	}
	app.OnKey(func(e weft.KeyEvent) bool {
		if e.Kind == weft.KeyRune && e.Rune == 'q' {
			app.Stop()
			return true
		}
		return false
	})

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				app.Invalidate()
			case <-done:
				return
			}
		}
	}()

	err = app.Run()
	close(done)
	if err != nil {
		fmt.Fprintln(os.Stderr, "clock:", err)
		os.Exit(1)
	}
}

type clockView struct{}

func (clockView) Body() weft.View {
	now := time.Now()
	return weft.VStack(
		weft.Spacer(),
		weft.HStack(
			weft.Spacer(),
			weft.Bordered(
				weft.Pad(
					weft.VStack(
						weft.Text(now.Format("15:04:05")).Styled(weft.DefaultStyle().Bold()),
						weft.Text(now.Format("Mon Jan 2 2006")).Styled(weft.DefaultStyle().Dim()),
					),
					1,
				),
			),
			weft.Spacer(),
		),
		weft.Spacer(),
	)
}
