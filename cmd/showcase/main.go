package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"weft"
)

type item struct {
	ID   string
	Name string
	Done bool
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "showcase: stdout is not a terminal")
		os.Exit(1)
	}

	theme := weft.ThemeDark()
	if path := os.Getenv("WEFT_THEME"); path != "" {
		t, err := weft.LoadTheme(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "showcase:", err)
			os.Exit(1)
		}
		theme = t
	}

	items := weft.NewState([]item{
		{ID: "a", Name: "Write the readme", Done: true},
		{ID: "b", Name: "Wire the resize handler"},
		{ID: "c", Name: "Profile the flush path"},
	})
	selected := weft.NewState(0)
	showHelp := weft.NewState(false)

	root := rootView{theme: theme, items: items, selected: selected, showHelp: showHelp}

	app, err := weft.NewApp(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "showcase:", err)
		os.Exit(1)
	}
	app.Track(items, selected, showHelp)

	app.OnKey(func(e weft.KeyEvent) bool {
		switch {
		case e.Kind == weft.KeyUp:
			selected.Update(func(n int) int { return max(0, n-1) })
		case e.Kind == weft.KeyDown:
			selected.Update(func(n int) int { return min(len(items.Get())-1, n+1) })
		case e.Kind == weft.KeyEnter:
			i := selected.Get()
			items.Update(func(list []item) []item {
				list[i].Done = !list[i].Done
				return list
			})
		case e.Kind == weft.KeyRune && e.Rune == '?':
			showHelp.Update(func(b bool) bool { return !b })
		case e.Kind == weft.KeyRune && e.Rune == 'q':
			app.Stop()
		default:
			return false
		}
		return true
	})

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "showcase:", err)
		os.Exit(1)
	}
}

type rootView struct {
	theme    weft.Theme
	items    *weft.State[[]item]
	selected *weft.State[int]
	showHelp *weft.State[bool]
}

func (r rootView) Body() weft.View {
	items := r.items.Get()
	sel := r.selected.Get()

	return weft.VStack(
		weft.Text("weft showcase").Styled(r.theme.Accent),
		weft.Pad(
			weft.BorderedWith(
				weft.Pad(
					weft.VStack(
						weft.ForEachID(items, func(it item) string { return it.ID }, func(it item) weft.View {
							return rowView{it: it, selected: items[sel].ID == it.ID, theme: r.theme}
						}),
					),
					1,
				),
				weft.BorderRounded,
				r.theme.Border,
			),
			1,
		),
		weft.Spacer(),
		weft.If(r.showHelp.Get(),
			weft.Text("up/down move  enter toggle  ? help  q quit").Styled(r.theme.Muted),
		).Else(
			weft.Text("? for help").Styled(r.theme.Muted),
		),
	)
}

type rowView struct {
	it       item
	selected bool
	theme    weft.Theme
}

func (r rowView) Body() weft.View {
	mark := "[ ]"
	style := r.theme.Base
	if r.it.Done {
		mark = "[x]"
		style = r.theme.Muted
	}
	if r.selected {
		style = style.Inverse()
	}
	return weft.HStack(
		weft.Text(mark+" ").Styled(style),
		weft.Text(r.it.Name).Styled(style),
	)
}
