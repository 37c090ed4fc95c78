package weft

import "testing"

// buildControl materializes a view for layout tests.
func buildControl(t *testing.T, v View) Control {
	t.Helper()
	n, err := Reconcile(nil, v)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return n.Control()
}

func TestTextPropose(t *testing.T) {
	c := buildControl(t, Text("hello"))
	if got := c.Propose(SizeOf(80, 24)); got != SizeOf(5, 1) {
		t.Errorf("got %v", got)
	}

	t.Run("clips to offer", func(t *testing.T) {
		if got := c.Propose(SizeOf(3, 24)); got != SizeOf(3, 1) {
			t.Errorf("got %v", got)
		}
	})
	t.Run("multi line", func(t *testing.T) {
		c := buildControl(t, Text("ab\ncdef"))
		if got := c.Propose(SizeOf(80, 24)); got != SizeOf(4, 2) {
			t.Errorf("got %v", got)
		}
	})
	t.Run("wrapped", func(t *testing.T) {
		c := buildControl(t, Text("the quick brown fox").Wrapped())
		if got := c.Propose(SizeOf(10, 24)); got != SizeOf(9, 2) {
			t.Errorf("got %v", got)
		}
	})
}

func TestVStackLayout(t *testing.T) {
	c := buildControl(t, VStack(Text("one"), Text("three")))
	size := c.Propose(SizeOf(80, 24))
	if size != SizeOf(5, 2) {
		t.Errorf("size %v", size)
	}
	kids := c.Children()
	if kids[0].Position().Y != 0 || kids[1].Position().Y != 1 {
		t.Errorf("positions %v %v", kids[0].Position(), kids[1].Position())
	}
}

func TestHStackLayout(t *testing.T) {
	c := buildControl(t, HStack(Text("ab"), Text("cde")))
	size := c.Propose(SizeOf(80, 24))
	if size != SizeOf(5, 1) {
		t.Errorf("size %v", size)
	}
	kids := c.Children()
	if kids[0].Position().X != 0 || kids[1].Position().X != 2 {
		t.Errorf("positions %v %v", kids[0].Position(), kids[1].Position())
	}
}

func TestStackSpacerFillsExactly(t *testing.T) {
	c := buildControl(t, VStack(Text("top"), Spacer(), Text("bottom")))
	size := c.Propose(SizeOf(80, 24))
	if size.Height != Ext(24) {
		t.Errorf("stack should fill the offer, got %v", size)
	}
	kids := c.Children()
	if got := kids[1].Size().Height; got != Ext(22) {
		t.Errorf("spacer height %v", got)
	}
	if got := kids[2].Position().Y; got != 23 {
		t.Errorf("bottom text at y=%d", got)
	}
}

func TestStackSpacerRemainder(t *testing.T) {
	// 23 leftover rows across two spacers: 12 and 11, never 22 or 24.
	c := buildControl(t, VStack(Text("x"), Spacer(), Spacer()))
	c.Propose(SizeOf(80, 24))
	kids := c.Children()
	h1 := kids[1].Size().Height.Int()
	h2 := kids[2].Size().Height.Int()
	if h1 != 12 || h2 != 11 {
		t.Errorf("spacer heights %d, %d", h1, h2)
	}
	if 1+h1+h2 != 24 {
		t.Errorf("children should fill exactly: %d", 1+h1+h2)
	}
}

func TestStackSpacerFloor(t *testing.T) {
	c := buildControl(t, VStack(Text("x"), Spacer().Min(5)))
	c.Propose(SizeOf(80, 10))
	if got := c.Children()[1].Size().Height; got != Ext(9) {
		t.Errorf("spacer height %v", got)
	}
	if got := c.Size().Height; got != Ext(10) {
		t.Errorf("stack height %v", got)
	}
}

func TestStackUnboundedAxisCollapsesSpacers(t *testing.T) {
	c := buildControl(t, VStack(Text("x"), Spacer().Min(2)))
	size := c.Propose(Size{Width: Ext(10), Height: Inf})
	if size.Height != Ext(3) {
		t.Errorf("unbounded offer should collapse to content+floor, got %v", size)
	}
}

func TestSpacerUnboundedAxes(t *testing.T) {
	// the floor applies along a stack's axis; on its own, a spacer
	// collapses unbounded axes to nothing
	c := buildControl(t, Spacer().Min(3))
	if got := c.Propose(Size{Width: Ext(10), Height: Inf}); got != SizeOf(10, 0) {
		t.Errorf("got %v", got)
	}
	if got := c.Propose(Size{Width: Inf, Height: Inf}); got != SizeOf(0, 0) {
		t.Errorf("got %v", got)
	}
}

func TestStackCrossAlignment(t *testing.T) {
	c := buildControl(t, HStack(Text("a"), Text("x\ny")).Align(BottomLeading))
	c.Propose(SizeOf(80, 24))
	kids := c.Children()
	if got := kids[0].Position().Y; got != 1 {
		t.Errorf("short child should sit at the bottom, y=%d", got)
	}
	if got := kids[1].Position().Y; got != 0 {
		t.Errorf("tall child y=%d", got)
	}
}

func TestStackOverflowWithoutSpacers(t *testing.T) {
	c := buildControl(t, VStack(Text("a"), Text("b"), Text("c")))
	size := c.Propose(SizeOf(80, 2))
	// content size wins; painting clips, layout does not fail
	if size.Height != Ext(3) {
		t.Errorf("got %v", size)
	}
}

func TestPaddingLayout(t *testing.T) {
	c := buildControl(t, Pad(Text("Hi"), 1))
	size := c.Propose(SizeOf(80, 24))
	if size != SizeOf(4, 3) {
		t.Errorf("size %v", size)
	}
	if got := c.Children()[0].Position(); got != (Position{X: 1, Y: 1}) {
		t.Errorf("child at %v", got)
	}

	t.Run("single edge", func(t *testing.T) {
		c := buildControl(t, PadEdges(Text("Hi"), EdgeLeft, 3))
		if got := c.Propose(SizeOf(80, 24)); got != SizeOf(5, 1) {
			t.Errorf("size %v", got)
		}
		if got := c.Children()[0].Position(); got != (Position{X: 3}) {
			t.Errorf("child at %v", got)
		}
	})
	t.Run("tiny offer clamps inner to zero", func(t *testing.T) {
		c := buildControl(t, Pad(Text("Hi"), 2))
		size := c.Propose(SizeOf(3, 3))
		if size.Width.Int() < 0 || size.Height.Int() < 0 {
			t.Errorf("negative size %v", size)
		}
	})
}

func TestFrameLayout(t *testing.T) {
	t.Run("fixed size centers child", func(t *testing.T) {
		c := buildControl(t, Frame(Text("Hi")).Width(10).Height(3))
		if got := c.Propose(SizeOf(80, 24)); got != SizeOf(10, 3) {
			t.Errorf("size %v", got)
		}
		if got := c.Children()[0].Position(); got != (Position{X: 4, Y: 1}) {
			t.Errorf("child at %v", got)
		}
	})
	t.Run("max clamps down", func(t *testing.T) {
		c := buildControl(t, Frame(Text("hello world")).MaxWidth(5))
		if got := c.Propose(SizeOf(80, 24)).Width; got != Ext(5) {
			t.Errorf("width %v", got)
		}
	})
	t.Run("min grows past child", func(t *testing.T) {
		c := buildControl(t, Frame(Text("Hi")).MinWidth(20))
		if got := c.Propose(SizeOf(80, 24)).Width; got != Ext(20) {
			t.Errorf("width %v", got)
		}
	})
	t.Run("alignment", func(t *testing.T) {
		c := buildControl(t, Frame(Text("Hi")).Width(10).Height(3).Align(BottomTrailing))
		c.Propose(SizeOf(80, 24))
		if got := c.Children()[0].Position(); got != (Position{X: 8, Y: 2}) {
			t.Errorf("child at %v", got)
		}
	})
}

func TestBorderLayout(t *testing.T) {
	c := buildControl(t, Bordered(Text("Hi")))
	if got := c.Propose(SizeOf(80, 24)); got != SizeOf(4, 3) {
		t.Errorf("size %v", got)
	}
	if got := c.Children()[0].Position(); got != (Position{X: 1, Y: 1}) {
		t.Errorf("child at %v", got)
	}
}

func TestPaintTree(t *testing.T) {
	t.Run("stack", func(t *testing.T) {
		c := buildControl(t, VStack(Text("ab"), Text("cd")))
		c.Propose(SizeOf(10, 5))
		c.SetPosition(Position{})
		buf := NewBuffer(10, 5)
		paintTree(buf, c, 0, 0)
		if got := buf.StringTrimmed(); got != "ab\ncd" {
			t.Errorf("got:\n%s", got)
		}
	})
	t.Run("border", func(t *testing.T) {
		c := buildControl(t, Bordered(Text("Hi")))
		c.Propose(SizeOf(10, 5))
		buf := NewBuffer(10, 5)
		paintTree(buf, c, 0, 0)
		want := "┌──┐\n│Hi│\n└──┘"
		if got := buf.StringTrimmed(); got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	})
	t.Run("background under child", func(t *testing.T) {
		c := buildControl(t, Background(Text("x"), Red))
		c.Propose(SizeOf(10, 5))
		buf := NewBuffer(10, 5)
		paintTree(buf, c, 0, 0)
		if got := buf.Get(0, 0); got.Rune != 'x' {
			t.Errorf("child should paint over the fill: %+v", got)
		}
	})
	t.Run("clips outside buffer", func(t *testing.T) {
		c := buildControl(t, Text("hello"))
		c.Propose(SizeOf(80, 24))
		buf := NewBuffer(3, 1)
		paintTree(buf, c, 0, 0)
		if got := buf.StringTrimmed(); got != "hel" {
			t.Errorf("got %q", got)
		}
	})
}
