package cell

import "testing"

func TestEmptyCellHasNoValue(t *testing.T) {
	var c Cell
	if c.HasValue() {
		t.Fatal("zero-value Cell should be empty")
	}
	if c.Value() != nil {
		t.Fatalf("Value() = %v, want nil", c.Value())
	}
}

func TestSetValueThenClearResetsHasValueFlag(t *testing.T) {
	var c Cell
	c.SetValue(42)
	if !c.HasValue() {
		t.Fatal("expected HasValue after SetValue")
	}

	c.Clear()
	if c.HasValue() {
		t.Fatal("expected Clear to reset the has-value flag, not just leave a stale payload readable")
	}
	if c.Value() != nil {
		t.Fatalf("Value() after Clear = %v, want nil", c.Value())
	}
}

func TestSwapExchangesValuesAndHasFlags(t *testing.T) {
	var a, b Cell
	a.SetValue(1)
	// b stays empty.

	a.Swap(&b)

	if a.HasValue() {
		t.Fatal("a should be empty after swapping with an empty cell")
	}
	if !b.HasValue() || b.Value() != 1 {
		t.Fatalf("b = (%v, %v), want (1, true)", b.Value(), b.HasValue())
	}
}

func TestMoveValueFromIsASwap(t *testing.T) {
	var src, dst Cell
	src.SetValue("hello")

	dst.MoveValueFrom(&src)

	if src.HasValue() {
		t.Fatal("src should be empty after MoveValueFrom")
	}
	if !dst.HasValue() || dst.Value() != "hello" {
		t.Fatalf("dst = (%v, %v), want (\"hello\", true)", dst.Value(), dst.HasValue())
	}
}

func TestSetValueSameTypeReusesTypeTag(t *testing.T) {
	var c Cell
	c.SetValue(1)
	typ1 := c.Type()

	c.Clear()
	c.SetValue(2)
	typ2 := c.Type()

	if typ1 != typ2 {
		t.Fatalf("type tag changed across same-type SetValue calls: %v vs %v", typ1, typ2)
	}
}
