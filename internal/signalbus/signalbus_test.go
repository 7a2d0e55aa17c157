package signalbus

import "testing"

func TestSetSignalCountAndBounds(t *testing.T) {
	var b SignalBus
	b.SetSignalCount(3)
	if b.SignalCount() != 3 {
		t.Fatalf("SignalCount() = %d, want 3", b.SignalCount())
	}
	for i := 0; i < 3; i++ {
		if b.HasValue(i) {
			t.Fatalf("index %d should start empty", i)
		}
	}
}

func TestClearAllValuesResetsHasValueFlags(t *testing.T) {
	var b SignalBus
	b.SetSignalCount(2)
	b.SetValue(0, 10)
	b.SetValue(1, 20)

	b.ClearAllValues()

	if b.HasValue(0) || b.HasValue(1) {
		t.Fatal("ClearAllValues should reset has-value on every cell")
	}
	if b.Value(0) != nil || b.Value(1) != nil {
		t.Fatal("ClearAllValues should leave no stale payload readable")
	}
}

func TestMoveValueFromSwapsIndividualCell(t *testing.T) {
	var src, dst SignalBus
	src.SetSignalCount(1)
	dst.SetSignalCount(1)
	src.SetValue(0, 99)

	dst.MoveValueFrom(0, src.Cell(0))

	if src.HasValue(0) {
		t.Fatal("source cell should be empty after move")
	}
	if v, ok := TypedValue[int](&dst, 0); !ok || v != 99 {
		t.Fatalf("dst value = (%v, %v), want (99, true)", v, ok)
	}
}

func TestTypedValueRejectsWrongType(t *testing.T) {
	var b SignalBus
	b.SetSignalCount(1)
	b.SetValue(0, "a string")

	if _, ok := TypedValue[int](&b, 0); ok {
		t.Fatal("TypedValue[int] should fail against a string payload")
	}
	if v, ok := TypedValue[string](&b, 0); !ok || v != "a string" {
		t.Fatalf("TypedValue[string] = (%v, %v), want (\"a string\", true)", v, ok)
	}
}
