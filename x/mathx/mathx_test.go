package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("inside: %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("below: %d", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Fatalf("above: %d", got)
	}
	if got := Clamp(5.0, 10.0, 0.0); got != 5.0 {
		t.Fatalf("swapped bounds: %v", got)
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Fatal("min/max")
	}
	if AbsF(-1.5) != 1.5 || AbsF(1.5) != 1.5 {
		t.Fatal("absf")
	}
}
