package diag

import "testing"

type aRanger struct {
	Ranging
}

func TestEmbeddingRangingImplementsRanger(t *testing.T) {
	r := Ranging{1, 10}
	s := Ranger(aRanger{Ranging{1, 10}})
	if s.Range() != r {
		t.Errorf("s.Range() = %v, want %v", s.Range(), r)
	}
}

func TestMixedRanging(t *testing.T) {
	got := MixedRanging(Ranging{2, 4}, Ranging{8, 12})
	if want := (Ranging{2, 12}); got != want {
		t.Errorf("MixedRanging -> %v, want %v", got, want)
	}
}

func TestKnown(t *testing.T) {
	if NoRanging.Known() {
		t.Errorf("NoRanging.Known() -> true")
	}
	if !PointRanging(0).Known() {
		t.Errorf("PointRanging(0).Known() -> false")
	}
}
