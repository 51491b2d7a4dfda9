package readyset

import "testing"

func TestSetMarkAndTest(t *testing.T) {
	var s Set
	if !s.Empty() {
		t.Fatalf("zero value Set is not empty")
	}
	s.Mark(3)
	if !s.Test(3) {
		t.Errorf("Test(3) = false after Mark(3)")
	}
	if s.Test(4) {
		t.Errorf("Test(4) = true; nothing marked there")
	}
	if s.Empty() {
		t.Errorf("Empty() = true after a Mark")
	}
}

func TestSetClear(t *testing.T) {
	var s Set
	s.Mark(1)
	s.Mark(2)
	s.Clear(1)
	if s.Test(1) {
		t.Errorf("Test(1) = true after Clear(1)")
	}
	if !s.Test(2) {
		t.Errorf("Test(2) = false; Clear(1) should not affect bit 2")
	}
}

func TestSetFirstReturnsLowestSetBit(t *testing.T) {
	var s Set
	s.Mark(5)
	s.Mark(2)
	s.Mark(7)
	idx, ok := s.First()
	if !ok {
		t.Fatalf("First() reported empty on a non-empty set")
	}
	if idx != 2 {
		t.Errorf("First() = %d; want 2 (lowest set bit)", idx)
	}
}

func TestSetFirstOnEmptySet(t *testing.T) {
	var s Set
	idx, ok := s.First()
	if ok {
		t.Errorf("First() reported ok=true on an empty set")
	}
	if idx != 0 {
		t.Errorf("First() idx = %d on empty set; want 0", idx)
	}
}

func TestSetMarkIsIdempotent(t *testing.T) {
	var s Set
	s.Mark(9)
	s.Mark(9)
	if !s.Test(9) {
		t.Errorf("Test(9) = false after double Mark(9)")
	}
	idx, _ := s.First()
	if idx != 9 {
		t.Errorf("First() = %d; want 9", idx)
	}
}
