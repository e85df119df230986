package entropy

import "testing"

func TestSource_Deterministic(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("seeded sources diverged at draw %d", i)
		}
	}
}

func TestSource_Range(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
		n := s.Intn(10)
		if n < 0 || n >= 10 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
}

func TestNilSource_Fallback(t *testing.T) {
	var s *Source
	for i := 0; i < 100; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("fallback Float64 out of range: %v", v)
		}
	}
}
