package factors

import (
	"math"
	"testing"
)

func TestLogReturnsLengthAndTelescoping(t *testing.T) {
	prices := []float64{100, 101, 99.5, 102, 104, 103.2}
	rets := LogReturns(prices)
	if len(rets) != len(prices)-1 {
		t.Fatalf("expected %d returns, got %d", len(prices)-1, len(rets))
	}
	sum := 0.0
	for _, r := range rets {
		sum += r
	}
	want := math.Log(prices[len(prices)-1] / prices[0])
	if math.Abs(sum-want) > 1e-12 {
		t.Fatalf("telescoping sum %v != %v", sum, want)
	}
}

func TestLogReturnsDropsNonPositive(t *testing.T) {
	rets := LogReturns([]float64{5, -1, 10, 20})
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if math.Abs(rets[0]-math.Log(2)) > 1e-12 {
		t.Errorf("first return %v, want ln(2)", rets[0])
	}
	if math.Abs(rets[1]-math.Log(2)) > 1e-12 {
		t.Errorf("second return %v, want ln(2)", rets[1])
	}
}

func TestLogReturnsDropsZero(t *testing.T) {
	rets := LogReturns([]float64{0, 0, 100, 110})
	if len(rets) != 1 {
		t.Fatalf("expected 1 return, got %d", len(rets))
	}
}

func TestLogReturnsInsufficient(t *testing.T) {
	if rets := LogReturns([]float64{100}); len(rets) != 0 {
		t.Fatalf("expected empty returns for single price, got %v", rets)
	}
	if rets := LogReturns([]float64{-3, 0, 42}); len(rets) != 0 {
		t.Fatalf("expected empty returns when one valid price remains, got %v", rets)
	}
	if rets := LogReturns(nil); len(rets) != 0 {
		t.Fatalf("expected empty returns for nil input, got %v", rets)
	}
}

func TestTail(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	got := Tail(xs, 3)
	if len(got) != 3 || got[0] != 3 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail(xs, 10); len(got) != 5 {
		t.Fatalf("tail larger than input should return all, got %v", got)
	}
	if got := Tail(xs, 0); got != nil {
		t.Fatalf("tail 0 should be nil, got %v", got)
	}
}
