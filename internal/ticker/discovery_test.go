package ticker

import (
	"context"
	"errors"
	"testing"
)

type stubListSource struct {
	trending []string
	gainers  []string
	losers   []string
	err      error
}

func (s *stubListSource) Trending(context.Context, int) ([]string, error) {
	return s.trending, s.err
}
func (s *stubListSource) Gainers(context.Context, int) ([]string, error) {
	return s.gainers, s.err
}
func (s *stubListSource) Losers(context.Context, int) ([]string, error) {
	return s.losers, s.err
}

func TestDiscover_ByStrategy(t *testing.T) {
	src := &stubListSource{
		trending: []string{"AAPL", "MSFT"},
		gainers:  []string{"NVDA"},
		losers:   []string{"INTC"},
	}
	d := NewDiscoverer(src, 10)

	tests := []struct {
		strategy Strategy
		want     []string
	}{
		{StrategyMostActive, []string{"AAPL", "MSFT"}},
		{StrategyGainers, []string{"NVDA"}},
		{StrategyLosers, []string{"INTC"}},
	}
	for _, tt := range tests {
		got := d.Discover(context.Background(), tt.strategy)
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.strategy, tt.want, got)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.strategy, tt.want, got)
			}
		}
	}
}

func TestDiscover_MixedDeduplicates(t *testing.T) {
	src := &stubListSource{
		trending: []string{"AAPL", "NVDA"},
		gainers:  []string{"NVDA", "AMD"},
	}
	d := NewDiscoverer(src, 10)

	got := d.Discover(context.Background(), StrategyMixed)
	want := []string{"AAPL", "NVDA", "AMD"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestDiscover_FallsBackToStatic(t *testing.T) {
	d := NewDiscoverer(&stubListSource{err: errors.New("upstream down")}, 5)

	got := d.Discover(context.Background(), StrategyMostActive)
	if len(got) != 5 {
		t.Fatalf("expected 5 static fallback symbols, got %d", len(got))
	}
	if got[0] != Popular[0] {
		t.Errorf("fallback must come from the curated list, got %v", got)
	}
}

func TestDiscover_StaticStrategy(t *testing.T) {
	d := NewDiscoverer(&stubListSource{trending: []string{"ZZZ"}}, 3)
	got := d.Discover(context.Background(), StrategyStatic)
	if len(got) != 3 || got[0] != Popular[0] {
		t.Errorf("static strategy must ignore the source, got %v", got)
	}
}

func TestDiscover_LimitApplied(t *testing.T) {
	src := &stubListSource{trending: []string{"A", "B", "C", "D", "E"}}
	d := NewDiscoverer(src, 2)
	if got := d.Discover(context.Background(), StrategyMostActive); len(got) != 2 {
		t.Errorf("expected 2 symbols, got %v", got)
	}
}
