package extract

import (
	"context"
	"errors"
	"testing"

	"farewise/models"
)

func TestRuleCounter(t *testing.T) {
	counter := RuleCounter{}

	tests := []struct {
		name     string
		text     string
		want     models.PassengerCount
		resolved bool
	}{
		{"digits", "2 adults and 1 child", models.PassengerCount{Adults: 2, Children: 1}, true},
		{"number words", "two adults and one infant", models.PassengerCount{Adults: 2, Infants: 1}, true},
		{"generic passengers", "tickets for 3 passengers", models.PassengerCount{Adults: 3}, true},
		{"generic people", "flights for four people", models.PassengerCount{Adults: 4}, true},
		{"companion noun", "i am travelling with my wife", models.PassengerCount{Adults: 2}, true},
		{"child noun", "taking my daughter along", models.PassengerCount{Adults: 1, Children: 1}, true},
		{"ages", "travellers aged 30 years old and 5 years old", models.PassengerCount{Adults: 1, Children: 1}, true},
		{"infant age", "one is 1 year old", models.PassengerCount{Adults: 1, Infants: 1}, true},
		{"children get an accompanying adult", "1 child", models.PassengerCount{Adults: 1, Children: 1}, true},
		{"no signal", "from lahore to karachi tomorrow", models.PassengerCount{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resolved, err := counter.CountPassengers(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("CountPassengers: %v", err)
			}
			if resolved != tt.resolved {
				t.Fatalf("resolved = %v, want %v", resolved, tt.resolved)
			}
			if got != tt.want {
				t.Errorf("CountPassengers(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasPassengerSignal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"tickets for my family", true},
		{"i am travelling with my son", true},
		{"my daughter is 5 years old", true},
		{"going with a friend and my brother", true},
		{"one is 1 year old", true},
		{"from lahore to karachi", false},
		{"business class tomorrow", false},
	}
	for _, tt := range tests {
		if got := hasPassengerSignal(tt.text); got != tt.want {
			t.Errorf("hasPassengerSignal(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

type stubCounter struct {
	pc  models.PassengerCount
	ok  bool
	err error
}

func (s stubCounter) CountPassengers(context.Context, string) (models.PassengerCount, bool, error) {
	return s.pc, s.ok, s.err
}

func TestFallbackCounter(t *testing.T) {
	t.Run("first resolved wins", func(t *testing.T) {
		f := FallbackCounter{Counters: []PassengerCounter{
			stubCounter{ok: false},
			stubCounter{pc: models.PassengerCount{Adults: 2}, ok: true},
		}}
		got, ok, err := f.CountPassengers(context.Background(), "whatever")
		if err != nil || !ok || got.Adults != 2 {
			t.Errorf("got (%+v, %v, %v), want 2 adults resolved", got, ok, err)
		}
	})

	t.Run("error does not block later counters", func(t *testing.T) {
		f := FallbackCounter{Counters: []PassengerCounter{
			stubCounter{err: errors.New("model unavailable")},
			stubCounter{pc: models.PassengerCount{Adults: 1}, ok: true},
		}}
		got, ok, err := f.CountPassengers(context.Background(), "whatever")
		if err != nil || !ok || got.Adults != 1 {
			t.Errorf("got (%+v, %v, %v), want 1 adult resolved", got, ok, err)
		}
	})

	t.Run("nothing resolved reports last error", func(t *testing.T) {
		wantErr := errors.New("model unavailable")
		f := FallbackCounter{Counters: []PassengerCounter{
			stubCounter{ok: false},
			stubCounter{err: wantErr},
		}}
		_, ok, err := f.CountPassengers(context.Background(), "whatever")
		if ok || !errors.Is(err, wantErr) {
			t.Errorf("got (ok=%v, err=%v), want unresolved with error", ok, err)
		}
	})
}
