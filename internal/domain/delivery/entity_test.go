package delivery

import (
	"testing"
	"time"
)

func TestTravelTimeHours(t *testing.T) {
	departure := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		departure time.Time
		arrival   time.Time
		want      float64
	}{
		{
			name:      "whole hours",
			departure: departure,
			arrival:   departure.Add(4 * time.Hour),
			want:      4,
		},
		{
			name:      "rounded to two decimals",
			departure: departure,
			arrival:   departure.Add(90 * time.Minute),
			want:      1.5,
		},
		{
			name:      "ten minutes rounds to 0.17",
			departure: departure,
			arrival:   departure.Add(10 * time.Minute),
			want:      0.17,
		},
		{
			name:    "zero departure",
			arrival: departure,
			want:    0,
		},
		{
			name:      "zero arrival",
			departure: departure,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Delivery{DepartureTime: tt.departure, ArrivalTime: tt.arrival}
			if got := d.TravelTimeHours(); got != tt.want {
				t.Fatalf("TravelTimeHours() = %v, want %v", got, tt.want)
			}
		})
	}
}
