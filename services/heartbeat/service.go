// Package heartbeat toggles a liveness pin so a stalled firmware is
// visible from across the room.
package heartbeat

import (
	"context"
	"time"
)

// Pin is the output the heartbeat drives. machine.Pin satisfies it; tests
// use fakes.
type Pin interface {
	Set(high bool)
}

// Config adjusts the blink. The zero value selects the defaults.
type Config struct {
	Period time.Duration // full on/off cycle is two periods; default 1s
}

type Service struct {
	pin    Pin
	period time.Duration
}

func New(pin Pin, cfgs ...Config) *Service {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	return &Service{pin: pin, period: period}
}

// Run toggles the pin every period until ctx is cancelled, then leaves it
// low.
func (s *Service) Run(ctx context.Context) {
	tick := time.NewTicker(s.period)
	defer tick.Stop()

	high := false
	for {
		select {
		case <-ctx.Done():
			s.pin.Set(false)
			return
		case <-tick.C:
			high = !high
			s.pin.Set(high)
		}
	}
}
