// Package feed turns a byte-oriented serial port into a stream of panel
// readings. Bytes are framed into LF-terminated lines (CR ignored, length
// capped, unterminated tails flushed after an idle timeout), each line is
// decoded with lineproto, and decoded cycles land in a capacity-1
// latest-wins mailbox: a slow consumer only ever sees the freshest cycle.
package feed

import (
	"context"
	"sync/atomic"
	"time"

	"panelcode-go/errcode"
	"panelcode-go/services/feed/internal/lineproto"
	"panelcode-go/types"
	"panelcode-go/x/mathx"
	"panelcode-go/x/timex"
)

// Port is the read side of a buffered serial port. *uartx.UART satisfies
// it on the MCU; tests use fakes.
type Port interface {
	Readable() <-chan struct{}
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// Config adjusts framing. The zero value selects the defaults.
type Config struct {
	// MaxLine caps line length in bytes; default 64, clamped to 16..256.
	// Overlong lines are rejected whole, not truncated.
	MaxLine int
	// IdleFlush ends an unterminated line after this long with no input;
	// default 500ms, clamped to <=2s. Negative disables.
	IdleFlush time.Duration
	// OnError is called with each rejected line and its errcode. The line
	// slice is reused; copy it if it must outlive the call. May be nil.
	OnError func(line []byte, err error)
}

type Service struct {
	port    Port
	maxLine int
	idle    time.Duration
	onError func([]byte, error)

	out     chan types.Readings
	dropped atomic.Uint32
}

func New(port Port, cfgs ...Config) *Service {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	max := cfg.MaxLine
	if max == 0 {
		max = 64
	}
	idle := cfg.IdleFlush
	switch {
	case idle < 0:
		idle = 0
	case idle == 0:
		idle = 500 * time.Millisecond
	case idle > 2*time.Second:
		idle = 2 * time.Second
	}
	return &Service{
		port:    port,
		maxLine: mathx.Clamp(max, 16, 256),
		idle:    idle,
		onError: cfg.OnError,
		out:     make(chan types.Readings, 1),
	}
}

// Readings is the latest-wins mailbox of decoded cycles.
func (s *Service) Readings() <-chan types.Readings { return s.out }

// Dropped reports how many lines were rejected so far.
func (s *Service) Dropped() int { return int(s.dropped.Load()) }

// Run frames and decodes until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	buf := make([]byte, s.maxLine)
	line := make([]byte, 0, s.maxLine)
	long := false

	timer := timex.NewStopped()

	finish := func() {
		if long {
			s.reject(line, errcode.LineTooLong)
		} else if len(line) > 0 {
			s.accept(line)
		}
		line = line[:0]
		long = false
	}

	for {
		// Arm the idle flush only while a partial line is pending.
		if len(line) > 0 && s.idle > 0 {
			timex.ResetTimer(timer, s.idle)
		} else {
			timex.ResetTimer(timer, time.Hour)
		}

		select {
		case <-ctx.Done():
			return

		case <-s.port.Readable():
			// Bound the blocking wait to assist shutdown.
			rctx, rcancel := context.WithTimeout(ctx, 250*time.Millisecond)
			n, _ := s.port.RecvSomeContext(rctx, buf)
			rcancel()
			if n <= 0 {
				continue
			}
			for i := 0; i < n; i++ {
				switch buf[i] {
				case '\n':
					finish()
				case '\r':
					// ignore
				default:
					if len(line) < s.maxLine {
						line = append(line, buf[i])
					} else {
						long = true
					}
				}
			}

		case <-timer.C:
			finish()
		}
	}
}

func (s *Service) accept(line []byte) {
	r, err := lineproto.Parse(line)
	if err != nil {
		s.reject(line, err)
		return
	}
	s.publish(r)
}

func (s *Service) reject(line []byte, err error) {
	s.dropped.Add(1)
	if s.onError != nil {
		s.onError(line, err)
	}
}

// publish replaces any unconsumed cycle with the new one. Run is the only
// sender, so the swap loop terminates.
func (s *Service) publish(r types.Readings) {
	for {
		select {
		case s.out <- r:
			return
		default:
			select {
			case <-s.out:
			default:
			}
		}
	}
}
