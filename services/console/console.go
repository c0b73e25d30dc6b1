// Package console drives the simulator from an interactive command stream.
// It keeps the current cycle between commands, so single-channel patches
// leave the other channels alone, and emits the whole cycle after every
// successful command.
//
// Commands (verbs are case-insensitive; quoting follows shell rules):
//
//	set <t> <h> <s> <p>   replace all four channels
//	t|h|s|p <v>           patch one channel
//	clear                 set every channel to NaN
//	quit                  stop the console
//
// A value is a plain decimal number, or "nan" / "-" for no sample.
package console

import (
	"bufio"
	"context"
	"io"
	"math"
	"strings"

	"github.com/google/shlex"

	"panelcode-go/errcode"
	"panelcode-go/types"
	"panelcode-go/x/strconvx"
)

// Config adjusts reporting. The zero value is usable.
type Config struct {
	// OnError is called with the offending line and its errcode for every
	// rejected command. May be nil. Errors never stop the loop.
	OnError func(line string, err error)
}

type Service struct {
	in      io.Reader
	onError func(string, error)

	out chan types.Readings
	cur types.Readings
}

func New(in io.Reader, cfgs ...Config) *Service {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	return &Service{
		in:      in,
		onError: cfg.OnError,
		out:     make(chan types.Readings, 1),
		cur:     types.Undefined(),
	}
}

// Readings is the latest-wins mailbox of emitted cycles.
func (s *Service) Readings() <-chan types.Readings { return s.out }

// Run executes commands until quit, EOF or a read error. Cancellation is
// observed between lines; a blocked read is not interrupted.
func (s *Service) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := sc.Text()
		stop, err := s.exec(line)
		if err != nil && s.onError != nil {
			s.onError(line, err)
		}
		if stop {
			return nil
		}
	}
	return sc.Err()
}

// exec runs one command line. stop is true only for quit.
func (s *Service) exec(line string) (stop bool, err error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, &errcode.E{C: errcode.BadArgs, Op: "split", Err: err}
	}
	if len(args) == 0 {
		return false, nil
	}
	verb, rest := strings.ToLower(args[0]), args[1:]

	switch verb {
	case "set":
		if len(rest) != 4 {
			return false, errcode.BadArgs
		}
		var vals [4]float32
		for i, tok := range rest {
			v, err := parseNum(tok)
			if err != nil {
				return false, err
			}
			vals[i] = v
		}
		s.cur = types.Readings{Temp: vals[0], Humid: vals[1], Soil: vals[2], Pump: vals[3]}

	case "t", "h", "s", "p":
		if len(rest) != 1 {
			return false, errcode.BadArgs
		}
		v, err := parseNum(rest[0])
		if err != nil {
			return false, err
		}
		switch verb {
		case "t":
			s.cur.Temp = v
		case "h":
			s.cur.Humid = v
		case "s":
			s.cur.Soil = v
		case "p":
			s.cur.Pump = v
		}

	case "clear":
		if len(rest) != 0 {
			return false, errcode.BadArgs
		}
		s.cur = types.Undefined()

	case "quit", "exit":
		return true, nil

	default:
		return false, errcode.UnknownCommand
	}

	s.publish(s.cur)
	return false, nil
}

func parseNum(tok string) (float32, error) {
	switch strings.ToLower(tok) {
	case "nan", "-":
		return float32(math.NaN()), nil
	}
	f, err := strconvx.ParseFloat(tok, 32)
	if err != nil {
		return 0, errcode.BadNumber
	}
	return float32(f), nil
}

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
