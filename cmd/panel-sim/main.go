// Host simulator for the panel: renders into an image surface and writes a
// PNG frame whenever an update actually painted something. Readings come
// from an interactive console on stdin, an MQTT topic, or a built-in demo
// sweep.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"panelcode-go/drivers/imggfx"
	"panelcode-go/errcode"
	"panelcode-go/panel"
	"panelcode-go/services/console"
	"panelcode-go/services/feed/mqttsrc"
	"panelcode-go/types"
)

func main() {
	rotation := flag.Int("rotation", 3, "panel rotation in quarter turns, 0..3")
	source := flag.String("source", "stdin", "readings source: stdin|mqtt|demo")
	broker := flag.String("broker", "tcp://localhost:1883", "mqtt broker url")
	topic := flag.String("topic", "panel/readings", "mqtt readings topic")
	frames := flag.String("frames", "frames", "directory for png frames")
	width := flag.Int("width", 160, "surface width in px")
	height := flag.Int("height", 128, "surface height in px")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *rotation < 0 || *rotation > 3 {
		log.Error("rotation out of range", "rotation", *rotation)
		os.Exit(2)
	}
	if err := os.MkdirAll(*frames, 0o755); err != nil {
		log.Error("create frames dir", "dir", *frames, "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surf := imggfx.New(*width, *height)
	r := panel.New(surf)
	r.Configure(panel.Config{Rotation: panel.Rotation(*rotation)})
	r.DrawLayout()

	w := &frameWriter{dir: *frames, surf: surf, log: log}
	w.flush() // frame 0: the static chrome

	readings, done := startSource(ctx, log, *source, *broker, *topic)
	if readings == nil {
		os.Exit(2)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping", "frames", w.seq)
			return
		case rd := <-readings:
			r.UpdateValues(rd.Temp, rd.Humid, rd.Soil, rd.Pump)
			w.flush()
		case <-done:
			// Drain a final cycle the source may have emitted on its way out.
			select {
			case rd := <-readings:
				r.UpdateValues(rd.Temp, rd.Humid, rd.Soil, rd.Pump)
				w.flush()
			default:
			}
			log.Info("source finished", "frames", w.seq)
			return
		}
	}
}

// frameWriter writes numbered PNGs, skipping updates that painted nothing.
type frameWriter struct {
	dir  string
	surf *imggfx.Device
	log  *slog.Logger
	seq  int
	last int
}

func (w *frameWriter) flush() {
	p := w.surf.Paints()
	if p == w.last {
		return
	}
	w.last = p
	name := filepath.Join(w.dir, fmt.Sprintf("frame-%04d.png", w.seq))
	f, err := os.Create(name)
	if err != nil {
		w.log.Error("create frame", "path", name, "err", err)
		return
	}
	if err := png.Encode(f, w.surf.Image()); err != nil {
		w.log.Error("encode frame", "path", name, "err", err)
		_ = f.Close()
		return
	}
	_ = f.Close()
	w.seq++
	w.log.Info("frame", "path", name, "paints", p)
}

// startSource launches the chosen readings source. done closes when the
// source stops on its own (console quit / EOF, broker failure).
func startSource(ctx context.Context, log *slog.Logger, source, broker, topic string) (<-chan types.Readings, <-chan struct{}) {
	done := make(chan struct{})
	switch source {
	case "stdin":
		c := console.New(os.Stdin, console.Config{
			OnError: func(line string, err error) {
				log.Warn("rejected command", "line", line, "code", errcode.Of(err))
			},
		})
		go func() {
			defer close(done)
			if err := c.Run(ctx); err != nil && err != context.Canceled {
				log.Error("console", "err", err)
			}
		}()
		return c.Readings(), done

	case "mqtt":
		src := mqttsrc.New(mqttsrc.Config{Broker: broker, Topic: topic, Log: log})
		go func() {
			defer close(done)
			if err := src.Run(ctx); err != nil {
				log.Error("mqtt source", "err", err)
			}
		}()
		return src.Readings(), done

	case "demo":
		return demoSource(ctx, done), done

	default:
		log.Error("unknown source", "source", source)
		close(done)
		return nil, done
	}
}

// demoSource sweeps synthetic readings, with periodic NaN dropouts so the
// placeholder paths get exercised too.
func demoSource(ctx context.Context, done chan struct{}) <-chan types.Readings {
	out := make(chan types.Readings, 1)
	go func() {
		defer close(done)
		tick := time.NewTicker(500 * time.Millisecond)
		defer tick.Stop()

		nan := float32(math.NaN())
		step := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				ph := float64(step) * 0.2
				rd := types.Readings{
					Temp:  18 + 8*float32(math.Sin(ph)),
					Humid: 50 + 20*float32(math.Sin(ph/2)),
					Soil:  40 + 30*float32(math.Cos(ph/3)),
					Pump:  50 + 50*float32(math.Sin(ph/4)),
				}
				if step%13 == 7 {
					rd.Temp = nan
				}
				if step%17 == 5 {
					rd.Pump = nan
				}
				step++

				select {
				case out <- rd:
				default:
					select {
					case <-out:
					default:
					}
					out <- rd
				}
			}
		}
	}()
	return out
}
