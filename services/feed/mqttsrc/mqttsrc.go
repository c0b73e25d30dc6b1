// Package mqttsrc feeds panel readings from an MQTT topic whose payloads
// are readings-protocol lines. Host-side only; the MCU build reads its
// lines straight off the UART instead.
package mqttsrc

import (
	"context"
	"log/slog"
	"sync/atomic"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"panelcode-go/errcode"
	"panelcode-go/services/feed/internal/lineproto"
	"panelcode-go/types"
	"panelcode-go/x/strx"
)

// Config carries broker coordinates. Zero fields take the defaults below.
type Config struct {
	Broker   string // default tcp://localhost:1883
	Topic    string // default panel/readings
	ClientID string // default panel-sim
	Log      *slog.Logger
}

type Source struct {
	broker   string
	topic    string
	clientID string
	log      *slog.Logger

	out     chan types.Readings
	dropped atomic.Uint32
}

func New(cfgs ...Config) *Source {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		broker:   strx.Coalesce(cfg.Broker, "tcp://localhost:1883"),
		topic:    strx.Coalesce(cfg.Topic, "panel/readings"),
		clientID: strx.Coalesce(cfg.ClientID, "panel-sim"),
		log:      log,
		out:      make(chan types.Readings, 1),
	}
}

// Readings is the latest-wins mailbox of decoded cycles.
func (s *Source) Readings() <-chan types.Readings { return s.out }

// Dropped reports how many payloads were rejected so far.
func (s *Source) Dropped() int { return int(s.dropped.Load()) }

// Run connects, subscribes and blocks until ctx is cancelled.
func (s *Source) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().AddBroker(s.broker).SetClientID(s.clientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer c.Disconnect(250)

	if token := c.Subscribe(s.topic, 0, s.onMessage); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	s.log.Info("subscribed", "broker", s.broker, "topic", s.topic)

	<-ctx.Done()
	return nil
}

// onMessage runs on paho's router goroutine, which delivers in order, so
// the mailbox keeps a single producer.
func (s *Source) onMessage(_ mqtt.Client, m mqtt.Message) {
	line := trimEOL(m.Payload())
	if len(line) == 0 {
		return
	}
	r, err := lineproto.Parse(line)
	if err != nil {
		s.dropped.Add(1)
		s.log.Warn("rejected payload", "code", errcode.Of(err), "payload", string(line))
		return
	}
	s.publish(r)
}

func (s *Source) publish(r types.Readings) {
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

func trimEOL(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
