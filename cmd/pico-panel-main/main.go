//go:build rp2040 || rp2350

// Firmware entrypoint for a Raspberry Pi Pico driving an ST7735 panel.
// Readings arrive as protocol lines on UART0; the render loop is the only
// goroutine that touches the display.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/st7735"

	"panelcode-go/drivers/tinygfx"
	"panelcode-go/panel"
	"panelcode-go/services/feed"
	"panelcode-go/services/heartbeat"
)

// Panel wiring (SPI0) and feed wiring (UART0).
const (
	spiFreq  = 12_000_000
	feedBaud = 115200
)

var (
	pinSCK = machine.GP18
	pinSDO = machine.GP19
	pinSDI = machine.GP16
	pinCS  = machine.GP17
	pinDC  = machine.GP20
	pinRST = machine.GP21
	pinLIT = machine.GP22

	pinFeedTX = machine.GP0
	pinFeedRX = machine.GP1
)

func main() {
	time.Sleep(3 * time.Second)
	ctx := context.Background()

	println("[panel] configuring spi …")
	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
		Frequency: spiFreq,
	})

	display := st7735.New(machine.SPI0, pinRST, pinDC, pinCS, pinLIT)
	display.Configure(st7735.Config{})

	surf := tinygfx.New(&display)
	surf.Configure()

	r := panel.New(surf)
	r.Configure()
	r.DrawLayout()
	_ = surf.Display()

	println("[panel] configuring uart0 feed …")
	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: feedBaud,
		TX:       pinFeedTX,
		RX:       pinFeedRX,
	})
	svc := feed.New(uartx.UART0)
	go svc.Run(ctx)

	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	hb := heartbeat.New(machine.LED)
	go hb.Run(ctx)

	println("[panel] running")
	dropped := 0
	for rd := range svc.Readings() {
		r.UpdateValues(rd.Temp, rd.Humid, rd.Soil, rd.Pump)
		_ = surf.Display()
		if d := svc.Dropped(); d != dropped {
			dropped = d
			println("[panel] dropped lines:", d)
		}
	}
}
