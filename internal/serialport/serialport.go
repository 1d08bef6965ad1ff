// internal/serialport/serialport.go
package serialport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goburrow/serial"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// openPort is swapped in tests.
var openPort = func(c *serial.Config) (io.ReadWriteCloser, error) {
	return serial.Open(c)
}

// Open opens the serial line and adapts it to a byte transport.
// The returned transport owns the port; Close releases it.
func Open(c config.SerialConfig) (*syl2381.StreamTransport, error) {
	if c.Address == "" {
		return nil, errors.New("serialport: address required")
	}

	port, err := openPort(PortConfig(c))
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", c.Address, err)
	}

	return syl2381.NewStreamTransport(port), nil
}

// PortConfig maps the link settings onto the serial driver config.
// A read that sees no byte within the timeout fails with serial.ErrTimeout.
func PortConfig(c config.SerialConfig) *serial.Config {
	pc := &serial.Config{
		Address:  c.Address,
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
		Parity:   strings.ToUpper(c.Parity),
		Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
	}
	if c.RS485 {
		pc.RS485 = serial.RS485Config{
			Enabled:           true,
			RtsHighDuringSend: true,
		}
	}
	return pc
}
