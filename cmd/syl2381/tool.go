// cmd/syl2381/tool.go
package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// deviceAccess is the part of the driver the one-shot commands use.
type deviceAccess interface {
	ReadValue(p syl2381.Param) (syl2381.Value, error)
	WriteValue(p syl2381.Param, v float32) error
}

// Tool runs one-shot commands against an exclusively owned device.
type Tool struct {
	Cfg *config.Config
	Log zerolog.Logger
	Dev *syl2381.Device
}

// dump prints the process state group, then the configuration group.
// A failing parameter is reported inline; the dump continues.
func dump(w io.Writer, dev deviceAccess) error {
	var failed int

	for _, group := range []struct {
		title   string
		dynamic bool
	}{
		{"Dynamic", true},
		{"Static", false},
	} {
		fmt.Fprintf(w, "%s\n", group.title)
		for _, p := range syl2381.Params() {
			if p.Descriptor().Dynamic != group.dynamic {
				continue
			}
			v, err := dev.ReadValue(p)
			if err != nil {
				failed++
				fmt.Fprintf(w, "  %-8s error: %v\n", p, err)
				continue
			}
			fmt.Fprintf(w, "  %-8s %s\n", p, v.Text)
		}
	}

	if failed > 0 {
		return fmt.Errorf("dump: %d parameter(s) failed", failed)
	}
	return nil
}

func get(w io.Writer, dev deviceAccess, mnemonic string) error {
	p, ok := syl2381.LookupParam(mnemonic)
	if !ok {
		return fmt.Errorf("get: unknown parameter %q", mnemonic)
	}
	v, err := dev.ReadValue(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", p, v.Text)
	return nil
}

// set writes then reads back, so the printed value is what the controller holds.
func set(w io.Writer, dev deviceAccess, mnemonic, input string) error {
	p, ok := syl2381.LookupParam(mnemonic)
	if !ok {
		return fmt.Errorf("set: unknown parameter %q", mnemonic)
	}
	v, err := syl2381.ParseSetting(p, input)
	if err != nil {
		return err
	}
	if err := dev.WriteValue(p, v); err != nil {
		return err
	}
	return get(w, dev, p.String())
}
