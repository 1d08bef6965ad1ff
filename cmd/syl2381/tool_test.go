package main

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/tamzrod/syl2381/pkg/syl2381"
)

type fakeDevice struct {
	values  map[syl2381.Param]float32
	failOn  map[syl2381.Param]bool
	written []syl2381.Param
}

func (f *fakeDevice) ReadValue(p syl2381.Param) (syl2381.Value, error) {
	if f.failOn[p] {
		return syl2381.Value{}, errors.New("no answer")
	}
	v := f.values[p]
	return syl2381.Value{Param: p, Raw: v, Text: strconv.FormatFloat(float64(v), 'g', -1, 32)}, nil
}

func (f *fakeDevice) WriteValue(p syl2381.Param, v float32) error {
	if f.values == nil {
		f.values = map[syl2381.Param]float32{}
	}
	f.values[p] = v
	f.written = append(f.written, p)
	return nil
}

func TestDump_DynamicGroupFirst(t *testing.T) {
	dev := &fakeDevice{values: map[syl2381.Param]float32{
		syl2381.ProcessValue: 21.5,
		syl2381.Setpoint:     80,
	}}

	var buf bytes.Buffer
	if err := dump(&buf, dev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	dyn := strings.Index(out, "Dynamic")
	static := strings.Index(out, "Static")
	pv := strings.Index(out, "PV")
	sv := strings.Index(out, "SV")

	if dyn != 0 || static < 0 {
		t.Fatalf("group headers missing or misplaced:\n%s", out)
	}
	if !(dyn < pv && pv < static && static < sv) {
		t.Fatalf("PV must be in the dynamic group and SV in the static group:\n%s", out)
	}
	if !strings.Contains(out, "21.5") || !strings.Contains(out, "80") {
		t.Fatalf("values missing:\n%s", out)
	}
}

func TestDump_ContinuesPastFailure(t *testing.T) {
	dev := &fakeDevice{failOn: map[syl2381.Param]bool{syl2381.ProcessValue: true}}

	var buf bytes.Buffer
	err := dump(&buf, dev)
	if err == nil {
		t.Fatalf("expected error summary")
	}

	out := buf.String()
	if !strings.Contains(out, "error: no answer") {
		t.Fatalf("failure not reported inline:\n%s", out)
	}
	if !strings.Contains(out, "BAUD") {
		t.Fatalf("dump stopped early:\n%s", out)
	}
	if got := strings.Count(out, "error:"); got != 1 {
		t.Fatalf("expected exactly one failing parameter, got %d:\n%s", got, out)
	}
}

func TestGet_UnknownParam(t *testing.T) {
	var buf bytes.Buffer
	if err := get(&buf, &fakeDevice{}, "NOPE"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSet_WritesThenReadsBack(t *testing.T) {
	dev := &fakeDevice{}

	var buf bytes.Buffer
	if err := set(&buf, dev, "sv", "72.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dev.written) != 1 || dev.written[0] != syl2381.Setpoint {
		t.Fatalf("written = %v, want [SV]", dev.written)
	}
	if got := buf.String(); got != "SV 72.5\n" {
		t.Fatalf("readback = %q", got)
	}
}

func TestSet_BadInputDoesNotWrite(t *testing.T) {
	dev := &fakeDevice{}

	var buf bytes.Buffer
	if err := set(&buf, dev, "SV", "hot"); err == nil {
		t.Fatalf("expected parse error")
	}
	if len(dev.written) != 0 {
		t.Fatalf("nothing should be written, got %v", dev.written)
	}
}
