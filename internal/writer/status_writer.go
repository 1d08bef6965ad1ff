// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/syl2381/internal/status"
)

// StatusWriter is the delivery-only contract for link status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter is the concrete implementation used by the bridge.
type deviceStatusWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
}

// NewDeviceStatusWriter builds a status writer publishing under plan.TopicPrefix.
func NewDeviceStatusWriter(plan Plan, cli endpointClient) StatusWriter {
	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last: status.Snapshot{
			Health: status.HealthUnknown,
		},
	}
}

// WriteStatus delivers a link status snapshot.
// On any publish failure, the next call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw.cli == nil {
		return errors.New("status writer: missing client")
	}

	// ------------------------------------------------------------
	// Full block (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		block := status.Encode(s, sw.plan.Device)

		var errs []string
		for _, field := range []string{
			status.FieldHealth,
			status.FieldLastErrorCode,
			status.FieldSecondsInError,
			status.FieldDevice,
		} {
			if err := sw.publish(field, block[field]); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", field, err))
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("status writer: full block publish failed: %s", strings.Join(errs, " | "))
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed fields only
	// ------------------------------------------------------------
	block := status.Encode(s, sw.plan.Device)

	var errs []string
	for _, field := range status.Changed(sw.last, s) {
		if err := sw.publish(field, block[field]); err != nil {
			errs = append(errs, fmt.Sprintf("%s publish failed: %v", field, err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	sw.last = s
	return nil
}

func (sw *deviceStatusWriter) publish(field, payload string) error {
	return sw.cli.Publish(sw.plan.Topic(TopicStatus, field), []byte(payload))
}

// multiStatus fans one snapshot out to several status writers.
type multiStatus []StatusWriter

// MultiStatus returns a StatusWriter delivering to every sw in order. Errors are joined.
func MultiStatus(sws ...StatusWriter) StatusWriter {
	return multiStatus(sws)
}

func (m multiStatus) WriteStatus(s status.Snapshot) error {
	var errs []error
	for _, sw := range m {
		if err := sw.WriteStatus(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
