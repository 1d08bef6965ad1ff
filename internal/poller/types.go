// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// Reading is one decoded parameter from a poll cycle.
type Reading struct {
	Param syl2381.Param
	Value float32 // raw wire float, or coil byte
	Text  string
}

// Mnemonic returns the front-panel name of the parameter.
func (r Reading) Mnemonic() string {
	return r.Param.String()
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Device string
	At     time.Time
	Took   time.Duration

	Readings []Reading
	Err      error // non-nil means the poll cycle failed
}

// Lookup returns the reading for p, if the cycle produced one.
func (r PollResult) Lookup(p syl2381.Param) (Reading, bool) {
	for _, rd := range r.Readings {
		if rd.Param == p {
			return rd, true
		}
	}
	return Reading{}, false
}
