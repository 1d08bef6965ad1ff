// internal/writer/types.go
package writer

import "github.com/tamzrod/syl2381/internal/poller"

// Topic suffixes under Plan.TopicPrefix.
const (
	TopicState        = "state"        // JSON snapshot of one poll cycle
	TopicParam        = "param"        // param/<MNEMONIC>, text form
	TopicStatus       = "status"       // status/<field>
	TopicAvailability = "availability" // online / offline
)

// Plan is the fully-built publish plan for one device.
type Plan struct {
	Device      string
	TopicPrefix string
}

// Topic joins the prefix with the given levels.
func (p Plan) Topic(levels ...string) string {
	t := p.TopicPrefix
	for _, l := range levels {
		t += "/" + l
	}
	return t
}

// Writer delivers poll snapshots.
type Writer interface {
	Write(res poller.PollResult) error
}
