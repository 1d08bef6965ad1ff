// internal/writer/writer.go
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamzrod/syl2381/internal/poller"
)

// endpointClient is the exact contract the writers use.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	Publish(topic string, payload []byte) error
}

// statePayload is the JSON document published on the state topic.
type statePayload struct {
	Device string                  `json:"device"`
	At     time.Time               `json:"at"`
	TookMs int64                   `json:"took_ms"`
	Values map[string]valuePayload `json:"values"`
}

type valuePayload struct {
	Value float32 `json:"value"`
	Text  string  `json:"text"`
}

type writerImpl struct {
	plan Plan
	cli  endpointClient
}

// New returns the data writer. Failed cycles publish nothing:
// the previous state stays retained and the status writer reports the error.
func New(plan Plan, cli endpointClient) Writer {
	return &writerImpl{
		plan: plan,
		cli:  cli,
	}
}

func (w *writerImpl) Write(res poller.PollResult) error {
	if res.Err != nil {
		return nil
	}
	if w.cli == nil {
		return errors.New("writer: missing client")
	}

	var errs []string

	// ------------------------------------------------------------
	// STATE DOCUMENT
	// ------------------------------------------------------------

	doc := statePayload{
		Device: w.plan.Device,
		At:     res.At.UTC(),
		TookMs: res.Took.Milliseconds(),
		Values: make(map[string]valuePayload, len(res.Readings)),
	}
	for _, rd := range res.Readings {
		doc.Values[rd.Mnemonic()] = valuePayload{Value: rd.Value, Text: rd.Text}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		// NaN/Inf readings are not representable in JSON
		errs = append(errs, fmt.Sprintf("writer: encode state: %v", err))
	} else if err := w.cli.Publish(w.plan.Topic(TopicState), body); err != nil {
		errs = append(errs, fmt.Sprintf("writer: topic=%s err=%v", w.plan.Topic(TopicState), err))
	}

	// ------------------------------------------------------------
	// PER-PARAMETER TOPICS
	// ------------------------------------------------------------

	for _, rd := range res.Readings {
		topic := w.plan.Topic(TopicParam, rd.Mnemonic())
		if err := w.cli.Publish(topic, []byte(rd.Text)); err != nil {
			errs = append(errs, fmt.Sprintf("writer: topic=%s err=%v", topic, err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}

// multi fans one poll result out to several writers.
type multi []Writer

// Multi returns a Writer delivering to every w in order. Errors are joined.
func Multi(ws ...Writer) Writer {
	return multi(ws)
}

func (m multi) Write(res poller.PollResult) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
