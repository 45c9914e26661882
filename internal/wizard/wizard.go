// Package wizard drives the interactive brokerage and data feed selection as
// a pure state machine. Terminal I/O sits behind the Prompter interface so
// the transition logic is testable without a terminal.
package wizard

import (
	"fmt"

	"github.com/tradeops/leanctl/internal/registry"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// State is a stop in the configuration flow.
type State int

const (
	StateSelectBrokerage State = iota
	StateConfigureBrokerage
	StateSelectDataFeed
	StateConfigureDataFeed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelectBrokerage:
		return "select-brokerage"
	case StateConfigureBrokerage:
		return "configure-brokerage"
	case StateSelectDataFeed:
		return "select-data-feed"
	case StateConfigureDataFeed:
		return "configure-data-feed"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Prompter supplies the answers the wizard needs. The terminal
// implementation lives in this package; tests script their own.
type Prompter interface {
	// Select asks the user to pick one of options, returning its index.
	Select(prompt string, options []string) (int, error)
	// Ask asks for a free-form value with an optional default.
	Ask(prompt, defaultValue string) (string, error)
}

// DefaultFunc looks up the persisted default for a configuration key.
type DefaultFunc func(key string) (string, bool)

// Result is the outcome of a completed wizard run, ready to hand to the
// configuration merger.
type Result struct {
	Brokerage       registry.Brokerage
	Feed            registry.DataQueueHandler
	BrokerageConfig leanconfig.HandlerConfig
	FeedConfig      leanconfig.HandlerConfig
}

// Wizard walks SelectBrokerage -> ConfigureBrokerage -> SelectDataFeed ->
// ConfigureDataFeed -> Done.
type Wizard struct {
	prompter Prompter
	defaults DefaultFunc
	state    State
	result   Result
}

// New creates a wizard in the SelectBrokerage state. defaults may be nil
// when no configuration file exists yet.
func New(prompter Prompter, defaults DefaultFunc) *Wizard {
	if defaults == nil {
		defaults = func(string) (string, bool) { return "", false }
	}
	return &Wizard{prompter: prompter, defaults: defaults}
}

// State returns the current state.
func (w *Wizard) State() State {
	return w.state
}

// Step performs one transition. Calling Step in the Done state is an error.
func (w *Wizard) Step() error {
	switch w.state {
	case StateSelectBrokerage:
		return w.selectBrokerage()
	case StateConfigureBrokerage:
		return w.configureBrokerage()
	case StateSelectDataFeed:
		return w.selectDataFeed()
	case StateConfigureDataFeed:
		return w.configureDataFeed()
	}
	return fmt.Errorf("wizard already finished")
}

// Run steps the machine to completion and returns the collected result.
func (w *Wizard) Run() (Result, error) {
	for w.state != StateDone {
		if err := w.Step(); err != nil {
			return Result{}, err
		}
	}
	return w.result, nil
}

func (w *Wizard) selectBrokerage() error {
	brokerages := registry.Brokerages()
	names := make([]string, len(brokerages))
	for i, b := range brokerages {
		names[i] = b.DisplayName()
	}
	idx, err := w.prompter.Select("Select a brokerage", names)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(brokerages) {
		return fmt.Errorf("brokerage selection out of range: %d", idx)
	}
	w.result.Brokerage = brokerages[idx]
	w.state = StateConfigureBrokerage
	return nil
}

func (w *Wizard) configureBrokerage() error {
	properties, err := w.collect(w.result.Brokerage.Options())
	if err != nil {
		return err
	}
	w.result.BrokerageConfig = leanconfig.HandlerConfig{
		ID:         w.result.Brokerage.ID(),
		Properties: properties,
	}
	w.state = StateSelectDataFeed
	return nil
}

func (w *Wizard) selectDataFeed() error {
	feeds := registry.FeedsFor(w.result.Brokerage)
	names := make([]string, len(feeds))
	for i, d := range feeds {
		names[i] = d.DisplayName()
	}
	idx, err := w.prompter.Select("Select a data feed", names)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(feeds) {
		return fmt.Errorf("data feed selection out of range: %d", idx)
	}
	w.result.Feed = feeds[idx]
	w.state = StateConfigureDataFeed
	return nil
}

func (w *Wizard) configureDataFeed() error {
	options := feedOptions(w.result.Feed, w.result.Brokerage)
	properties, err := w.collect(options)
	if err != nil {
		return err
	}
	w.result.FeedConfig = leanconfig.HandlerConfig{
		ID:         w.result.Feed.ID(),
		Properties: properties,
	}
	w.state = StateDone
	return nil
}

// feedOptions returns the options the feed needs beyond what the chosen
// brokerage already collected. When the feed is backed by a different
// brokerage (paper trading paired with a real feed), that brokerage's
// credentials are collected here.
func feedOptions(feed registry.DataQueueHandler, chosen registry.Brokerage) []registry.Option {
	var options []registry.Option
	if counterpart, ok := feed.Brokerage(); ok && counterpart != chosen {
		options = append(options, counterpart.Options()...)
	}
	return append(options, feed.Options()...)
}

// collect asks for each option's value. Empty answers produce no entry, so a
// skipped prompt never writes an empty string into the document; the
// validator reports the key as missing instead.
func (w *Wizard) collect(options []registry.Option) ([]leanconfig.Entry, error) {
	entries := make([]leanconfig.Entry, 0, len(options))
	for _, opt := range options {
		def, _ := w.defaults(opt.Key)
		value, err := w.prompter.Ask(opt.Help, def)
		if err != nil {
			return nil, err
		}
		if value == "" {
			continue
		}
		entries = append(entries, leanconfig.Entry{Key: opt.Key, Value: value})
	}
	return entries, nil
}
