package leanconfig

// Entry is an ordered key/value pair applied during an environment merge.
// Plain maps would randomize key order in the serialized document.
type Entry struct {
	Key   string
	Value any
}

// HandlerConfig carries the canonical identifier of a brokerage or data
// queue handler together with the root-level properties it contributes.
type HandlerConfig struct {
	ID         string
	Properties []Entry
}

// LiveSkeleton returns the fixed handler keys every live-trading environment
// starts from, independent of the brokerage choice.
func LiveSkeleton() []Entry {
	return []Entry{
		{Key: "live-mode", Value: true},
		{Key: "setup-handler", Value: "QuantConnect.Lean.Engine.Setup.BrokerageSetupHandler"},
		{Key: "result-handler", Value: "QuantConnect.Lean.Engine.Results.LiveTradingResultHandler"},
		{Key: "data-feed-handler", Value: "QuantConnect.Lean.Engine.DataFeeds.LiveTradingDataFeed"},
		{Key: "real-time-handler", Value: "QuantConnect.Lean.Engine.RealTime.LiveTradingRealTimeHandler"},
	}
}

// BuildEnvironment merges a live-trading environment into the document.
//
// The environment named envName is reset to the skeleton; a pre-existing
// environment of the same name is overwritten wholesale, last write wins.
// Brokerage and feed properties land at the document ROOT (credentials are
// referenced from the environment by name, not nested under it), while the
// canonical identifiers are written into the environment itself. Calling
// BuildEnvironment twice with identical arguments yields an identical
// document.
func BuildEnvironment(doc *Document, envName string, skeleton []Entry, brokerage, feed HandlerConfig) error {
	environments := doc.EnsureSection("environments")
	env := environments.SetSection(envName)

	for _, e := range skeleton {
		if err := env.Set(e.Key, e.Value); err != nil {
			return err
		}
	}

	for _, e := range brokerage.Properties {
		if err := doc.Set(e.Key, e.Value); err != nil {
			return err
		}
	}
	if err := env.Set("live-mode-brokerage", brokerage.ID); err != nil {
		return err
	}

	for _, e := range feed.Properties {
		if err := doc.Set(e.Key, e.Value); err != nil {
			return err
		}
	}
	return env.Set("data-queue-handler", feed.ID)
}
