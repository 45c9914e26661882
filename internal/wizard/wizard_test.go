package wizard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/leanctl/internal/registry"
)

// scriptedPrompter answers Select by option label and Ask by prompt text.
type scriptedPrompter struct {
	selections map[string]string
	answers    map[string]string
}

func (p *scriptedPrompter) Select(prompt string, options []string) (int, error) {
	want, ok := p.selections[prompt]
	if !ok {
		return 0, fmt.Errorf("unexpected Select(%q)", prompt)
	}
	for i, option := range options {
		if option == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("option %q not offered for %q", want, prompt)
}

func (p *scriptedPrompter) Ask(prompt, defaultValue string) (string, error) {
	if answer, ok := p.answers[prompt]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func TestWizard_StatesInOrder(t *testing.T) {
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Binance",
			"Select a data feed": "Binance",
		},
		answers: map[string]string{},
	}
	w := New(prompter, nil)

	assert.Equal(t, StateSelectBrokerage, w.State())
	require.NoError(t, w.Step())
	assert.Equal(t, StateConfigureBrokerage, w.State())
	require.NoError(t, w.Step())
	assert.Equal(t, StateSelectDataFeed, w.State())
	require.NoError(t, w.Step())
	assert.Equal(t, StateConfigureDataFeed, w.State())
	require.NoError(t, w.Step())
	assert.Equal(t, StateDone, w.State())

	assert.Error(t, w.Step())
}

func TestWizard_BinanceFlow(t *testing.T) {
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Binance",
			"Select a data feed": "Binance",
		},
		answers: map[string]string{
			"Your Binance API key":    "key",
			"Your Binance API secret": "secret",
		},
	}

	result, err := New(prompter, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, registry.Binance, result.Brokerage)
	assert.Equal(t, registry.BinanceFeed, result.Feed)
	assert.Equal(t, "BinanceBrokerage", result.BrokerageConfig.ID)
	require.Len(t, result.BrokerageConfig.Properties, 2)
	assert.Equal(t, "binance-api-key", result.BrokerageConfig.Properties[0].Key)
	assert.Equal(t, "key", result.BrokerageConfig.Properties[0].Value)
	// Binance's feed adds no keys beyond the brokerage credentials.
	assert.Empty(t, result.FeedConfig.Properties)
}

func TestWizard_PaperTradingCollectsFeedBrokerageCredentials(t *testing.T) {
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Paper Trading",
			"Select a data feed": "OANDA",
		},
		answers: map[string]string{
			"Your OANDA account id": "001",
			"Your OANDA API token":  "token",
			"Practice for fxTrade Practice, Trade for fxTrade": "Practice",
		},
	}

	result, err := New(prompter, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, registry.PaperTrading, result.Brokerage)
	assert.Equal(t, registry.OandaFeed, result.Feed)
	// Paper trading itself needs no credentials.
	assert.Empty(t, result.BrokerageConfig.Properties)
	// The OANDA feed pulls in the OANDA brokerage credentials.
	keys := make([]string, len(result.FeedConfig.Properties))
	for i, e := range result.FeedConfig.Properties {
		keys[i] = e.Key
	}
	assert.ElementsMatch(t,
		[]string{"oanda-account-id", "oanda-access-token", "oanda-environment"}, keys)
}

func TestWizard_PaperTradingOffersEveryFeed(t *testing.T) {
	var offered []string
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Paper Trading",
		},
	}
	w := New(prompter, nil)
	require.NoError(t, w.Step())
	require.NoError(t, w.Step())

	// Capture the feed options by intercepting the next Select.
	capture := &capturePrompter{inner: prompter, captured: &offered, pick: "IQFeed"}
	w.prompter = capture
	require.NoError(t, w.Step())

	assert.Len(t, offered, len(registry.DataQueueHandlers()))
	assert.Contains(t, offered, "IQFeed")
	assert.Equal(t, registry.IQFeed, w.result.Feed)
}

func TestWizard_DefaultsFlowThrough(t *testing.T) {
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Binance",
			"Select a data feed": "Binance",
		},
		// No answers: every Ask returns its default.
	}
	defaults := func(key string) (string, bool) {
		if key == "binance-api-key" {
			return "persisted-key", true
		}
		return "", false
	}

	result, err := New(prompter, defaults).Run()
	require.NoError(t, err)

	require.Len(t, result.BrokerageConfig.Properties, 1)
	assert.Equal(t, "binance-api-key", result.BrokerageConfig.Properties[0].Key)
	assert.Equal(t, "persisted-key", result.BrokerageConfig.Properties[0].Value)
}

func TestWizard_EmptyAnswersProduceNoEntries(t *testing.T) {
	prompter := &scriptedPrompter{
		selections: map[string]string{
			"Select a brokerage": "Binance",
			"Select a data feed": "Binance",
		},
		// No answers and no defaults: every Ask returns "".
	}

	result, err := New(prompter, nil).Run()
	require.NoError(t, err)

	assert.Empty(t, result.BrokerageConfig.Properties)
	assert.Empty(t, result.FeedConfig.Properties)
}

type capturePrompter struct {
	inner    Prompter
	captured *[]string
	pick     string
}

func (p *capturePrompter) Select(prompt string, options []string) (int, error) {
	*p.captured = append([]string(nil), options...)
	for i, option := range options {
		if option == p.pick {
			return i, nil
		}
	}
	return 0, fmt.Errorf("option %q not offered", p.pick)
}

func (p *capturePrompter) Ask(prompt, defaultValue string) (string, error) {
	return p.inner.Ask(prompt, defaultValue)
}
