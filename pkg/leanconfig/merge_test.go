package leanconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paperEnvironment(t *testing.T, doc *Document) *Section {
	t.Helper()
	environments, ok := doc.Section("environments")
	require.True(t, ok)
	env, ok := environments.Sub("lean-cli")
	require.True(t, ok)
	return env
}

func TestBuildEnvironment_PaperTrading(t *testing.T) {
	doc := NewDocument()

	err := BuildEnvironment(doc, "lean-cli", LiveSkeleton(),
		HandlerConfig{ID: "PaperTradingBrokerage"},
		HandlerConfig{ID: "BinanceBrokerage", Properties: []Entry{
			{Key: "binance-api-key", Value: "key"},
			{Key: "binance-api-secret", Value: "secret"},
		}})
	require.NoError(t, err)

	env := paperEnvironment(t, doc)
	liveMode, ok := env.Get("live-mode")
	require.True(t, ok)
	assert.Equal(t, true, liveMode)
	assert.Equal(t, "PaperTradingBrokerage", env.GetString("live-mode-brokerage"))
	assert.Equal(t, "BinanceBrokerage", env.GetString("data-queue-handler"))
	assert.Equal(t, "QuantConnect.Lean.Engine.Setup.BrokerageSetupHandler", env.GetString("setup-handler"))

	// Credentials land at the document root, not inside the environment.
	assert.Equal(t, "key", doc.GetString("binance-api-key"))
	assert.Equal(t, "secret", doc.GetString("binance-api-secret"))
	assert.False(t, env.Has("binance-api-key"))
}

func TestBuildEnvironment_OverwritesExistingEnvironment(t *testing.T) {
	doc, err := Parse([]byte("environments:\n  lean-cli:\n    stale-key: stale\n"))
	require.NoError(t, err)

	err = BuildEnvironment(doc, "lean-cli", LiveSkeleton(),
		HandlerConfig{ID: "OandaBrokerage"}, HandlerConfig{ID: "OandaBrokerage"})
	require.NoError(t, err)

	env := paperEnvironment(t, doc)
	assert.False(t, env.Has("stale-key"))
	assert.Equal(t, "OandaBrokerage", env.GetString("live-mode-brokerage"))
}

func TestBuildEnvironment_LeavesOtherEnvironmentsAlone(t *testing.T) {
	doc, err := Parse([]byte("environments:\n  backtesting:\n    live-mode: false\n"))
	require.NoError(t, err)

	err = BuildEnvironment(doc, "lean-cli", LiveSkeleton(),
		HandlerConfig{ID: "PaperTradingBrokerage"}, HandlerConfig{ID: "OandaBrokerage"})
	require.NoError(t, err)

	environments, ok := doc.Section("environments")
	require.True(t, ok)
	backtesting, ok := environments.Sub("backtesting")
	require.True(t, ok)
	v, ok := backtesting.Get("live-mode")
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestBuildEnvironment_Idempotent(t *testing.T) {
	build := func(doc *Document) {
		err := BuildEnvironment(doc, "lean-cli", LiveSkeleton(),
			HandlerConfig{ID: "OandaBrokerage", Properties: []Entry{
				{Key: "oanda-account-id", Value: "001"},
				{Key: "oanda-access-token", Value: "token"},
				{Key: "oanda-environment", Value: "Practice"},
			}},
			HandlerConfig{ID: "OandaBrokerage"})
		require.NoError(t, err)
	}

	doc := NewDocument()
	build(doc)
	first, err := doc.Marshal()
	require.NoError(t, err)

	build(doc)
	second, err := doc.Marshal()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
