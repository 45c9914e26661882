// Package registry holds the static brokerage and data-queue-handler tables:
// which identities exist, the configuration properties each one requires, and
// the CLI option metadata used to collect those properties.
package registry

// Brokerage identifies a supported live-trading counterparty.
type Brokerage int

const (
	PaperTrading Brokerage = iota
	InteractiveBrokers
	Tradier
	Oanda
	CoinbasePro
	Bitfinex
	Binance
	Zerodha
	Bloomberg
)

// DataQueueHandler identifies a supported live market data source.
type DataQueueHandler int

const (
	InteractiveBrokersFeed DataQueueHandler = iota
	TradierFeed
	OandaFeed
	CoinbaseProFeed
	BitfinexFeed
	BinanceFeed
	ZerodhaFeed
	BloombergFeed
	IQFeed
)

// ID returns the canonical identifier written into the configuration
// document as live-mode-brokerage.
func (b Brokerage) ID() string {
	switch b {
	case PaperTrading:
		return "PaperTradingBrokerage"
	case InteractiveBrokers:
		return "InteractiveBrokersBrokerage"
	case Tradier:
		return "TradierBrokerage"
	case Oanda:
		return "OandaBrokerage"
	case CoinbasePro:
		return "GDAXBrokerage"
	case Bitfinex:
		return "BitfinexBrokerage"
	case Binance:
		return "BinanceBrokerage"
	case Zerodha:
		return "ZerodhaBrokerage"
	case Bloomberg:
		return "BloombergBrokerage"
	}
	return ""
}

// DisplayName returns the human-readable name used on the CLI surface.
func (b Brokerage) DisplayName() string {
	switch b {
	case PaperTrading:
		return "Paper Trading"
	case InteractiveBrokers:
		return "Interactive Brokers"
	case Tradier:
		return "Tradier"
	case Oanda:
		return "OANDA"
	case CoinbasePro:
		return "Coinbase Pro"
	case Bitfinex:
		return "Bitfinex"
	case Binance:
		return "Binance"
	case Zerodha:
		return "Zerodha"
	case Bloomberg:
		return "Bloomberg"
	}
	return ""
}

// RequiredProperties returns the configuration keys that must be present and
// non-empty at the document root before this brokerage is usable.
func (b Brokerage) RequiredProperties() []string {
	switch b {
	case InteractiveBrokers:
		return []string{"ib-account", "ib-user-name", "ib-password", "ib-agent-description", "ib-trading-mode"}
	case Tradier:
		return []string{"tradier-use-sandbox", "tradier-account-id", "tradier-access-token"}
	case Oanda:
		return []string{"oanda-environment", "oanda-access-token", "oanda-account-id"}
	case CoinbasePro:
		return []string{"gdax-api-secret", "gdax-api-key", "gdax-passphrase"}
	case Bitfinex:
		return []string{"bitfinex-api-secret", "bitfinex-api-key"}
	case Binance:
		return []string{"binance-api-secret", "binance-api-key"}
	case Zerodha:
		return []string{"zerodha-access-token", "zerodha-api-key", "zerodha-product-type", "zerodha-trading-segment"}
	case Bloomberg:
		return []string{"job-organization-id", "bloomberg-api-type", "bloomberg-environment",
			"bloomberg-server-host", "bloomberg-server-port", "bloomberg-emsx-broker"}
	}
	return nil
}

// LiveFeed returns the data queue handler counterpart of this brokerage.
// Paper trading has no feed of its own and pairs with any handler.
func (b Brokerage) LiveFeed() (DataQueueHandler, bool) {
	switch b {
	case InteractiveBrokers:
		return InteractiveBrokersFeed, true
	case Tradier:
		return TradierFeed, true
	case Oanda:
		return OandaFeed, true
	case CoinbasePro:
		return CoinbaseProFeed, true
	case Bitfinex:
		return BitfinexFeed, true
	case Binance:
		return BinanceFeed, true
	case Zerodha:
		return ZerodhaFeed, true
	case Bloomberg:
		return BloombergFeed, true
	}
	return 0, false
}

// ID returns the canonical identifier written into the configuration
// document as data-queue-handler.
func (d DataQueueHandler) ID() string {
	switch d {
	case InteractiveBrokersFeed:
		return "QuantConnect.Brokerages.InteractiveBrokers.InteractiveBrokersBrokerage"
	case TradierFeed:
		return "TradierBrokerage"
	case OandaFeed:
		return "OandaBrokerage"
	case CoinbaseProFeed:
		return "GDAXDataQueueHandler"
	case BitfinexFeed:
		return "BitfinexBrokerage"
	case BinanceFeed:
		return "BinanceBrokerage"
	case ZerodhaFeed:
		return "ZerodhaBrokerage"
	case BloombergFeed:
		return "BloombergBrokerage"
	case IQFeed:
		return "QuantConnect.ToolBox.IQFeed.IQFeedDataQueueHandler"
	}
	return ""
}

// DisplayName returns the human-readable name used on the CLI surface.
func (d DataQueueHandler) DisplayName() string {
	switch d {
	case InteractiveBrokersFeed:
		return "Interactive Brokers"
	case TradierFeed:
		return "Tradier"
	case OandaFeed:
		return "OANDA"
	case CoinbaseProFeed:
		return "Coinbase Pro"
	case BitfinexFeed:
		return "Bitfinex"
	case BinanceFeed:
		return "Binance"
	case ZerodhaFeed:
		return "Zerodha"
	case BloombergFeed:
		return "Bloomberg"
	case IQFeed:
		return "IQFeed"
	}
	return ""
}

// RequiredProperties returns the configuration keys this data queue handler
// requires. For handlers backed by a brokerage this is the brokerage's list,
// possibly extended with feed-only keys.
func (d DataQueueHandler) RequiredProperties() []string {
	switch d {
	case InteractiveBrokersFeed:
		return append(InteractiveBrokers.RequiredProperties(), "ib-enable-delayed-streaming-data")
	case TradierFeed:
		return Tradier.RequiredProperties()
	case OandaFeed:
		return Oanda.RequiredProperties()
	case CoinbaseProFeed:
		return CoinbasePro.RequiredProperties()
	case BitfinexFeed:
		return Bitfinex.RequiredProperties()
	case BinanceFeed:
		return Binance.RequiredProperties()
	case ZerodhaFeed:
		return append(Zerodha.RequiredProperties(), "zerodha-history-subscription")
	case BloombergFeed:
		return Bloomberg.RequiredProperties()
	case IQFeed:
		return []string{"iqfeed-iqconnect", "iqfeed-productName", "iqfeed-version"}
	}
	return nil
}

// Brokerage returns the brokerage counterpart of a data queue handler, when
// one exists. IQFeed is feed-only.
func (d DataQueueHandler) Brokerage() (Brokerage, bool) {
	for _, b := range Brokerages() {
		if feed, ok := b.LiveFeed(); ok && feed == d {
			return b, true
		}
	}
	return 0, false
}

// Brokerages lists every supported brokerage in wizard display order.
func Brokerages() []Brokerage {
	return []Brokerage{PaperTrading, InteractiveBrokers, Tradier, Oanda, CoinbasePro,
		Bitfinex, Binance, Zerodha, Bloomberg}
}

// DataQueueHandlers lists every supported data queue handler.
func DataQueueHandlers() []DataQueueHandler {
	return []DataQueueHandler{InteractiveBrokersFeed, TradierFeed, OandaFeed, CoinbaseProFeed,
		BitfinexFeed, BinanceFeed, ZerodhaFeed, BloombergFeed, IQFeed}
}

// FeedsFor returns the data queue handlers that can pair with a brokerage.
// Paper trading places no orders through the feed, so any handler works.
func FeedsFor(b Brokerage) []DataQueueHandler {
	if b == PaperTrading {
		return DataQueueHandlers()
	}
	if feed, ok := b.LiveFeed(); ok {
		return []DataQueueHandler{feed}
	}
	return nil
}

// BrokerageByName resolves a display name to a brokerage identity.
func BrokerageByName(name string) (Brokerage, bool) {
	for _, b := range Brokerages() {
		if b.DisplayName() == name {
			return b, true
		}
	}
	return 0, false
}

// DataQueueHandlerByName resolves a display name to a handler identity.
func DataQueueHandlerByName(name string) (DataQueueHandler, bool) {
	for _, d := range DataQueueHandlers() {
		if d.DisplayName() == name {
			return d, true
		}
	}
	return 0, false
}

// BrokerageRequirements returns the required properties for a brokerage
// identifier. Unknown identifiers yield an empty list, never an error.
func BrokerageRequirements(id string) []string {
	for _, b := range Brokerages() {
		if b.ID() == id {
			return b.RequiredProperties()
		}
	}
	return nil
}

// DataQueueHandlerRequirements returns the required properties for a data
// queue handler identifier. Unknown identifiers yield an empty list.
func DataQueueHandlerRequirements(id string) []string {
	for _, d := range DataQueueHandlers() {
		if d.ID() == id {
			return d.RequiredProperties()
		}
	}
	return nil
}
