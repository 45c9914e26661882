package registry

// Option describes a single CLI credential flag and the configuration key it
// populates. The command layer generates its brokerage flags from these
// tables instead of hand-wiring each one.
type Option struct {
	Flag string // CLI flag name, e.g. "oanda-account-id"
	Key  string // configuration document key the value is stored under
	Help string
}

// Options returns the credential options this brokerage collects. The flag
// and key names line up with RequiredProperties; extra optional keys may
// appear after the required ones.
func (b Brokerage) Options() []Option {
	switch b {
	case InteractiveBrokers:
		return []Option{
			{Flag: "ib-user-name", Key: "ib-user-name", Help: "Your Interactive Brokers username"},
			{Flag: "ib-account", Key: "ib-account", Help: "Your Interactive Brokers account id"},
			{Flag: "ib-password", Key: "ib-password", Help: "Your Interactive Brokers password"},
			{Flag: "ib-agent-description", Key: "ib-agent-description", Help: "The description of the Interactive Brokers agent"},
			{Flag: "ib-trading-mode", Key: "ib-trading-mode", Help: "paper or live"},
		}
	case Tradier:
		return []Option{
			{Flag: "tradier-account-id", Key: "tradier-account-id", Help: "Your Tradier account id"},
			{Flag: "tradier-access-token", Key: "tradier-access-token", Help: "Your Tradier access token"},
			{Flag: "tradier-use-sandbox", Key: "tradier-use-sandbox", Help: "Whether the developer sandbox should be used"},
		}
	case Oanda:
		return []Option{
			{Flag: "oanda-account-id", Key: "oanda-account-id", Help: "Your OANDA account id"},
			{Flag: "oanda-access-token", Key: "oanda-access-token", Help: "Your OANDA API token"},
			{Flag: "oanda-environment", Key: "oanda-environment", Help: "Practice for fxTrade Practice, Trade for fxTrade"},
		}
	case CoinbasePro:
		return []Option{
			{Flag: "gdax-api-key", Key: "gdax-api-key", Help: "Your Coinbase Pro API key"},
			{Flag: "gdax-api-secret", Key: "gdax-api-secret", Help: "Your Coinbase Pro API secret"},
			{Flag: "gdax-passphrase", Key: "gdax-passphrase", Help: "Your Coinbase Pro API passphrase"},
		}
	case Bitfinex:
		return []Option{
			{Flag: "bitfinex-api-key", Key: "bitfinex-api-key", Help: "Your Bitfinex API key"},
			{Flag: "bitfinex-api-secret", Key: "bitfinex-api-secret", Help: "Your Bitfinex API secret"},
		}
	case Binance:
		return []Option{
			{Flag: "binance-api-key", Key: "binance-api-key", Help: "Your Binance API key"},
			{Flag: "binance-api-secret", Key: "binance-api-secret", Help: "Your Binance API secret"},
		}
	case Zerodha:
		return []Option{
			{Flag: "zerodha-api-key", Key: "zerodha-api-key", Help: "Your Kite Connect API key"},
			{Flag: "zerodha-access-token", Key: "zerodha-access-token", Help: "Your Kite Connect access token"},
			{Flag: "zerodha-product-type", Key: "zerodha-product-type", Help: "MIS, CNC or NRML"},
			{Flag: "zerodha-trading-segment", Key: "zerodha-trading-segment", Help: "EQUITY or COMMODITY"},
		}
	case Bloomberg:
		return []Option{
			{Flag: "bloomberg-organization", Key: "job-organization-id", Help: "The name or id of the organization with the Bloomberg module subscription"},
			{Flag: "bloomberg-api-type", Key: "bloomberg-api-type", Help: "Desktop, Server or Bpipe"},
			{Flag: "bloomberg-environment", Key: "bloomberg-environment", Help: "Production or Beta"},
			{Flag: "bloomberg-server-host", Key: "bloomberg-server-host", Help: "The host of the Bloomberg server"},
			{Flag: "bloomberg-server-port", Key: "bloomberg-server-port", Help: "The port of the Bloomberg server"},
			{Flag: "bloomberg-emsx-broker", Key: "bloomberg-emsx-broker", Help: "The EMSX broker to use"},
		}
	}
	return nil
}

// Options returns the feed-only credential options a data queue handler adds
// on top of its brokerage counterpart.
func (d DataQueueHandler) Options() []Option {
	switch d {
	case InteractiveBrokersFeed:
		return []Option{
			{Flag: "ib-enable-delayed-streaming-data", Key: "ib-enable-delayed-streaming-data", Help: "Whether delayed data may be used when no market data subscription exists"},
		}
	case ZerodhaFeed:
		return []Option{
			{Flag: "zerodha-history-subscription", Key: "zerodha-history-subscription", Help: "Whether you have a history API subscription for Zerodha"},
		}
	case IQFeed:
		return []Option{
			{Flag: "iqfeed-iqconnect", Key: "iqfeed-iqconnect", Help: "The path to the IQConnect binary"},
			{Flag: "iqfeed-username", Key: "iqfeed-username", Help: "Your IQFeed username"},
			{Flag: "iqfeed-password", Key: "iqfeed-password", Help: "Your IQFeed password"},
			{Flag: "iqfeed-product-name", Key: "iqfeed-productName", Help: "The product name of your IQFeed developer account"},
			{Flag: "iqfeed-version", Key: "iqfeed-version", Help: "The product version of your IQFeed developer account"},
		}
	}
	return nil
}
