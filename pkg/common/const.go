package common

const (
	// KEY_CHART_CONFIG caches a built frontend config by spec hash.
	KEY_CHART_CONFIG = "chart_config:%s"
	// KEY_MARKET_DATA caches fetched candles by exchange, symbol, range and interval.
	KEY_MARKET_DATA = "market_data:%s:%s:%s:%s"
)

const (
	EXCHANGE_BINANCE = "BINANCE"
	EXCHANGE_YAHOO   = "YAHOO"
)

func GetExchangeList() []string {
	return []string{
		EXCHANGE_BINANCE,
		EXCHANGE_YAHOO,
	}
}

// Kinds of saved charts.
const (
	CHART_KIND_SPEC   = "spec"
	CHART_KIND_MARKET = "market"
)
