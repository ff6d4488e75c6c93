package dto

// OHLCV is one bar of market data. Timestamp is in seconds since the epoch.
type OHLCV struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type MarketData struct {
	Symbol      string  `json:"symbol"`
	Exchange    string  `json:"exchange"`
	MarketPrice float64 `json:"market_price"`
	Range       string  `json:"range"`
	Interval    string  `json:"interval"`
	OHLCV       []OHLCV `json:"ohlcv"`
}

type GetMarketDataParam struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
	Limit    int    `json:"limit"`
}

// Yahoo Finance API Response
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
