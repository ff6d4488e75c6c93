package dto

// BinanceKlines represents a single kline/candlestick from Binance.
type BinanceKlines struct {
	OpenTime         int64   `json:"openTime"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	Close            float64 `json:"close"`
	Volume           float64 `json:"volume"`
	CloseTime        int64   `json:"closeTime"`
	QuoteAssetVolume float64 `json:"quoteAssetVolume"`
	NumberOfTrades   int64   `json:"numberOfTrades"`
}

// BinancePrice represents the price of a symbol.
type BinancePrice struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}
