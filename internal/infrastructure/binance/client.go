package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"signalcipher-backend/internal/domain"
)

const FapiBaseURL = "https://fapi.binance.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = FapiBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type ExchangeInfo struct {
	Symbols []SymbolInfo `json:"symbols"`
}

type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

type Ticker24h struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	QuoteVolume        string `json:"quoteVolume"`
}

// ActiveSymbols returns symbols with status "TRADING" on the Futures
// API that also trade on the futures ticker, ordered by 24h quote
// volume descending so callers scanning a subset hit the liquid
// markets first.
func (c *Client) ActiveSymbols(ctx context.Context) ([]string, error) {
	var info ExchangeInfo
	if err := c.getJSON(ctx, "/fapi/v1/exchangeInfo", &info); err != nil {
		return nil, err
	}

	var tickers []Ticker24h
	if err := c.getJSON(ctx, "/fapi/v1/ticker/24hr", &tickers); err != nil {
		return nil, err
	}

	volume := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		if v, err := strconv.ParseFloat(t.QuoteVolume, 64); err == nil {
			volume[t.Symbol] = v
		}
	}

	var active []string
	for _, s := range info.Symbols {
		if s.Status != "TRADING" {
			continue
		}
		if _, ok := volume[s.Symbol]; ok {
			active = append(active, s.Symbol)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return volume[active[i]] > volume[active[j]]
	})
	return active, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("binance API error: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchCandles returns up to limit candles for one symbol and interval,
// oldest first.
// Binance returns: [ [open_time, open, high, low, close, volume, ...], ... ]
// where prices and volume are strings.
func (c *Client) FetchCandles(ctx context.Context, symbol, interval string, limit int) (domain.CandleSeries, error) {
	path := fmt.Sprintf("/fapi/v1/klines?symbol=%s&interval=%s&limit=%d", symbol, interval, limit)
	var klines [][]interface{}
	if err := c.getJSON(ctx, path, &klines); err != nil {
		return nil, err
	}

	series := make(domain.CandleSeries, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}
		openTime, ok := k[0].(float64)
		if !ok {
			continue
		}
		o, err1 := parseValue(k[1])
		h, err2 := parseValue(k[2])
		l, err3 := parseValue(k[3])
		cl, err4 := parseValue(k[4])
		v, err5 := parseValue(k[5])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		series = append(series, domain.Candle{
			OpenTime: int64(openTime),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    cl,
			Volume:   v,
		})
	}
	return series, nil
}

func parseValue(v interface{}) (float64, error) {
	switch val := v.(type) {
	case string:
		return strconv.ParseFloat(val, 64)
	case float64:
		return val, nil
	}
	return 0, fmt.Errorf("unexpected kline field type %T", v)
}
