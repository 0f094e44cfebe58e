// Package ml talks to an external model-serving endpoint that
// classifies the next move of a symbol. The engine works without it;
// every failure here degrades to "no prediction".
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"signalcipher-backend/internal/domain"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Closes    []float64 `json:"closes"`
	Volumes   []float64 `json:"volumes"`
}

type predictResponse struct {
	PredictedClass int     `json:"predicted_class"`
	Probability    float64 `json:"probability"`
}

// Predict sends the recent close and volume history to the model and
// returns its class and probability.
func (c *Client) Predict(ctx context.Context, symbol, timeframe string, series domain.CandleSeries) (*domain.MLPrediction, error) {
	payload, err := json.Marshal(predictRequest{
		Symbol:    symbol,
		Timeframe: timeframe,
		Closes:    series.Closes(),
		Volumes:   series.Volumes(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service error: %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &domain.MLPrediction{
		PredictedClass: out.PredictedClass,
		Probability:    out.Probability,
	}, nil
}
