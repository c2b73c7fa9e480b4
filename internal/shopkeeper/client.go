// Package shopkeeper implements an autonomous player for the toy-shop
// API. Each day it observes the game state, probes demand estimates at
// candidate prices, decides a production and pricing plan, and submits
// the round.
package shopkeeper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/talgya/toyshop/internal/game"
)

// Client talks to a running toyshopd instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client targeting the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GameView mirrors the game object returned by the API.
type GameView struct {
	ID             string        `json:"id"`
	Phase          string        `json:"phase"`
	Round          int           `json:"round"`
	Rounds         int           `json:"rounds"`
	Cash           float64       `json:"cash"`
	Inventory      int           `json:"inventory"`
	ProductionCost int           `json:"production_cost"`
	MaxProduce     int           `json:"max_produce"`
	MinPrice       float64       `json:"min_price"`
	Scenario       game.Scenario `json:"scenario"`
	AverageCost    float64       `json:"average_inventory_cost"`
}

// Estimate mirrors GET /api/v1/games/{id}/estimate.
type Estimate struct {
	Price          float64 `json:"price"`
	ExpectedDemand int     `json:"expected_demand"`
	AverageCost    float64 `json:"average_inventory_cost"`
	MaxProduce     int     `json:"max_produce"`
}

// RoundResult mirrors POST /api/v1/games/{id}/rounds.
type RoundResult struct {
	Record     game.Record `json:"record"`
	DaySummary string      `json:"day_summary"`
	Finished   bool        `json:"finished"`
	Game       GameView    `json:"game"`
}

// SummaryResult mirrors GET /api/v1/games/{id}/summary.
type SummaryResult struct {
	Summary game.Summary      `json:"summary"`
	Display map[string]string `json:"display"`
}

// StartGame creates a new game. A nil cfg plays the server defaults.
func (c *Client) StartGame(cfg *game.Configuration) (GameView, error) {
	var body io.Reader
	if cfg != nil {
		raw, err := json.Marshal(cfg)
		if err != nil {
			return GameView{}, fmt.Errorf("marshal configuration: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	var view GameView
	if err := c.do(http.MethodPost, "/api/v1/games", body, http.StatusCreated, &view); err != nil {
		return GameView{}, err
	}
	return view, nil
}

// Observe fetches the current state of a game.
func (c *Client) Observe(id string) (GameView, error) {
	var view GameView
	if err := c.do(http.MethodGet, "/api/v1/games/"+id, nil, http.StatusOK, &view); err != nil {
		return GameView{}, err
	}
	return view, nil
}

// Estimate previews demand at a candidate price.
func (c *Client) Estimate(id string, price float64) (Estimate, error) {
	path := fmt.Sprintf("/api/v1/games/%s/estimate?price=%g", id, price)
	var est Estimate
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &est); err != nil {
		return Estimate{}, err
	}
	return est, nil
}

// PlayRound submits one day's production and price.
func (c *Client) PlayRound(id string, produceQty int, price float64) (RoundResult, error) {
	raw, err := json.Marshal(map[string]any{
		"produce_qty": produceQty,
		"price":       price,
	})
	if err != nil {
		return RoundResult{}, fmt.Errorf("marshal round: %w", err)
	}

	var result RoundResult
	if err := c.do(http.MethodPost, "/api/v1/games/"+id+"/rounds", bytes.NewReader(raw), http.StatusOK, &result); err != nil {
		return RoundResult{}, err
	}
	return result, nil
}

// Summary fetches the end-of-game income statement.
func (c *Client) Summary(id string) (SummaryResult, error) {
	var sum SummaryResult
	if err := c.do(http.MethodGet, "/api/v1/games/"+id+"/summary", nil, http.StatusOK, &sum); err != nil {
		return SummaryResult{}, err
	}
	return sum, nil
}

func (c *Client) do(method, path string, body io.Reader, wantStatus int, out any) error {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s failed (%d): %s", method, path, resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
