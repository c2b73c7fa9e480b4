package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talgya/toyshop/internal/game"
)

// zeroSource always draws 0, pinning production cost to the configured
// minimum and the scenario to Catalog[0] (Holiday Season, 1.8x).
type zeroSource struct{}

func (zeroSource) Float() float64 { return 0 }

func newTestServer(t *testing.T, adminKey string) *httptest.Server {
	t.Helper()
	srv := &Server{
		Defaults: game.DefaultConfiguration(),
		Rand:     zeroSource{},
		AdminKey: adminKey,
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode %s: %v", string(raw), err)
	}
}

type roundResponse struct {
	Record     game.Record `json:"record"`
	DaySummary string      `json:"day_summary"`
	Finished   bool        `json:"finished"`
	Game       gameView    `json:"game"`
}

func startGame(t *testing.T, ts *httptest.Server, body string) gameView {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/games", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game status = %d, want 201", resp.StatusCode)
	}
	var view gameView
	decode(t, resp, &view)
	return view
}

func TestGameFlow(t *testing.T) {
	ts := newTestServer(t, "")

	view := startGame(t, ts, `{"rounds": 1, "min_cost": 10, "max_cost": 10}`)
	if view.Phase != "active" || view.Round != 1 {
		t.Fatalf("new game phase/round = %s/%d, want active/1", view.Phase, view.Round)
	}
	if view.ProductionCost != 10 {
		t.Fatalf("production cost = %d, want 10", view.ProductionCost)
	}
	if view.Scenario.Name != "Holiday Season" {
		t.Fatalf("scenario = %q, want Holiday Season", view.Scenario.Name)
	}
	if view.MaxProduce != 20 {
		t.Fatalf("max produce = %d, want 20", view.MaxProduce)
	}

	// Demand preview at $15 under the 1.8x scenario: 60 - 2*1.8*15 = 6.
	var est struct {
		ExpectedDemand int `json:"expected_demand"`
	}
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/games/%s/estimate?price=15", ts.URL, view.ID))
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	decode(t, resp, &est)
	if est.ExpectedDemand != 6 {
		t.Fatalf("expected demand = %d, want 6", est.ExpectedDemand)
	}

	// Absurd inputs are clamped by the host shell: quantity to the
	// affordable maximum, price up to the minimum.
	resp, err = http.Post(ts.URL+"/api/v1/games/"+view.ID+"/rounds", "application/json",
		strings.NewReader(`{"produce_qty": 1000, "price": 1}`))
	if err != nil {
		t.Fatalf("play round: %v", err)
	}
	var round roundResponse
	decode(t, resp, &round)
	if round.Record.Produced != 20 {
		t.Fatalf("produced = %d, want 20 (clamped)", round.Record.Produced)
	}
	if round.Record.Price != 10 {
		t.Fatalf("price = %v, want 10 (clamped)", round.Record.Price)
	}
	if round.Record.Sales != 20 {
		t.Fatalf("sales = %d, want 20", round.Record.Sales)
	}
	if !round.Finished {
		t.Fatal("one-round game not finished")
	}
	if round.DaySummary == "" {
		t.Fatal("missing day summary")
	}

	// A finished game rejects further rounds.
	resp, err = http.Post(ts.URL+"/api/v1/games/"+view.ID+"/rounds", "application/json",
		strings.NewReader(`{"produce_qty": 0, "price": 10}`))
	if err != nil {
		t.Fatalf("replay round: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("round after finish status = %d, want 409", resp.StatusCode)
	}

	var sum struct {
		Summary game.Summary      `json:"summary"`
		Display map[string]string `json:"display"`
	}
	resp, err = http.Get(ts.URL + "/api/v1/games/" + view.ID + "/summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	decode(t, resp, &sum)
	if got := sum.Summary.CashProfit + sum.Summary.InventoryCost; sum.Summary.TotalValueCreated != got {
		t.Fatalf("total value created = %v, want %v", sum.Summary.TotalValueCreated, got)
	}
	if sum.Display["final_cash"] == "" {
		t.Fatal("missing display strings")
	}

	// Abandon.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/games/"+view.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete game: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, err = http.Get(ts.URL + "/api/v1/games/" + view.ID)
	if err != nil {
		t.Fatalf("get deleted game: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted game status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateGame_RejectsBadConfiguration(t *testing.T) {
	ts := newTestServer(t, "")
	resp, err := http.Post(ts.URL+"/api/v1/games", "application/json",
		strings.NewReader(`{"min_cost": 20, "max_cost": 10}`))
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestSummary_ConflictWhileActive(t *testing.T) {
	ts := newTestServer(t, "")
	view := startGame(t, ts, `{"rounds": 2}`)

	resp, err := http.Get(ts.URL + "/api/v1/games/" + view.ID + "/summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("summary mid-game status = %d, want 409", resp.StatusCode)
	}
}

func TestEstimate_RequiresPrice(t *testing.T) {
	ts := newTestServer(t, "")
	view := startGame(t, ts, "")

	resp, err := http.Get(ts.URL + "/api/v1/games/" + view.ID + "/estimate")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("estimate without price status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownGame(t *testing.T) {
	ts := newTestServer(t, "")
	resp, err := http.Get(ts.URL + "/api/v1/games/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown game status = %d, want 404", resp.StatusCode)
	}
}

func TestScenarios(t *testing.T) {
	ts := newTestServer(t, "")
	resp, err := http.Get(ts.URL + "/api/v1/scenarios")
	if err != nil {
		t.Fatalf("scenarios: %v", err)
	}
	var payload struct {
		Scenarios []game.Scenario `json:"scenarios"`
	}
	decode(t, resp, &payload)
	if len(payload.Scenarios) != 10 {
		t.Fatalf("catalog size = %d, want 10", len(payload.Scenarios))
	}
}

func TestLedgerAuth(t *testing.T) {
	// No admin key configured: endpoint is disabled outright.
	ts := newTestServer(t, "")
	resp, err := http.Get(ts.URL + "/api/v1/ledger/some-game")
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("ledger without admin key status = %d, want 403", resp.StatusCode)
	}

	// Key configured: wrong bearer is rejected.
	ts = newTestServer(t, "sekrit")
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/ledger/some-game", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("ledger with bad token status = %d, want 401", resp.StatusCode)
	}
}
