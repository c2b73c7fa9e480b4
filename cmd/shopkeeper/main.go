// Command shopkeeper is an autonomous player for the toy-shop API. It
// starts games against a running toyshopd, plays every day with a simple
// margin-maximizing strategy, and logs the income statement at the end.
package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/toyshop/internal/shopkeeper"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	apiURL := envOrDefault("TOYSHOP_API_URL", "http://localhost:8080")
	games := envIntOrDefault("SHOPKEEPER_GAMES", 1)

	slog.Info("Shopkeeper starting", "api_url", apiURL, "games", games)

	client := shopkeeper.NewClient(apiURL)
	for i := 0; i < games; i++ {
		if err := playGame(client); err != nil {
			slog.Error("game failed", "error", err)
			os.Exit(1)
		}
	}
}

// playGame runs one complete game: observe, decide, play, repeat.
func playGame(client *shopkeeper.Client) error {
	view, err := client.StartGame(nil)
	if err != nil {
		return err
	}
	slog.Info("game started",
		"game", view.ID,
		"rounds", view.Rounds,
		"cash", humanize.CommafWithDigits(view.Cash, 0),
	)

	for view.Phase == "active" {
		plan, err := shopkeeper.Decide(view, func(price float64) (shopkeeper.Estimate, error) {
			return client.Estimate(view.ID, price)
		})
		if err != nil {
			return err
		}
		slog.Info("plan",
			"day", view.Round,
			"scenario", view.Scenario.Name,
			"produce", plan.ProduceQty,
			"price", plan.Price,
			"rationale", plan.Rationale,
		)

		result, err := client.PlayRound(view.ID, plan.ProduceQty, plan.Price)
		if err != nil {
			return err
		}
		slog.Info("day settled", "summary", result.DaySummary)
		view = result.Game
	}

	sum, err := client.Summary(view.ID)
	if err != nil {
		return err
	}
	slog.Info("game over",
		"game", view.ID,
		"verdict", sum.Summary.Verdict,
		"cash_profit", sum.Display["cash_profit"],
		"total_value_created", sum.Display["total_value_created"],
	)
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
