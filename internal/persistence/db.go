// Package persistence keeps an append-only SQLite ledger of played rounds
// and finished games. The ledger is audit output for analysis; running
// games are never restored from it.
package persistence

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/toyshop/internal/game"
)

// DB wraps a SQLite connection for the round ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		production_cost INTEGER NOT NULL,
		produced INTEGER NOT NULL,
		price REAL NOT NULL,
		demand INTEGER NOT NULL,
		sales INTEGER NOT NULL,
		revenue REAL NOT NULL,
		spent REAL NOT NULL,
		cogs REAL NOT NULL,
		round_profit REAL NOT NULL,
		cash_after REAL NOT NULL,
		inventory_after INTEGER NOT NULL,
		inventory_value REAL NOT NULL,
		inventory_cost REAL NOT NULL,
		cumulative_profit REAL NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS games (
		game_id TEXT PRIMARY KEY,
		rounds INTEGER NOT NULL,
		starting_cash REAL NOT NULL,
		final_cash REAL NOT NULL,
		cash_profit REAL NOT NULL,
		inventory_on_hand INTEGER NOT NULL,
		inventory_cost REAL NOT NULL,
		total_value_created REAL NOT NULL,
		verdict TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// AppendRound writes one completed round for the given game.
func (db *DB) AppendRound(gameID string, rec game.Record) error {
	_, err := db.conn.Exec(`
		INSERT INTO rounds (
			game_id, round, scenario, production_cost, produced, price,
			demand, sales, revenue, spent, cogs, round_profit,
			cash_after, inventory_after, inventory_value, inventory_cost,
			cumulative_profit, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, rec.Round, rec.Scenario, rec.ProductionCost, rec.Produced, rec.Price,
		rec.Demand, rec.Sales, rec.Revenue, rec.Spent, rec.COGS, rec.RoundProfit,
		rec.CashAfter, rec.InventoryAfter, rec.InventoryValue, rec.InventoryCost,
		rec.CumulativeProfit, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append round: %w", err)
	}
	return nil
}

// FinishGame writes the end-of-game summary row.
func (db *DB) FinishGame(gameID string, cfg game.Configuration, sum game.Summary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO games (
			game_id, rounds, starting_cash, final_cash, cash_profit,
			inventory_on_hand, inventory_cost, total_value_created,
			verdict, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, cfg.Rounds, sum.StartingCash, sum.FinalCash, sum.CashProfit,
		sum.InventoryOnHand, sum.InventoryCost, sum.TotalValueCreated,
		sum.Verdict, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	return nil
}

// Counts returns how many rounds and finished games the ledger holds.
func (db *DB) Counts() (rounds, games int, err error) {
	if err = db.conn.Get(&rounds, "SELECT COUNT(*) FROM rounds"); err != nil {
		return 0, 0, fmt.Errorf("count rounds: %w", err)
	}
	if err = db.conn.Get(&games, "SELECT COUNT(*) FROM games"); err != nil {
		return 0, 0, fmt.Errorf("count games: %w", err)
	}
	return rounds, games, nil
}

// GameRounds loads the recorded rounds for one game, in round order.
// Used by reporting, not by gameplay.
func (db *DB) GameRounds(gameID string) ([]game.Record, error) {
	rows, err := db.conn.Queryx(`
		SELECT round, scenario, production_cost, produced, price, demand,
		       sales, revenue, spent, cogs, round_profit, cash_after,
		       inventory_after, inventory_value, inventory_cost, cumulative_profit
		FROM rounds WHERE game_id = ? ORDER BY round`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	defer rows.Close()

	var recs []game.Record
	for rows.Next() {
		var r game.Record
		if err := rows.Scan(
			&r.Round, &r.Scenario, &r.ProductionCost, &r.Produced, &r.Price, &r.Demand,
			&r.Sales, &r.Revenue, &r.Spent, &r.COGS, &r.RoundProfit, &r.CashAfter,
			&r.InventoryAfter, &r.InventoryValue, &r.InventoryCost, &r.CumulativeProfit,
		); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
