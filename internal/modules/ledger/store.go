// README: Ledger store on database/sql (pgx stdlib driver) for saved profit simulations.
package ledger

import (
	"context"
	"database/sql"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (
			id, label, distance_km, mileage, fuel_price, toll, other_expense,
			revenue, fuel_cost, expense, profit, margin_pct, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID.String(), e.TripType, e.DistanceKm, e.Mileage, e.FuelPrice, e.Toll, e.OtherExpense,
		e.Revenue, e.FuelCost, e.Expense, e.Profit, e.MarginPct, e.CreatedAt,
	)
	return err
}

// List returns saved entries newest first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, distance_km, mileage, fuel_price, toll, other_expense,
		       revenue, fuel_cost, expense, profit, margin_pct, created_at
		FROM ledger_entries
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.TripType, &e.DistanceKm, &e.Mileage, &e.FuelPrice, &e.Toll, &e.OtherExpense,
			&e.Revenue, &e.FuelCost, &e.Expense, &e.Profit, &e.MarginPct, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Details = e.Simulation.Details()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ledger_entries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(revenue), 0), COALESCE(SUM(expense), 0), COALESCE(SUM(profit), 0)
		FROM ledger_entries`,
	).Scan(&sum.Trips, &sum.Revenue, &sum.Expense, &sum.Profit)
	return sum, err
}
