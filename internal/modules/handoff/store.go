// README: Handoff log backed by PostgreSQL.
package handoff

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, r Record) error {
	var promo *string
	if r.Payload.PromoCode != "" {
		promo = &r.Payload.PromoCode
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO handoffs (
			id, session_id, channel, mode, trip_type, pickup,
			passengers, final_price, surge_applied, promo_code,
			rates_version, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12
		)`,
		r.ID, r.SessionID, string(r.Channel), string(r.Payload.Mode), string(r.Payload.TripType), r.Payload.Pickup,
		r.Payload.Passengers, r.Payload.FinalPrice, r.Payload.SurgeApplied, promo,
		r.RatesVersion, r.CreatedAt,
	)
	return err
}

// Recent returns the latest handoffs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, channel, mode, trip_type, pickup,
		       passengers, final_price, surge_applied, COALESCE(promo_code, ''),
		       rates_version, created_at
		FROM handoffs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Channel, &r.Payload.Mode, &r.Payload.TripType, &r.Payload.Pickup,
			&r.Payload.Passengers, &r.Payload.FinalPrice, &r.Payload.SurgeApplied, &r.Payload.PromoCode,
			&r.RatesVersion, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
