// README: Puppy store backed by PostgreSQL.
package availability

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the puppies table through a pgx pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListAvailable selects available puppies ordered by birth date, oldest first.
// Rows with no birth date sort last, as PostgREST does for ascending orders.
func (s *PostgresStore) ListAvailable(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT puppy_name, call_name, sex, color, pattern, price::float8, dob, status
		FROM puppies
		WHERE status = $1
		ORDER BY dob ASC NULLS LAST`, StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("query puppies: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.PuppyName, &it.CallName, &it.Sex, &it.Color, &it.Pattern,
			&it.Price, &it.BornOn, &it.Status,
		); err != nil {
			return nil, fmt.Errorf("scan puppy: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate puppies: %w", err)
	}
	return items, nil
}
