// README: Postgres store tests (filtering and ordering against a real database).
package availability

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestPostgresStoreListAvailable verifies only Available rows come back, oldest first, undated last.
func TestPostgresStoreListAvailable(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()

	seed := `
		INSERT INTO puppies (puppy_name, call_name, sex, color, pattern, price, dob, status) VALUES
			('Younger', NULL, 'Male', 'Fawn', NULL, 1500, '2025-05-01', 'Available'),
			('Older', NULL, 'Female', 'Black', 'Tri', 2000.50, '2025-02-01', 'Available'),
			('Undated', NULL, 'Male', 'Cream', NULL, NULL, NULL, 'Available'),
			('Taken', NULL, 'Female', 'Blue', NULL, 1800, '2025-01-01', 'Sold')`
	if _, err := db.Exec(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, err := store.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 available puppies, got %d", len(items))
	}

	want := []string{"Older", "Younger", "Undated"}
	for i, name := range want {
		if items[i].PuppyName == nil || *items[i].PuppyName != name {
			t.Fatalf("items[%d] = %v, want %s", i, items[i].PuppyName, name)
		}
	}
	if items[0].Price == nil || *items[0].Price != 2000.50 {
		t.Fatalf("expected price 2000.50, got %v", items[0].Price)
	}
	if items[2].BornOn != nil || items[2].Price != nil {
		t.Fatalf("expected nil dob and price for undated puppy")
	}
}

// TestPostgresStoreEmpty verifies the service reports the empty outcome for a table with no available rows.
func TestPostgresStoreEmpty(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO puppies (puppy_name, status) VALUES ('Gone', 'Sold')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := NewService(store).Fetch(ctx)
	if res.Outcome != OutcomeEmpty {
		t.Fatalf("expected %s, got %s", OutcomeEmpty, res.Outcome)
	}
}

// setupTestStore creates a real postgres-backed store for integration tests.
// It skips the test when CHICHAT_TEST_DSN is not set.
func setupTestStore(t *testing.T) (*PostgresStore, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("CHICHAT_TEST_DSN")
	if dsn == "" {
		t.Skip("CHICHAT_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE puppies"); err != nil {
		t.Fatalf("truncate puppies: %v", err)
	}

	return NewPostgresStore(db), db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	migrations := []string{
		"0001_puppies.sql",
	}
	for _, name := range migrations {
		path := filepath.Join(root, "migrations", name)
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cleaned := stripSQLComments(string(content))
		for _, stmt := range splitSQL(cleaned) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
