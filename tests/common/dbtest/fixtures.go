//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", shared by every seeded account.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestStaff(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	staffID := uuid.New()
	ctx := context.Background()
	now := time.Now().UTC()

	tag, err := db.Exec(ctx, `
		INSERT INTO staff (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $6)
		ON CONFLICT (email) DO NOTHING`,
		staffID, "Test Staff", email, testPasswordHash, role, now)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM staff WHERE email = $1", email).Scan(&staffID)
	}

	return staffID
}

func CreateTestGuest(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	ctx := context.Background()
	now := time.Now().UTC()

	tag, err := db.Exec(ctx, `
		INSERT INTO guests (id, first_name, last_name, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $6)
		ON CONFLICT (email) DO NOTHING`,
		guestID, "Ada", "Lovelace", email, "+1-555-0100", now)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM guests WHERE email = $1", email).Scan(&guestID)
	}

	return guestID
}

func CreateTestRoom(t *testing.T, db DBLike, number string, capacity int, nightlyRateCents int64) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()
	now := time.Now().UTC()

	tag, err := db.Exec(ctx, `
		INSERT INTO rooms (id, number, room_type, floor, capacity, nightly_rate_cents, status, is_active, created_at, updated_at)
		VALUES ($1, $2, 'double', 2, $3, $4, 'available', true, $5, $5)
		ON CONFLICT (number) DO NOTHING`,
		roomID, number, capacity, nightlyRateCents, now)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM rooms WHERE number = $1", number).Scan(&roomID)
	}

	return roomID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := pool.Exec(ctx, `
		INSERT INTO staff (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Default Admin', 'admin@example.com', $1, 'admin', true, $2, $2)
		ON CONFLICT (email) DO NOTHING`,
		testPasswordHash, now)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
