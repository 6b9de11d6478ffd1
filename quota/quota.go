package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	ai "github.com/secondbrainhq/llmrouter"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUserNotFound is returned when no quota entry exists for a user.
var ErrUserNotFound = errors.New("user quota not found")

// resetPeriod is the billing period length.
const resetPeriod = 30 * 24 * time.Hour

// Limits are the per-tier monthly ceilings. A value of -1 means
// unlimited.
type Limits struct {
	TokenLimit   int64
	CostLimit    float64
	RequestLimit int64
}

// TierLimits returns the monthly limits for a tier. Unknown tiers get
// the free tier's limits.
func TierLimits(tier ai.Tier) Limits {
	switch tier {
	case ai.TierPro:
		return Limits{TokenLimit: 500_000, CostLimit: 50.0, RequestLimit: 5000}
	case ai.TierPremium:
		return Limits{TokenLimit: -1, CostLimit: 200.0, RequestLimit: -1}
	default:
		return Limits{TokenLimit: 10_000, CostLimit: 0.20, RequestLimit: 100}
	}
}

// Info is a snapshot of one user's quota state.
type Info struct {
	UserID          string    `json:"user_id"`
	Tier            ai.Tier   `json:"tier"`
	UsedTokens      int64     `json:"used_tokens"`
	TokenLimit      int64     `json:"token_limit"`
	UsedCost        float64   `json:"used_cost"`
	CostLimit       float64   `json:"cost_limit"`
	ResetDate       time.Time `json:"reset_date"`
	RemainingTokens int64     `json:"remaining_tokens"`
	RemainingCost   float64   `json:"remaining_cost"`
	PercentageUsed  float64   `json:"percentage_used"`
}

// Record is one usage_history row.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Operation  string    `json:"operation"`
	ModelUsed  string    `json:"model_used"`
	TokensUsed int64     `json:"tokens_used"`
	Cost       float64   `json:"cost"`
	Timestamp  time.Time `json:"timestamp"`
}

// TierSummary aggregates usage across all users of one tier.
type TierSummary struct {
	UserCount   int64   `json:"user_count"`
	TotalTokens int64   `json:"total_tokens"`
	TotalCost   float64 `json:"total_cost"`
	AvgTokens   float64 `json:"avg_tokens"`
	AvgCost     float64 `json:"avg_cost"`
}

// Manager owns the quota database.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS user_quotas (
	user_id     TEXT PRIMARY KEY,
	tier        TEXT NOT NULL,
	used_tokens INTEGER DEFAULT 0,
	token_limit INTEGER NOT NULL,
	used_cost   REAL DEFAULT 0.0,
	cost_limit  REAL NOT NULL,
	reset_date  TEXT NOT NULL,
	created_at  TEXT DEFAULT CURRENT_TIMESTAMP,
	updated_at  TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS usage_history (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	operation   TEXT NOT NULL,
	model_used  TEXT NOT NULL,
	tokens_used INTEGER NOT NULL,
	cost        REAL NOT NULL,
	timestamp   TEXT DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES user_quotas (user_id)
);

CREATE INDEX IF NOT EXISTS idx_usage_history_user
	ON usage_history (user_id, timestamp);
`

// Open opens (creating if needed) the quota database at path.
func Open(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open quota database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize quota schema: %w", err)
	}
	return &Manager{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}

// EnsureUser creates (or resets to fresh) a quota entry for a user at
// the given tier and returns the resulting snapshot.
func (m *Manager) EnsureUser(ctx context.Context, userID string, tier ai.Tier) (*Info, error) {
	limits := TierLimits(tier)
	now := m.now()
	resetDate := now.Add(resetPeriod)

	_, err := m.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_quotas
		(user_id, tier, used_tokens, token_limit, used_cost, cost_limit, reset_date, updated_at)
		VALUES (?, ?, 0, ?, 0.0, ?, ?, ?)`,
		userID, tier.String(), limits.TokenLimit, limits.CostLimit,
		resetDate.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("create user quota: %w", err)
	}
	return m.Get(ctx, userID)
}

// Get returns the current quota snapshot for a user, rolling the
// billing period over first if its reset date has passed.
func (m *Manager) Get(ctx context.Context, userID string) (*Info, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT user_id, tier, used_tokens, token_limit, used_cost, cost_limit, reset_date
		FROM user_quotas WHERE user_id = ?`, userID)

	var info Info
	var tier, resetDate string
	err := row.Scan(&info.UserID, &tier, &info.UsedTokens, &info.TokenLimit,
		&info.UsedCost, &info.CostLimit, &resetDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read user quota: %w", err)
	}

	info.Tier = ai.Tier(tier)
	info.ResetDate, err = time.Parse(time.RFC3339, resetDate)
	if err != nil {
		return nil, fmt.Errorf("parse reset date: %w", err)
	}

	if m.now().After(info.ResetDate) {
		if err := m.Reset(ctx, userID); err != nil {
			return nil, err
		}
		return m.Get(ctx, userID)
	}

	info.RemainingTokens = -1
	if info.TokenLimit > 0 {
		info.RemainingTokens = info.TokenLimit - info.UsedTokens
		info.PercentageUsed = float64(info.UsedTokens) / float64(info.TokenLimit) * 100
	}
	info.RemainingCost = -1
	if info.CostLimit > 0 {
		info.RemainingCost = info.CostLimit - info.UsedCost
	}
	return &info, nil
}

// RecordUsage adds a dispatch's tokens and cost to the user's running
// totals and appends a usage_history row, atomically.
func (m *Manager) RecordUsage(ctx context.Context, userID string, op ai.Operation, modelUsed string, tokensUsed int, cost float64) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin usage update: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE user_quotas
		SET used_tokens = used_tokens + ?,
		    used_cost = used_cost + ?,
		    updated_at = ?
		WHERE user_id = ?`,
		tokensUsed, cost, m.now().Format(time.RFC3339), userID)
	if err != nil {
		return fmt.Errorf("update user quota: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO usage_history (id, user_id, operation, model_used, tokens_used, cost, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), userID, op.String(), modelUsed, tokensUsed, cost,
		m.now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert usage history: %w", err)
	}

	return tx.Commit()
}

// Reset zeroes the user's running totals and starts a new billing
// period.
func (m *Manager) Reset(ctx context.Context, userID string) error {
	now := m.now()
	res, err := m.db.ExecContext(ctx, `
		UPDATE user_quotas
		SET used_tokens = 0,
		    used_cost = 0.0,
		    reset_date = ?,
		    updated_at = ?
		WHERE user_id = ?`,
		now.Add(resetPeriod).Format(time.RFC3339), now.Format(time.RFC3339), userID)
	if err != nil {
		return fmt.Errorf("reset user quota: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CheckLimits reports whether a user has headroom for an operation
// expected to use tokensNeeded tokens at estimatedCost. A missing user
// denies rather than errors, so the router converts it to a failed
// result instead of a fault.
func (m *Manager) CheckLimits(ctx context.Context, userID string, tokensNeeded int, estimatedCost float64) (ai.QuotaCheck, error) {
	info, err := m.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return ai.QuotaCheck{CanProceed: false, Reason: "user quota not found"}, nil
	}
	if err != nil {
		return ai.QuotaCheck{}, err
	}

	if info.TokenLimit > 0 && info.UsedTokens+int64(tokensNeeded) > info.TokenLimit {
		return ai.QuotaCheck{
			CanProceed: false,
			Reason:     fmt.Sprintf("token limit exceeded: %d remaining, %d requested", info.RemainingTokens, tokensNeeded),
		}, nil
	}
	if info.CostLimit > 0 && info.UsedCost+estimatedCost > info.CostLimit {
		return ai.QuotaCheck{
			CanProceed: false,
			Reason:     fmt.Sprintf("cost limit exceeded: %.6f remaining, %.6f requested", info.RemainingCost, estimatedCost),
		}, nil
	}
	return ai.QuotaCheck{CanProceed: true}, nil
}

// History returns the most recent usage records for a user, newest
// first.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, operation, model_used, tokens_used, cost, timestamp
		FROM usage_history
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("read usage history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var ts string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Operation, &rec.ModelUsed,
			&rec.TokensUsed, &rec.Cost, &ts); err != nil {
			return nil, fmt.Errorf("scan usage history: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary aggregates quota usage across all users, grouped by tier.
func (m *Manager) Summary(ctx context.Context) (map[ai.Tier]TierSummary, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT tier,
		       COUNT(*),
		       COALESCE(SUM(used_tokens), 0),
		       COALESCE(SUM(used_cost), 0.0),
		       COALESCE(AVG(used_tokens), 0),
		       COALESCE(AVG(used_cost), 0.0)
		FROM user_quotas
		GROUP BY tier`)
	if err != nil {
		return nil, fmt.Errorf("read quota summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[ai.Tier]TierSummary)
	for rows.Next() {
		var tier string
		var s TierSummary
		if err := rows.Scan(&tier, &s.UserCount, &s.TotalTokens, &s.TotalCost,
			&s.AvgTokens, &s.AvgCost); err != nil {
			return nil, fmt.Errorf("scan quota summary: %w", err)
		}
		summary[ai.Tier(tier)] = s
	}
	return summary, rows.Err()
}

var _ ai.QuotaRecorder = (*Manager)(nil)
