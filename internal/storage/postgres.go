package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"podpricer/internal/config"
	"podpricer/pkg/redis"
)

// ErrNotFound is returned when a design or quote does not exist.
var ErrNotFound = errors.New("not found")

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Design is a persisted designer document. Doc holds the full canvas
// snapshot as submitted; the pricing service never edits it.
type Design struct {
	ID        string          `db:"id" json:"id"`
	ProductID string          `db:"product_id" json:"productId"`
	Version   int64           `db:"version" json:"version"`
	Doc       json.RawMessage `db:"doc" json:"doc"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// Quote is a persisted pricing result. Breakdown holds the full
// PricingSummary JSON so the back-office can render the itemized view
// without recomputing.
type Quote struct {
	ID        int64           `db:"id" json:"id"`
	DesignID  string          `db:"design_id" json:"designId"`
	ProductID string          `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Currency  string          `db:"currency" json:"currency"`
	Total     int64           `db:"total" json:"total"`
	Breakdown json.RawMessage `db:"breakdown" json:"breakdown"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// SaveDesign upserts a designer document and refreshes its cache entry.
func (s *PostgresStorage) SaveDesign(ctx context.Context, design Design) error {
	const query = `
        INSERT INTO designs (id, product_id, version, doc, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
        SET product_id = EXCLUDED.product_id,
            version    = EXCLUDED.version,
            doc        = EXCLUDED.doc,
            updated_at = EXCLUDED.updated_at
    `

	if design.UpdatedAt.IsZero() {
		design.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		design.ID,
		design.ProductID,
		design.Version,
		string(design.Doc),
		design.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save design: %w", err)
	}

	cacheKey := fmt.Sprintf("design:%s", design.ID)
	if data, err := json.Marshal(design); err == nil {
		s.redis.Set(ctx, cacheKey, data, 24*time.Hour)
	}

	return nil
}

// GetDesign reads a designer document, Redis first, Postgres second.
func (s *PostgresStorage) GetDesign(ctx context.Context, designID string) (*Design, error) {
	cacheKey := fmt.Sprintf("design:%s", designID)

	// Try Redis first
	cached, err := s.redis.Get(ctx, cacheKey)
	if err == nil {
		var design Design
		if err := json.Unmarshal(cached, &design); err == nil {
			return &design, nil
		}
	}

	// Fall back to Postgres
	const query = `
        SELECT id, product_id, version, doc, updated_at
        FROM designs
        WHERE id = $1
    `

	var design Design
	err = s.db.GetContext(ctx, &design, query, designID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("design %s: %w", designID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	// Cache the result
	if data, err := json.Marshal(design); err == nil {
		s.redis.Set(ctx, cacheKey, data, 24*time.Hour)
	}

	return &design, nil
}

// SaveQuote persists a computed quote and returns its id.
func (s *PostgresStorage) SaveQuote(ctx context.Context, quote Quote) (int64, error) {
	const query = `
        INSERT INTO quotes (
            design_id, product_id, quantity, currency, total, breakdown, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `

	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}

	var quoteID int64
	err := s.db.QueryRowContext(ctx, query,
		quote.DesignID,
		quote.ProductID,
		quote.Quantity,
		quote.Currency,
		quote.Total,
		string(quote.Breakdown),
		quote.CreatedAt,
	).Scan(&quoteID)

	if err != nil {
		return 0, fmt.Errorf("failed to save quote: %w", err)
	}

	// Invalidate statistics cache
	s.redis.Del(ctx, "quote_stats")

	return quoteID, nil
}

// GetQuoteByID fetches one persisted quote.
func (s *PostgresStorage) GetQuoteByID(ctx context.Context, quoteID int64) (*Quote, error) {
	const query = `
        SELECT id, design_id, product_id, quantity, currency, total, breakdown, created_at
        FROM quotes
        WHERE id = $1
    `

	var quote Quote
	err := s.db.GetContext(ctx, &quote, query, quoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %d: %w", quoteID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

// ListQuotesByDesign returns the quote history of one design, newest first.
func (s *PostgresStorage) ListQuotesByDesign(ctx context.Context, designID string) ([]Quote, error) {
	const query = `
        SELECT id, design_id, product_id, quantity, currency, total, breakdown, created_at
        FROM quotes
        WHERE design_id = $1
        ORDER BY created_at DESC
    `

	var quotes []Quote
	if err := s.db.SelectContext(ctx, &quotes, query, designID); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

type QuoteStatistics struct {
	TotalQuotes int     `db:"total_quotes" json:"totalQuotes"`
	TotalAmount float64 `db:"total_amount" json:"totalAmount"`
	TodayQuotes int     `json:"todayQuotes"`
	TodayAmount float64 `json:"todayAmount"`
	WeekQuotes  int     `json:"weekQuotes"`
	WeekAmount  float64 `json:"weekAmount"`
	MonthQuotes int     `json:"monthQuotes"`
	MonthAmount float64 `json:"monthAmount"`
}

// GetQuoteStatistics aggregates quote counts and totals, cached for an hour.
func (s *PostgresStorage) GetQuoteStatistics(ctx context.Context) (*QuoteStatistics, error) {
	cacheKey := "quote_stats"

	// Try Redis first
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
		var stats QuoteStatistics
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &QuoteStatistics{}

	type countAmount struct {
		Count  int     `db:"count"`
		Amount float64 `db:"amount"`
	}

	err := s.db.GetContext(ctx, stats, `
        SELECT
            COUNT(*) as total_quotes,
            COALESCE(SUM(total), 0) as total_amount
        FROM quotes
    `)
	if err != nil {
		return nil, err
	}

	windows := []struct {
		interval string
		count    *int
		amount   *float64
	}{
		{"CURRENT_DATE", &stats.TodayQuotes, &stats.TodayAmount},
		{"CURRENT_DATE - INTERVAL '7 days'", &stats.WeekQuotes, &stats.WeekAmount},
		{"CURRENT_DATE - INTERVAL '30 days'", &stats.MonthQuotes, &stats.MonthAmount},
	}
	for _, w := range windows {
		var ca countAmount
		query := fmt.Sprintf(`
            SELECT
                COUNT(*) as count,
                COALESCE(SUM(total), 0) as amount
            FROM quotes
            WHERE created_at >= %s
        `, w.interval)
		if err := s.db.GetContext(ctx, &ca, query); err != nil {
			return nil, err
		}
		*w.count = ca.Count
		*w.amount = ca.Amount
	}

	// Cache the result
	if data, err := json.Marshal(stats); err == nil {
		s.redis.Set(ctx, cacheKey, data, 1*time.Hour)
	}

	return stats, nil
}

func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
