// Package numerator provides document auto-numbering.
//
// Numbers are allocated from the sys_sequences table with an
// UPSERT .. RETURNING statement, so allocation is atomic under concurrent
// callers. When called inside a transaction the allocation participates in
// it: a rolled-back invoice never burns a committed number out of order with
// the insert that failed.
package numerator

import (
	"context"
	"fmt"
	"time"

	"bahikhata/internal/infrastructure/storage/postgres"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// PadWidth is the minimum sequence width (default 4)
	PadWidth int

	// PeriodFormat scopes the sequence; "200601" resets the count each
	// year-month. Empty means one global sequence per prefix.
	PeriodFormat string
}

// InvoiceConfig returns the invoice numbering scheme: INV-YYYYMM-XXXX,
// sequence scoped per year-month.
func InvoiceConfig() Config {
	return Config{
		Prefix:       "INV",
		PadWidth:     4,
		PeriodFormat: "200601",
	}
}

// QuerierSource yields the querier for the current context.
// *postgres.TxManager implements it, routing allocation through the caller's
// transaction when one is carried by the context.
type QuerierSource interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// Service allocates document numbers from sys_sequences.
type Service struct {
	db  QuerierSource
	cfg Config
}

// New creates a numerator service.
func New(db QuerierSource, cfg Config) *Service {
	if cfg.PadWidth <= 0 {
		cfg.PadWidth = 4
	}
	return &Service{db: db, cfg: cfg}
}

// NextNumber allocates and formats the next number for the period.
func (s *Service) NextNumber(ctx context.Context, period time.Time) (string, error) {
	key := s.buildKey(period)

	var num int64
	err := s.db.GetQuerier(ctx).QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return s.formatNumber(period, num), nil
}

// NextInvoiceNumber implements the invoice engine's NumberSource.
func (s *Service) NextInvoiceNumber(ctx context.Context, period time.Time) (string, error) {
	return s.NextNumber(ctx, period)
}

func (s *Service) buildKey(period time.Time) string {
	if s.cfg.PeriodFormat == "" {
		return s.cfg.Prefix
	}
	return s.cfg.Prefix + "-" + period.Format(s.cfg.PeriodFormat)
}

// formatNumber renders PREFIX-PERIOD-XXXX. The pad width is a minimum;
// sequences past 10^width-1 simply widen instead of colliding.
func (s *Service) formatNumber(period time.Time, num int64) string {
	if s.cfg.PeriodFormat == "" {
		return fmt.Sprintf("%s-%0*d", s.cfg.Prefix, s.cfg.PadWidth, num)
	}
	return fmt.Sprintf("%s-%s-%0*d", s.cfg.Prefix, period.Format(s.cfg.PeriodFormat), s.cfg.PadWidth, num)
}
