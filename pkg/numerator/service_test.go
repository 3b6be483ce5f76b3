package numerator

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/infrastructure/storage/postgres"
)

// fakeSequences mimics the sys_sequences UPSERT: one counter per key.
type fakeSequences struct {
	counters map[string]int64
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{counters: map[string]int64{}}
}

func (f *fakeSequences) GetQuerier(_ context.Context) postgres.Querier {
	return f
}

func (f *fakeSequences) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeSequences) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeSequences) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	key := args[0].(string)
	f.counters[key]++
	return seqRow{val: f.counters[key]}
}

type seqRow struct {
	val int64
}

func (r seqRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.val
	return nil
}

func TestNextInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	db := newFakeSequences()
	svc := New(db, InvoiceConfig())

	period := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	first, err := svc.NextInvoiceNumber(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-0001", first)

	second, err := svc.NextInvoiceNumber(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-0002", second)
}

func TestNextNumberPeriodReset(t *testing.T) {
	ctx := context.Background()
	db := newFakeSequences()
	svc := New(db, InvoiceConfig())

	august := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	september := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	n, err := svc.NextNumber(ctx, august)
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-0001", n)

	// New period starts its own sequence.
	n, err = svc.NextNumber(ctx, september)
	require.NoError(t, err)
	assert.Equal(t, "INV-202609-0001", n)
}

func TestNextNumberGlobalSequence(t *testing.T) {
	ctx := context.Background()
	db := newFakeSequences()
	svc := New(db, Config{Prefix: "ADJ", PadWidth: 3})

	n, err := svc.NextNumber(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "ADJ-001", n)
}

func TestNextNumberWidensPastPad(t *testing.T) {
	ctx := context.Background()
	db := newFakeSequences()
	db.counters["INV-202608"] = 9999
	svc := New(db, InvoiceConfig())

	period := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	n, err := svc.NextNumber(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-10000", n)
}
