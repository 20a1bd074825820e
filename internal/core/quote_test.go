package core

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

func TestQuoteService_CreateFromRFQ_Success(t *testing.T) {
	mdb := &mockDB{}
	tx := &mockTx{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	rfqRow := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "cust-1"
		*(dest[1].(*string)) = model.RFQStatusOpen
		return nil
	}}
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rfqRow)
	mdb.On("Begin", ctx).Return(tx, nil)
	// quote insert + two lines + rfq status flip
	tx.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil).Times(4)
	tx.On("Commit", ctx).Return(nil)

	q, err := svc.CreateFromRFQ(ctx, "comp-1", "rfq-1", CreateQuoteParams{
		Reference: "Q-2026-0042",
		Lines: []CreateQuoteLineParams{
			{ItemID: "item-1", Quantity: 100, UnitPrice: 2.75},
			{ItemID: "item-2", Quantity: 10, UnitPrice: 41.00},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, model.QuoteStatusDraft, q.Status)
	assert.Equal(t, "cust-1", q.CustomerID)
	assert.Equal(t, "rfq-1", q.RFQID)
	assert.Len(t, q.Lines, 2)

	mdb.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestQuoteService_CreateFromRFQ_RFQNotFound(t *testing.T) {
	mdb := &mockDB{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	q, err := svc.CreateFromRFQ(ctx, "comp-1", "missing", CreateQuoteParams{Reference: "Q-1"})
	require.Error(t, err)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteService_CreateFromRFQ_ClosedRFQ(t *testing.T) {
	mdb := &mockDB{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "cust-1"
		*(dest[1].(*string)) = model.RFQStatusClosed
		return nil
	}}
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	q, err := svc.CreateFromRFQ(ctx, "comp-1", "rfq-1", CreateQuoteParams{Reference: "Q-1"})
	require.Error(t, err)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, ErrRFQNotQuotable)
	mdb.AssertNotCalled(t, "Begin")
}

func TestQuoteService_Update_StatusOnly(t *testing.T) {
	mdb := &mockDB{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	now := time.Now()
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "quote-1"
		*(dest[1].(*string)) = "comp-1"
		*(dest[2].(*string)) = "rfq-1"
		*(dest[3].(*string)) = "cust-1"
		*(dest[4].(*string)) = "Q-2026-0042"
		*(dest[5].(*string)) = model.QuoteStatusSent
		*(dest[8].(*time.Time)) = now
		*(dest[9].(*time.Time)) = now
		return nil
	}}

	var gotArgs []any
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) { gotArgs = args.Get(2).([]any) }).Return(row)

	q, err := svc.Update(ctx, "comp-1", "quote-1", []db.Field{{Name: "status", Value: model.QuoteStatusSent}})
	require.NoError(t, err)
	assert.Equal(t, model.QuoteStatusSent, q.Status)
	assert.Equal(t, []any{model.QuoteStatusSent, "quote-1", "comp-1"}, gotArgs)
}

func TestQuoteService_ListByCompany_StatusFilter(t *testing.T) {
	mdb := &mockDB{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	mdb.On("Query", ctx, mock.AnythingOfType("string"), []any{"comp-1", model.QuoteStatusSent}).
		Return(newEmptyMockRows(), nil)

	quotes, err := svc.ListByCompany(ctx, "comp-1", model.QuoteStatusSent, 0)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	mdb.AssertExpectations(t)
}

func TestQuoteService_ListByCompany_Limit(t *testing.T) {
	mdb := &mockDB{}
	svc := NewQuoteService(mdb)
	ctx := context.Background()

	var gotSQL string
	mdb.On("Query", ctx, mock.AnythingOfType("string"), []any{"comp-1", 200}).
		Run(func(args mock.Arguments) { gotSQL = args.String(1) }).
		Return(newEmptyMockRows(), nil)

	_, err := svc.ListByCompany(ctx, "comp-1", "", 200)
	require.NoError(t, err)
	assert.Contains(t, gotSQL, "LIMIT $2")
	mdb.AssertExpectations(t)
}
