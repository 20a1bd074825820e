package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotehub/quotehub/internal/db"
)

func TestCustomerService_Create_Success(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	mdb.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	email := "billing@northside.example"
	c, err := svc.Create(ctx, "comp-1", CreateCustomerParams{Name: "Northside Builders", Email: &email})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "comp-1", c.CompanyID)
	assert.Equal(t, "Northside Builders", c.Name)
	mdb.AssertExpectations(t)
}

func TestCustomerService_ListByCompany_ScopesQuery(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	now := time.Now()
	rows := newMockRows(func(dest ...any) error {
		*(dest[0].(*string)) = "cust-1"
		*(dest[1].(*string)) = "comp-1"
		*(dest[2].(*string)) = "Northside Builders"
		*(dest[7].(*time.Time)) = now
		*(dest[8].(*time.Time)) = now
		return nil
	})
	mdb.On("Query", ctx, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "company_id = $1")
	}), []any{"comp-1"}).Return(rows, nil)

	customers, err := svc.ListByCompany(ctx, "comp-1", "", 0)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "cust-1", customers[0].ID)
	mdb.AssertExpectations(t)
}

func TestCustomerService_ListByCompany_Search(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	mdb.On("Query", ctx, mock.AnythingOfType("string"), []any{"comp-1", "%north%"}).
		Return(newEmptyMockRows(), nil)

	customers, err := svc.ListByCompany(ctx, "comp-1", "north", 0)
	require.NoError(t, err)
	assert.Empty(t, customers)
	mdb.AssertExpectations(t)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	c, err := svc.GetByID(ctx, "comp-1", "missing")
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Update_ParamPositions(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	now := time.Now()
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "cust-1"
		*(dest[1].(*string)) = "comp-1"
		*(dest[2].(*string)) = "Northside Builders Ltd"
		*(dest[7].(*time.Time)) = now
		*(dest[8].(*time.Time)) = now
		return nil
	}}

	contact := "Dana Webb"
	var gotSQL string
	var gotArgs []any
	mdb.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotSQL = args.String(1)
			gotArgs = args.Get(2).([]any)
		}).Return(row)

	c, err := svc.Update(ctx, "comp-1", "cust-1", []db.Field{
		{Name: "name", Value: "Northside Builders Ltd"},
		{Name: "contactName", Value: &contact},
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	// The set clause parameters line up with the value order, and the
	// WHERE parameters continue after them.
	assert.Contains(t, gotSQL, `"name" = $1`)
	assert.Contains(t, gotSQL, `"contact_name" = $2`)
	assert.Contains(t, gotSQL, "id = $3")
	assert.Contains(t, gotSQL, "company_id = $4")
	require.Len(t, gotArgs, 4)
	assert.Equal(t, "Northside Builders Ltd", gotArgs[0])
	assert.Equal(t, &contact, gotArgs[1])
	assert.Equal(t, "cust-1", gotArgs[2])
	assert.Equal(t, "comp-1", gotArgs[3])
}

func TestCustomerService_Update_NoFields(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)

	c, err := svc.Update(context.Background(), "comp-1", "cust-1", nil)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, db.ErrNoFields)
	mdb.AssertNotCalled(t, "QueryRow")
}

func TestCustomerService_Delete_NotFound(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	mdb.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := svc.Delete(ctx, "comp-1", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Delete_Success(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	mdb.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 1"), nil)

	require.NoError(t, svc.Delete(ctx, "comp-1", "cust-1"))
}

func TestCustomerService_List_QueryError(t *testing.T) {
	mdb := &mockDB{}
	svc := NewCustomerService(mdb)
	ctx := context.Background()

	mdb.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("connection reset"))

	customers, err := svc.ListByCompany(ctx, "comp-1", "", 0)
	require.Error(t, err)
	assert.Nil(t, customers)
	assert.Contains(t, err.Error(), "list customers")
}
