package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Get_Success(t *testing.T) {
	mdb := &mockDB{}
	svc := NewDashboardService(mdb)
	ctx := context.Background()

	counts := map[string]int{
		"customers": 12,
		"items":     340,
		"rfqs":      3,
		"quotes":    5,
	}
	for table, n := range counts {
		table, n := table, n
		mdb.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
			return strings.Contains(sql, "FROM "+table)
		}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*int)) = n
			return nil
		}})
	}

	d, err := svc.Get(ctx, "comp-1")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Customers)
	assert.Equal(t, 340, d.Items)
	assert.Equal(t, 3, d.OpenRFQs)
	assert.Equal(t, 5, d.OutstandingQuotes)
}

func TestDashboardService_Get_CountError(t *testing.T) {
	mdb := &mockDB{}
	svc := NewDashboardService(mdb)
	ctx := context.Background()

	mdb.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			return errors.New("connection reset")
		}})

	d, err := svc.Get(ctx, "comp-1")
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "dashboard for company")
}
