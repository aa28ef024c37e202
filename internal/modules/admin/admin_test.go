package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/prefs"
)

func TestGate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		try      string
		wantErr  error
	}{
		{"hash accepts", string(hash), "", "s3cret", nil},
		{"hash rejects", string(hash), "", "guess", ErrUnauthorized},
		{"hash wins over plain", string(hash), "other", "other", ErrUnauthorized},
		{"plain accepts", "", "wardha", "wardha", nil},
		{"empty attempt", "", "wardha", "", ErrUnauthorized},
		{"disabled", "", "", "anything", ErrGateDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGate(tt.hash, tt.password)
			require.NoError(t, err)
			err = g.Verify(tt.try)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err = NewGate("not-a-bcrypt-hash", "")
	assert.Error(t, err)
}

type brokenPrefs struct{ *prefs.MemoryStore }

func (brokenPrefs) Get(context.Context, string) (string, error) {
	return "", errors.New("redis timeout")
}

func TestSurgeSwitch(t *testing.T) {
	ctx := context.Background()
	svc := NewService(prefs.NewService(prefs.NewMemoryStore()), ledger.NewService(nil), nil, "2024.1")

	assert.False(t, svc.SurgeActive(ctx))
	require.NoError(t, svc.SetSurge(ctx, true))
	assert.True(t, svc.SurgeActive(ctx))
	require.NoError(t, svc.SetSurge(ctx, false))
	assert.False(t, svc.SurgeActive(ctx))

	broken := NewService(prefs.NewService(brokenPrefs{prefs.NewMemoryStore()}), ledger.NewService(nil), nil, "2024.1")
	assert.False(t, broken.SurgeActive(ctx))
}

type fakeHandoffs struct {
	records []handoff.Record
	err     error
}

func (f fakeHandoffs) Recent(context.Context, int) ([]handoff.Record, error) {
	return f.records, f.err
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	prefsSvc := prefs.NewService(prefs.NewMemoryStore())
	_, err := prefsSvc.AddRevenue(ctx, 2200)
	require.NoError(t, err)

	t.Run("without database", func(t *testing.T) {
		svc := NewService(prefsSvc, ledger.NewService(nil), nil, "2024.1")
		require.NoError(t, svc.SetSurge(ctx, true))

		ov, err := svc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(17600), ov.Revenue)
		assert.True(t, ov.SurgeActive)
		assert.Equal(t, "2024.1", ov.RatesVersion)
		assert.Nil(t, ov.Ledger)
		assert.Empty(t, ov.RecentHandoffs)
	})

	t.Run("with ledger and handoffs", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count", "revenue", "expense", "profit"}).AddRow(1, 3500, 1003, 2497))

		rec := handoff.Record{ID: uuid.New(), Channel: handoff.ChannelWhatsApp, CreatedAt: time.Now()}
		svc := NewService(prefsSvc, ledger.NewService(ledger.NewSQLStore(db)), fakeHandoffs{records: []handoff.Record{rec}}, "2024.1")

		ov, err := svc.Overview(ctx)
		require.NoError(t, err)
		require.NotNil(t, ov.Ledger)
		assert.Equal(t, int64(2497), ov.Ledger.Profit)
		require.Len(t, ov.RecentHandoffs, 1)
		assert.Equal(t, rec.ID, ov.RecentHandoffs[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("handoff log failure is not fatal", func(t *testing.T) {
		svc := NewService(prefsSvc, ledger.NewService(nil), fakeHandoffs{err: errors.New("pool closed")}, "2024.1")
		_, err := svc.Overview(ctx)
		assert.NoError(t, err)
	})
}
