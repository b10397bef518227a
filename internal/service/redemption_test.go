package service

import (
	"context"
	"testing"
	"time"

	"warranty-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T, records ...domain.WarrantyRecord) *flakyStore {
	t.Helper()
	store := newFlakyStore()
	for _, r := range records {
		require.NoError(t, store.MemoryRecordStore.AppendRow(context.Background(), r))
	}
	return store
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t,
		unit(0, "0912345678", "INV-1", "north", domain.RedeemedNo),
		unit(0, "0912345678", "INV-1", "north", domain.RedeemedNo),
	)
	svc := newTestService(store, &recordingDispatcher{})

	require.NoError(t, svc.Redeem(ctx, &domain.Session{ShopID: "north"}, 3))
	assert.Equal(t, []int{domain.ColRedeemed, domain.ColRedeemedBy, domain.ColRedeemedAt}, store.updates)

	records, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.False(t, records[0].IsRedeemed())
	assert.True(t, records[1].IsRedeemed())
	assert.Equal(t, "north", records[1].RedeemedBy)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), records[1].RedeemedAt)
}

func TestRedeemAlreadyRedeemedKeepsOriginalDetails(t *testing.T) {
	ctx := context.Background()
	redeemed := unit(0, "0912345678", "INV-1", "north", domain.RedeemedYes)
	redeemed.RedeemedBy = "north"
	redeemed.RedeemedAt = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := seededStore(t, redeemed)
	svc := newTestService(store, &recordingDispatcher{})

	err := svc.Redeem(ctx, &domain.Session{ShopID: "north"}, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)
	assert.Empty(t, store.updates)

	records, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, "north", records[0].RedeemedBy)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), records[0].RedeemedAt)
}

func TestRedeemHandEditedRedeemedCell(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, unit(0, "0912345678", "INV-1", "north", domain.RedeemedNo))
	require.NoError(t, store.MemoryRecordStore.UpdateCell(ctx, 2, domain.ColRedeemed, "yes"))
	svc := newTestService(store, &recordingDispatcher{})

	err := svc.Redeem(ctx, &domain.Session{ShopID: "north"}, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)
	assert.Empty(t, store.updates)
}

func TestRedeemRejections(t *testing.T) {
	testCases := []struct {
		name    string
		sess    *domain.Session
		row     int
		wantErr error
	}{
		{name: "not logged in", sess: &domain.Session{}, row: 2, wantErr: domain.ErrNotLoggedIn},
		{name: "another shop's unit", sess: &domain.Session{ShopID: "south"}, row: 2, wantErr: domain.ErrNotShopRecord},
		{name: "no such row", sess: &domain.Session{ShopID: "north"}, row: 9, wantErr: domain.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := seededStore(t, unit(0, "0912345678", "INV-1", "north", domain.RedeemedNo))
			svc := newTestService(store, &recordingDispatcher{})

			err := svc.Redeem(context.Background(), tc.sess, tc.row)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, store.updates)
		})
	}
}

func TestRedeemPartialWrite(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, unit(0, "0912345678", "INV-1", "north", domain.RedeemedNo))
	store.failUpdateOn = domain.ColRedeemedBy
	svc := newTestService(store, &recordingDispatcher{})

	err := svc.Redeem(ctx, &domain.Session{ShopID: "north"}, 2)
	var redemptionErr *domain.RedemptionError
	require.ErrorAs(t, err, &redemptionErr)
	assert.Equal(t, 2, redemptionErr.Row)
	assert.Equal(t, domain.ColRedeemedBy, redemptionErr.Column)

	// The first write landed; the unit now reads as redeemed without details.
	result, err := svc.Lookup(ctx, &domain.Session{ShopID: "north"}, "0912345678")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].IsRedeemed())
	assert.False(t, result.Records[0].RedemptionDetailsKnown())
}
