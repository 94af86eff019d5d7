package escrow_test

import (
	"errors"
	"testing"
	"time"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func securedHold(t *testing.T) *escrow.Hold {
	t.Helper()

	h, err := escrow.NewHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
		"acc_carrier_77", "order_razor_123", "trf_razor_456")
	require.NoError(t, err)
	return h
}

func TestNewHold(t *testing.T) {
	t.Run("should create secured hold", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()

		h, err := escrow.NewHold(id, orderID, 15400, "acc_carrier_77", "order_razor_123", "trf_razor_456")

		require.NoError(t, err)
		require.NoError(t, h.Validate())
		assert.True(t, h.ID().IsEqual(id))
		assert.True(t, h.OrderID().IsEqual(orderID))
		assert.InDelta(t, 15400.0, h.Amount(), 1e-9)
		assert.Equal(t, escrow.StatusSecured, h.Status())
		assert.Equal(t, "trf_razor_456", h.TransferID())
		assert.Nil(t, h.ReleasedAt())
		assert.False(t, h.CreatedAt().IsZero())
	})

	t.Run("should fail with non-positive amount", func(t *testing.T) {
		_, err := escrow.NewHold(kernel.NewUUID(), kernel.NewUUID(), 0,
			"acc_carrier_77", "order_razor_123", "trf_razor_456")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should fail without payout account", func(t *testing.T) {
		_, err := escrow.NewHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
			"", "order_razor_123", "trf_razor_456")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "payoutAccountRef")
	})

	t.Run("should fail without provider references", func(t *testing.T) {
		_, err := escrow.NewHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
			"acc_carrier_77", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "providerOrderID")
		assert.Contains(t, err.Error(), "transferID")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var h escrow.Hold

		require.ErrorIs(t, h.Validate(), escrow.ErrHoldIsNotConstructed)
	})
}

func TestHold_Release(t *testing.T) {
	t.Run("releases secured hold", func(t *testing.T) {
		h := securedHold(t)

		require.NoError(t, h.Release())
		assert.Equal(t, escrow.StatusReleased, h.Status())
		require.NotNil(t, h.ReleasedAt())
	})

	t.Run("double release is an error", func(t *testing.T) {
		h := securedHold(t)
		require.NoError(t, h.Release())

		err := h.Release()

		require.ErrorIs(t, err, escrow.ErrAlreadyReleased)
		assert.Contains(t, err.Error(), "trf_razor_456")
	})

	t.Run("failed hold can be retried", func(t *testing.T) {
		h := securedHold(t)
		require.NoError(t, h.MarkReleaseFailed())
		assert.Equal(t, escrow.StatusFailed, h.Status())

		require.NoError(t, h.Release())
		assert.Equal(t, escrow.StatusReleased, h.Status())
	})

	t.Run("released hold cannot be marked failed", func(t *testing.T) {
		h := securedHold(t)
		require.NoError(t, h.Release())

		require.ErrorIs(t, h.MarkReleaseFailed(), escrow.ErrAlreadyReleased)
	})
}

func TestRestoreHold(t *testing.T) {
	t.Run("restores released hold", func(t *testing.T) {
		releasedAt := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

		h, err := escrow.RestoreHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
			"acc_carrier_77", "order_razor_123", "trf_razor_456",
			escrow.StatusReleased, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), &releasedAt)

		require.NoError(t, err)
		assert.Equal(t, escrow.StatusReleased, h.Status())
		require.NotNil(t, h.ReleasedAt())
		assert.Equal(t, releasedAt, *h.ReleasedAt())
	})

	t.Run("rejects released hold without release time", func(t *testing.T) {
		_, err := escrow.RestoreHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
			"acc_carrier_77", "order_razor_123", "trf_razor_456",
			escrow.StatusReleased, time.Now(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "releasedAt")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := escrow.RestoreHold(kernel.NewUUID(), kernel.NewUUID(), 15400,
			"acc_carrier_77", "order_razor_123", "trf_razor_456",
			escrow.StatusUnknown, time.Now(), nil)

		require.Error(t, err)
	})
}

func TestEscrowError(t *testing.T) {
	t.Run("wraps the provider cause", func(t *testing.T) {
		cause := errors.New("gateway timeout")

		err := escrow.NewError("release", "trf_razor_456", cause)

		require.ErrorIs(t, err, escrow.ErrEscrowFailure)
		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "release")
		assert.Contains(t, err.Error(), "trf_razor_456")
	})

	t.Run("reads without a transfer id", func(t *testing.T) {
		err := escrow.NewError("create hold", "", errors.New("amount rejected"))

		assert.Contains(t, err.Error(), "create hold")
		require.ErrorIs(t, err, escrow.ErrEscrowFailure)
	})
}
