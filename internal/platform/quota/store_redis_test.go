package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisUsageStore_Increment_FirstOfDay(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("quota:2026-05-10").SetVal(1)
	mock.ExpectExpire("quota:2026-05-10", 6*time.Hour).SetVal(true)

	n, err := NewRedisUsageStore(rdb, "").Increment(context.Background(), "2026-05-10", 6*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisUsageStore_Increment_Existing(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("usage:2026-05-10").SetVal(7)

	n, err := NewRedisUsageStore(rdb, "usage").Increment(context.Background(), "2026-05-10", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisUsageStore_Increment_Error(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("quota:2026-05-10").SetErr(errors.New("connection refused"))

	_, err := NewRedisUsageStore(rdb, "").Increment(context.Background(), "2026-05-10", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to increment usage")
}
