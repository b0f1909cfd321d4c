package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorCodes(t *testing.T) {
	origin := fmt.Errorf("disk full")
	err := NewAppError(ErrStorage, "failed to save posts", origin)

	assert.Equal(t, "failed to save posts: disk full", err.Error())
	assert.ErrorIs(t, err, origin)
	assert.True(t, IsErrorCode(fmt.Errorf("wrapped: %w", err), ErrStorage))
	assert.False(t, IsErrorCode(origin, ErrStorage))

	assert.True(t, IsNotFound(NewPostNotFoundError(7)))
	assert.True(t, IsNotFound(NewCommentNotFoundError("c1")))
	assert.False(t, IsNotFound(err))
	assert.True(t, IsAuthError(NewUnauthorizedError("missing token")))
}

func TestAppErrorToHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, AppErrorToHTTPStatus(ErrPostNotFound))
	assert.Equal(t, 404, AppErrorToHTTPStatus(ErrParentNotFound))
	assert.Equal(t, 400, AppErrorToHTTPStatus(ErrInvalidInput))
	assert.Equal(t, 401, AppErrorToHTTPStatus(ErrUnauthorized))
	assert.Equal(t, 503, AppErrorToHTTPStatus(ErrUnavailable))
	assert.Equal(t, 500, AppErrorToHTTPStatus("SOMETHING_ELSE"))
}

func TestMetricsCollector(t *testing.T) {
	mc := NewMetricsCollector()
	require.NoError(t, mc.Register(prometheus.NewRegistry()))

	mc.IncrementRequests()
	mc.IncrementRequests()
	mc.IncrementErrors()
	mc.AddOperationLatency("vote_post", 2*time.Millisecond)
	mc.AddOperationLatency("vote_post", 4*time.Millisecond)

	snap := mc.Snapshot()
	assert.Equal(t, uint64(2), snap.Requests)
	assert.Equal(t, uint64(1), snap.Errors)
	assert.Equal(t, 3*time.Millisecond, snap.AvgLatencies["vote_post"])
	assert.Equal(t, 2, snap.OperationRuns["vote_post"])
}

func TestMetricsCollectorBoundsSamples(t *testing.T) {
	mc := NewMetricsCollector()
	for i := 0; i < maxSamplesPerOperation+10; i++ {
		mc.AddOperationLatency("create_post", time.Microsecond)
	}
	assert.Equal(t, maxSamplesPerOperation, mc.Snapshot().OperationRuns["create_post"])
}
