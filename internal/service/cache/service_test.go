package cache

import (
	stderrors "errors"
	"testing"

	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCacheServiceUnreachable(t *testing.T) {
	svc, err := NewCacheService(CacheConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, svc)

	var cacheErr *guideerrors.CacheError
	require.True(t, stderrors.As(err, &cacheErr))
	assert.Equal(t, "ping", cacheErr.Operation)
}

func TestCacheConfigAddr(t *testing.T) {
	assert.Equal(t, "redis:6379", CacheConfig{Host: "redis", Port: 6379}.Addr())
}
