package patch

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `<html><body>
<a href="/en-us/news/game-updates/wild-rift-patch-notes-6-1f/">6.1f</a>
<a href="/en-us/news/game-updates/wild-rift-patch-notes-6-2/">6.2</a>
<a href="https://example.com/news/patch-notes-6-2b/">6.2b</a>
<a href="/en-us/news/game-updates/patch-5-3/">old</a>
<a href="/en-us/news/dev-update/">dev</a>
</body></html>`

func newServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestPicksHighestVersion(t *testing.T) {
	var hits int32
	srv := newServer(t, http.StatusOK, listing, &hits)
	f := NewFetcher(Config{URL: srv.URL + "/en-us/news/game-updates/"})

	info, err := f.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "6.2b", info.Version)
	assert.Equal(t, "Wild Rift Patch 6.2b", info.Title)
	assert.Equal(t, "https://example.com/news/patch-notes-6-2b/", info.URL)

	_, err = f.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second lookup served from cache")
}

func TestLatestResolvesRelativeLinks(t *testing.T) {
	srv := newServer(t, http.StatusOK, `<a href="/news/wild-rift-patch-notes-7-0a/">x</a>`, nil)
	f := NewFetcher(Config{URL: srv.URL + "/news/"})

	info, err := f.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7.0a", info.Version)
	assert.Equal(t, srv.URL+"/news/wild-rift-patch-notes-7-0a/", info.URL)
}

func TestLatestErrors(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable, "down", nil)
	_, err := NewFetcher(Config{URL: srv.URL}).Latest(context.Background())
	var apiErr *guideerrors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	empty := newServer(t, http.StatusOK, `<a href="/about">about</a>`, nil)
	_, err = NewFetcher(Config{URL: empty.URL}).Latest(context.Background())
	assert.ErrorIs(t, err, ErrNoPatchFound)
}

func TestRepeatedFailuresStopRequests(t *testing.T) {
	var hits int32
	srv := newServer(t, http.StatusBadGateway, "", &hits)
	f := NewFetcher(Config{URL: srv.URL, FailureThreshold: 2})
	ctx := context.Background()

	_, err := f.Latest(ctx)
	require.Error(t, err)
	_, err = f.Latest(ctx)
	require.Error(t, err)

	_, err = f.Latest(ctx)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCurrentFallsBack(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, "", nil)
	assert.Equal(t, "6.1f", NewFetcher(Config{URL: srv.URL}).Current(context.Background(), "6.1f"))
}

func TestParseHrefAndVersions(t *testing.T) {
	v, ok := ParseHref("/news/wild-rift-patch-notes-6-2B/")
	require.True(t, ok)
	assert.Equal(t, Version{Major: 6, Minor: 2, Letter: "b"}, v)

	_, ok = ParseHref("/news/dev-diary/")
	assert.False(t, ok)

	assert.True(t, Version{6, 2, ""}.Less(Version{6, 2, "a"}))
	assert.True(t, Version{5, 9, "z"}.Less(Version{6, 0, ""}))
	assert.True(t, Version{6, 10, ""}.Less(Version{6, 11, ""}))
	assert.False(t, Version{6, 2, "b"}.Less(Version{6, 2, "b"}))

	assert.True(t, IsValidVersion("6.2b"))
	assert.True(t, IsValidVersion("6.2"))
	assert.False(t, IsValidVersion("patch 6.2"))
}
