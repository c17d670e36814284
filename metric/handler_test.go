package metric

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {

	r := newTestRegistry(t)
	h := NewHandler(r, nil)

	require.NoError(t, r.Set("test_gauge", 3.5))

	scrape := func() *http.Response {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return rec.Result()
	}

	{
		// test: ok
		res := scrape()
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.True(t,
			strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain; version=0.0.4"),
			res.Header.Get("Content-Type"))

		body, err := ioutil.ReadAll(res.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "\ntest_gauge 3.5\n")
		require.Contains(t, string(body), "\ntest_counter 0\n")
		require.Contains(t, string(body), "\ntest_histogram_count 0\n")
		require.Contains(t, string(body), "\ntest_summary_count 0\n")
	}

	{
		// test: the scrape does not instrument itself
		before, err := r.Snapshot()
		require.NoError(t, err)

		scrape()

		after, err := r.Snapshot()
		require.NoError(t, err)
		require.Equal(t, before, after)
	}

	{
		// test: every scrape sees the latest value
		require.NoError(t, r.Set("test_gauge", -1))

		body, err := ioutil.ReadAll(scrape().Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "\ntest_gauge -1\n")
	}

	{
		// test: shutting down
		h.Shutdown()

		res := scrape()
		require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	}
}
