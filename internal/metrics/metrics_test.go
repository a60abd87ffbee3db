package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	ok := testutil.ToFloat64(FetchRunsTotal.WithLabelValues("test", "success"))
	bad := testutil.ToFloat64(FetchRunsTotal.WithLabelValues("test", "failure"))
	created := testutil.ToFloat64(RecordsCreatedTotal.WithLabelValues("test"))

	ObserveFetch("test", time.Now(), 3, 1, nil)
	ObserveFetch("test", time.Now(), 0, 0, errors.New("down"))

	assert.Equal(t, ok+1, testutil.ToFloat64(FetchRunsTotal.WithLabelValues("test", "success")))
	assert.Equal(t, bad+1, testutil.ToFloat64(FetchRunsTotal.WithLabelValues("test", "failure")))
	assert.Equal(t, created+3, testutil.ToFloat64(RecordsCreatedTotal.WithLabelValues("test")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	LiveClients.Set(2)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "njtrades_live_clients 2"))
}
