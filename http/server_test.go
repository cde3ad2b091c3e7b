package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rcardoso/faturex"
	"github.com/rcardoso/faturex/goquery"
	faturexhttp "github.com/rcardoso/faturex/http"
	"github.com/rcardoso/faturex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billingTable = `<table>
<tr><th>Cod</th></tr>
<tr class="destaca"><td>104</td><td>AURORA</td><td>15/01/2026</td><td>480,00</td><td>M</td><td>R</td><td>G</td><td>T</td><td>C</td><td>SC</td></tr>
<tr class="destacb"><td>105</td><td>X</td><td>15/01/2026</td><td>0,00</td><td>M</td><td>R</td><td>G</td><td>T</td><td>C</td><td>SC</td></tr>
</table>`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(opts ...faturexhttp.Option) *faturexhttp.Server {
	return faturexhttp.NewServer(goquery.NewExtractor(), newTestLogger(), opts...)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string              `json:"status"`
		Service string              `json:"service"`
		Layouts map[string][]string `json:"layouts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "online", body.Status)
	assert.Equal(t, "faturex", body.Service)
	require.Contains(t, body.Layouts, "billing")
	assert.Len(t, body.Layouts["billing"], 10)
	require.Contains(t, body.Layouts, "order")
	assert.Len(t, body.Layouts["order"], 12)
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("json envelope", func(t *testing.T) {
		t.Parallel()

		env, err := json.Marshal(map[string]string{"html_email": billingTable})
		require.NoError(t, err)

		srv := newTestServer()
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/billing", bytes.NewReader(env)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var result struct {
			Records      []map[string]string `json:"records"`
			RowsSeen     int                 `json:"rowsSeen"`
			RowsAccepted int                 `json:"rowsAccepted"`
			RowsRejected int                 `json:"rowsRejected"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Records, 1)
		assert.Equal(t, "AURORA", result.Records[0]["Cliente/Fornecedor"])
		assert.Equal(t, "480.00", result.Records[0]["Total Item"])
		assert.Equal(t, 2, result.RowsSeen)
		assert.Equal(t, 1, result.RowsRejected)
	})

	t.Run("raw html fallback", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer()
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/billing", strings.NewReader(billingTable)))

		require.Equal(t, http.StatusOK, rec.Code)

		var result struct {
			Records []map[string]string `json:"records"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Records, 1)
	})

	t.Run("empty body yields empty result", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer()
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/billing", strings.NewReader("")))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"records":[],"rowsSeen":0,"rowsAccepted":0,"rowsRejected":0}`, rec.Body.String())
	})

	t.Run("unknown kind is 404", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer()
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/nota", strings.NewReader(billingTable)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("custom layout option", func(t *testing.T) {
		t.Parallel()

		layout := faturex.BillingLayout()
		layout.Kind = "billing-v2"
		layout.RejectZeroTotal = false

		srv := newTestServer(faturexhttp.WithLayout("billing-v2", layout))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/billing-v2", strings.NewReader(billingTable)))

		require.Equal(t, http.StatusOK, rec.Code)

		var result struct {
			Records []map[string]string `json:"records"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Len(t, result.Records, 2)
	})

	t.Run("extractor error maps to status code", func(t *testing.T) {
		t.Parallel()

		inner := &mock.RowExtractor{
			ExtractFn: func(html string, layout faturex.RowLayout) (*faturex.ExtractionResult, error) {
				return nil, faturex.Errorf(faturex.EINVALID, "bad layout")
			},
		}

		srv := faturexhttp.NewServer(inner, newTestLogger())
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/extract/billing", strings.NewReader(billingTable)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad layout")
	})
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(faturexhttp.WithRateLimit(1, 1))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second request from the same client exceeds the burst.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
