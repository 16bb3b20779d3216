package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetarJSON = `[
  {
    "icaoId": "EGLL",
    "reportTime": "2025-06-10T11:50:00.000Z",
    "temp": 17.0,
    "dewp": 12.0,
    "wdir": 240,
    "wspd": 12,
    "wgst": 22,
    "visib": "10+",
    "altim": 1017.4,
    "rawOb": "EGLL 101150Z 24012G22KT 9999 SCT030 17/12 Q1017",
    "fltCat": "VFR"
  },
  {
    "icaoId": "EGKK",
    "reportTime": "2025-06-10T11:50:00.000Z",
    "temp": 16.0,
    "dewp": 15.0,
    "wdir": 200,
    "wspd": 8,
    "visib": 1.5,
    "altim": 1016.0,
    "rawOb": "EGKK 101150Z 20008KT 2400 BR BKN004 16/15 Q1016",
    "fltCat": "LIFR"
  }
]`

func TestMetarClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metar", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "format=json")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleMetarJSON))
	}))
	defer srv.Close()

	client := NewMetarClient(WithMetarBaseURL(srv.URL), WithMetarHTTPClient(srv.Client()))
	reports, err := client.Fetch(context.Background(), []string{"EGLL", "EGKK"})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	lhr := reports[0]
	assert.Equal(t, "EGLL", lhr.Station)
	assert.Equal(t, domain.CategoryVFR, lhr.Category)
	assert.Equal(t, 240, lhr.WindDirDeg)
	assert.Equal(t, 22, lhr.WindGustKt)
	assert.Equal(t, 10.0, lhr.VisibilityMiles) // "10+" string form
	assert.Equal(t, time.Date(2025, 6, 10, 11, 50, 0, 0, time.UTC), lhr.ObservedAt)

	lgw := reports[1]
	assert.Equal(t, domain.CategoryLIFR, lgw.Category)
	assert.Equal(t, 1.5, lgw.VisibilityMiles) // numeric form
	assert.Zero(t, lgw.WindGustKt)
}

func TestMetarClient_Fetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewMetarClient(WithMetarBaseURL(srv.URL), WithMetarHTTPClient(srv.Client()))
	_, err := client.Fetch(context.Background(), []string{"EGLL"})
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}

func TestMetarClient_Fetch_NoStations(t *testing.T) {
	client := NewMetarClient()
	reports, err := client.Fetch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, reports)
}

func TestMetarClient_FetchWithRetry_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := NewMetarClient(WithMetarBaseURL(srv.URL), WithMetarHTTPClient(srv.Client()))
	_, err := client.FetchWithRetry(ctx, []string{"EGLL"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseVisibility(t *testing.T) {
	assert.Equal(t, 10.0, parseVisibility("10+"))
	assert.Equal(t, 4.97, parseVisibility(4.97))
	assert.Equal(t, 0.0, parseVisibility(nil))
	assert.Equal(t, 0.0, parseVisibility("unknown"))
}
