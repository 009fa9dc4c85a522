package fakeapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crux/internal/contract"
	"crux/internal/fakeapi"
)

type stepClock struct {
	mu sync.Mutex
	at time.Time
}

func newStepClock(at time.Time) *stepClock { return &stepClock{at: at} }

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

func post(t *testing.T, srv *httptest.Server, path, body string) contract.TodaySessionResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out contract.TodaySessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSessionLifecycleCountsSends(t *testing.T) {
	clk := newStepClock(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	api := fakeapi.New(clk)
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	base := "/api/users/demo-user/sessions/today"
	assert.Equal(t, contract.TodaySessionResponse{IsActive: true}, post(t, srv, base+"/start", ""))

	clk.Advance(10 * time.Minute)
	for _, status := range []string{"COMPLETED", "ATTEMPTED", "FLASH", "PROJECT", "ONSIGHT"} {
		post(t, srv, base+"/climbs", `{"status":"`+status+`","attempts":1,"durationSeconds":30}`)
	}
	got := post(t, srv, base+"/end", "")
	assert.Equal(t, contract.TodaySessionResponse{Climbs: 5, Sends: 3, ElapsedSeconds: 600, IsActive: false}, got)

	// start after end keeps the ended session
	clk.Advance(time.Minute)
	assert.False(t, post(t, srv, base+"/start", "").IsActive)
	assert.Equal(t, 2, api.Calls(fakeapi.RouteStart))
}

func TestNewDayStartsFresh(t *testing.T) {
	clk := newStepClock(time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC))
	srv := httptest.NewServer(fakeapi.New(clk).Handler())
	defer srv.Close()

	base := "/api/users/u1/sessions/today"
	post(t, srv, base+"/climbs", `{"status":"FLASH","attempts":1,"durationSeconds":5}`)
	clk.Advance(2 * time.Hour)

	resp, err := http.Get(srv.URL + base)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out contract.TodaySessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, contract.TodaySessionResponse{}, out)
}

func TestFailureInjection(t *testing.T) {
	api := fakeapi.New(nil)
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	api.Fail(fakeapi.RouteStart, fakeapi.Failure{Status: http.StatusServiceUnavailable, Body: `{"detail":"maintenance"}`})
	resp, err := http.Post(srv.URL+"/api/users/u1/sessions/today/start", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	api.Recover(fakeapi.RouteStart)
	assert.True(t, post(t, srv, "/api/users/u1/sessions/today/start", "").IsActive)
}

func TestClimbRejectsMissingFields(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New(nil).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/users/u1/sessions/today/climbs", "application/json", strings.NewReader(`{"status":"FLASH"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
