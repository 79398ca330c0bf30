package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankd/internal/providers"
	"rankd/internal/services"
	"rankd/internal/structures"
	"rankd/internal/testutil"
)

type apiFixture struct {
	controller *ApiController
	service    services.RankingServiceInterface
	cache      *testutil.MockCache
	metrics    *testutil.MockMetrics
}

func newApiFixture() *apiFixture {
	conf := &structures.Config{Ranking: structures.RankingConfig{Owner: "admin"}}
	svc := services.NewRankingService(conf, &testutil.CaptureSink{})
	cache := testutil.NewMockCache()
	metrics := &testutil.MockMetrics{}
	return &apiFixture{
		controller: NewApiController(&testutil.MockLogger{}, svc, cache, metrics),
		service:    svc,
		cache:      cache,
		metrics:    metrics,
	}
}

func postSubmit(f *apiFixture, player, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	if player != "" {
		req.Header.Set(providers.PlayerIDHeader, player)
	}
	w := httptest.NewRecorder()
	providers.RequireIdentity(http.HandlerFunc(f.controller.SubmitResult)).ServeHTTP(w, req)
	return w
}

func TestSubmitResult_Created(t *testing.T) {
	f := newApiFixture()

	w := postSubmit(f, "alice", `{"day":20240101,"time_seconds":60,"move_count":50}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var outcome services.SubmitOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, uint64(20349), outcome.Points)
	assert.Equal(t, 0, outcome.DailyRank)
	assert.Equal(t, 1, f.metrics.Submissions[providers.OutcomeAccepted])
}

func TestSubmitResult_MissingIdentity(t *testing.T) {
	f := newApiFixture()

	w := postSubmit(f, "", `{"day":20240101,"time_seconds":60,"move_count":50}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.metrics.Submissions)
}

func TestSubmitResult_MalformedBody(t *testing.T) {
	f := newApiFixture()

	w := postSubmit(f, "alice", `{"day":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, f.metrics.Submissions[providers.OutcomeRejectedInvalid])
}

func TestSubmitResult_OutOfBoundsPayload(t *testing.T) {
	f := newApiFixture()

	for _, body := range []string{
		`{"day":20240101,"time_seconds":0,"move_count":50}`,
		`{"day":20240101,"time_seconds":86401,"move_count":50}`,
		`{"day":20240101,"time_seconds":60,"move_count":501}`,
		`{"time_seconds":60,"move_count":50}`,
	} {
		w := postSubmit(f, "alice", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Equal(t, 4, f.metrics.Submissions[providers.OutcomeRejectedInvalid])
}

func TestSubmitResult_PausedMapsTo503(t *testing.T) {
	f := newApiFixture()
	require.NoError(t, f.service.SetPaused("admin", true))

	w := postSubmit(f, "alice", `{"day":20240101,"time_seconds":60,"move_count":50}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 1, f.metrics.Submissions[providers.OutcomeRejectedPaused])
}

func TestSubmitResult_NoImprovementCounted(t *testing.T) {
	f := newApiFixture()

	w := postSubmit(f, "alice", `{"day":20240101,"time_seconds":60,"move_count":50}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = postSubmit(f, "alice", `{"day":20240101,"time_seconds":600,"move_count":200}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 1, f.metrics.Submissions[providers.OutcomeAccepted])
	assert.Equal(t, 1, f.metrics.Submissions[providers.OutcomeNoImprovement])
}

func TestGetBest_QueryValidation(t *testing.T) {
	f := newApiFixture()
	_, err := f.service.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/best?player=alice&day=20240101", nil)
	w := httptest.NewRecorder()
	f.controller.GetBest(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"points":20349`)

	for _, url := range []string{"/best?day=20240101", "/best?player=alice", "/best?player=alice&day=junk"} {
		w = httptest.NewRecorder()
		f.controller.GetBest(w, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestGetTotalAndStreak(t *testing.T) {
	f := newApiFixture()
	_, err := f.service.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)
	_, err = f.service.SubmitResult("alice", 20240102, 60, 50)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.controller.GetTotal(w, httptest.NewRequest(http.MethodGet, "/total?player=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_points"`)

	w = httptest.NewRecorder()
	f.controller.GetStreak(w, httptest.NewRequest(http.MethodGet, "/streak?player=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":2`)
	assert.Contains(t, w.Body.String(), `"days_played":2`)

	w = httptest.NewRecorder()
	f.controller.GetTotal(w, httptest.NewRequest(http.MethodGet, "/total", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDailyLeaderboard_FullAndByRank(t *testing.T) {
	f := newApiFixture()
	_, err := f.service.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)
	_, err = f.service.SubmitResult("bob", 20240101, 90, 70)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.controller.GetDailyLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/daily?day=20240101", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var board boardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, 2, board.Length)
	assert.Equal(t, "alice", board.Entries[0].PlayerID)

	w = httptest.NewRecorder()
	f.controller.GetDailyLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/daily?day=20240101&rank=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob")

	w = httptest.NewRecorder()
	f.controller.GetDailyLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/daily?day=20240101&rank=9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	f.controller.GetDailyLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/daily", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDailyLeaderboard_ServedFromCache(t *testing.T) {
	f := newApiFixture()
	f.cache.Set("daily:20240101", []byte(`{"cached":true}`))

	w := httptest.NewRecorder()
	f.controller.GetDailyLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/daily?day=20240101", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cached":true}`, w.Body.String())
}

func TestGetAllTimeLeaderboard(t *testing.T) {
	f := newApiFixture()
	_, err := f.service.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.controller.GetAllTimeLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/alltime", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var board boardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, 1, board.Length)

	// Populated on the miss, reused afterwards.
	_, ok := f.cache.Get("alltime")
	assert.True(t, ok)

	w = httptest.NewRecorder()
	f.controller.GetAllTimeLeaderboard(w, httptest.NewRequest(http.MethodGet, "/leaderboard/alltime?rank=5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDailyPointsEpochPausedSeed(t *testing.T) {
	f := newApiFixture()
	_, err := f.service.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)
	require.NoError(t, f.service.SetDailySeed("admin", 20240101, 99))

	w := httptest.NewRecorder()
	f.controller.GetDailyPoints(w, httptest.NewRequest(http.MethodGet, "/points/daily?day=20240101", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"points":20349`)

	w = httptest.NewRecorder()
	f.controller.GetEpoch(w, httptest.NewRequest(http.MethodGet, "/epoch", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"epoch":0`)

	w = httptest.NewRecorder()
	f.controller.GetPaused(w, httptest.NewRequest(http.MethodGet, "/paused", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paused":false`)

	w = httptest.NewRecorder()
	f.controller.GetDailySeed(w, httptest.NewRequest(http.MethodGet, "/seed?day=20240101", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seed":99`)

	w = httptest.NewRecorder()
	f.controller.GetDailySeed(w, httptest.NewRequest(http.MethodGet, "/seed", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
