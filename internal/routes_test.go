package internal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankd/internal/controllers"
	"rankd/internal/providers"
	"rankd/internal/services"
	"rankd/internal/structures"
	"rankd/internal/testutil"
)

func routesFixture() (providers.RouterProviderInterface, services.RankingServiceInterface) {
	conf := &structures.Config{Ranking: structures.RankingConfig{Owner: "admin"}}
	svc := services.NewRankingService(conf, &testutil.CaptureSink{})
	ac := controllers.NewApiController(&testutil.MockLogger{}, svc, testutil.NewMockCache(), &testutil.MockMetrics{})
	adm := controllers.NewAdminController(&testutil.MockLogger{}, svc)
	return InitRoutes(ac, adm, conf), svc
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	router, _ := routesFixture()
	routes := router.GetRoutes()

	require.Len(t, routes, 15)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/submit")
	assert.Contains(t, urls, "/best")
	assert.Contains(t, urls, "/total")
	assert.Contains(t, urls, "/streak")
	assert.Contains(t, urls, "/leaderboard/daily")
	assert.Contains(t, urls, "/leaderboard/alltime")
	assert.Contains(t, urls, "/points/daily")
	assert.Contains(t, urls, "/epoch")
	assert.Contains(t, urls, "/paused")
	assert.Contains(t, urls, "/seed")
	assert.Contains(t, urls, "/admin/pause")
	assert.Contains(t, urls, "/admin/epoch/reset")
	assert.Contains(t, urls, "/admin/owner")
	assert.Contains(t, urls, "/admin/seed")
	assert.Contains(t, urls, "/admin/migrate")
}

func routesMux(router providers.RouterProviderInterface) *http.ServeMux {
	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router, _ := routesFixture()
	mux := routesMux(router)

	// GET route with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/epoch", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST route with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/submit", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_WriteRoutesRequireIdentity(t *testing.T) {
	router, _ := routesFixture()
	mux := routesMux(router)

	for _, url := range []string{"/submit", "/admin/pause", "/admin/epoch/reset", "/admin/owner", "/admin/seed", "/admin/migrate"} {
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader("{}"))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, url)
	}
}

func TestInitRoutes_EndToEndSubmitAndRead(t *testing.T) {
	router, _ := routesFixture()
	mux := routesMux(router)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"day":20240101,"time_seconds":60,"move_count":50}`))
	req.Header.Set(providers.PlayerIDHeader, "alice")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/leaderboard/daily?day=20240101", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "alice")
}
