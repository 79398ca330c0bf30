package controllers

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"rankd/internal/models"
	"rankd/internal/providers"
	"rankd/internal/services"
)

const maxRequestBodySize = 1 << 16 // 64 KB, submissions are tiny

type ApiController struct {
	logger  providers.Logger
	service services.RankingServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.RankingServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

type submitRequest struct {
	Day         uint32 `json:"day" validate:"required"`
	TimeSeconds uint32 `json:"time_seconds" validate:"required|min:1|max:86400"`
	MoveCount   uint16 `json:"move_count" validate:"required|min:1|max:500"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// SubmitResult handles POST /submit. The identity middleware guarantees a
// caller; payload bounds are validated at the edge and enforced again inside
// the core.
func (ac *ApiController) SubmitResult(w http.ResponseWriter, r *http.Request) {
	player := providers.CallerFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ac.metrics.IncSubmissions(providers.OutcomeRejectedInvalid)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if v := validate.Struct(&payload); !v.Validate() {
		ac.metrics.IncSubmissions(providers.OutcomeRejectedInvalid)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := ac.service.SubmitResult(player, payload.Day, payload.TimeSeconds, payload.MoveCount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaused):
			ac.metrics.IncSubmissions(providers.OutcomeRejectedPaused)
		default:
			ac.metrics.IncSubmissions(providers.OutcomeRejectedInvalid)
		}
		writeServiceError(w, err)
		return
	}

	if outcome.Delta == 0 {
		ac.metrics.IncSubmissions(providers.OutcomeNoImprovement)
	} else {
		ac.metrics.IncSubmissions(providers.OutcomeAccepted)
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (ac *ApiController) GetBest(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	day := cast.ToUint32(r.URL.Query().Get("day"))
	if player == "" || day == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player": player,
		"day":    day,
		"points": ac.service.GetBest(player, day),
	})
}

func (ac *ApiController) GetTotal(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player":       player,
		"total_points": ac.service.GetTotal(player),
	})
}

func (ac *ApiController) GetStreak(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	streak, daysPlayed := ac.service.GetStreak(player)
	writeJSON(w, http.StatusOK, map[string]any{
		"player":      player,
		"streak":      streak,
		"days_played": daysPlayed,
	})
}

type boardResponse struct {
	Day     uint32         `json:"day,omitempty"`
	Length  int            `json:"length"`
	Entries []models.Entry `json:"entries"`
}

func (ac *ApiController) GetDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	day := cast.ToUint32(r.URL.Query().Get("day"))
	if day == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if rankParam := r.URL.Query().Get("rank"); rankParam != "" {
		entry, ok := ac.service.GetDailyEntry(day, cast.ToInt(rankParam))
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, entry)
		return
	}

	ac.serveFromCacheOrCompute(w, fmt.Sprintf("daily:%d", day), func() (any, error) {
		entries := ac.service.GetDailyEntries(day)
		return boardResponse{Day: day, Length: len(entries), Entries: entries}, nil
	})
}

func (ac *ApiController) GetAllTimeLeaderboard(w http.ResponseWriter, r *http.Request) {
	if rankParam := r.URL.Query().Get("rank"); rankParam != "" {
		entry, ok := ac.service.GetAllTimeEntry(cast.ToInt(rankParam))
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, entry)
		return
	}

	ac.serveFromCacheOrCompute(w, "alltime", func() (any, error) {
		entries := ac.service.GetAllTimeEntries()
		return boardResponse{Length: len(entries), Entries: entries}, nil
	})
}

func (ac *ApiController) GetDailyPoints(w http.ResponseWriter, r *http.Request) {
	day := cast.ToUint32(r.URL.Query().Get("day"))
	if day == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, fmt.Sprintf("points:%d", day), func() (any, error) {
		return map[string]any{"day": day, "points": ac.service.GetDailyPoints(day)}, nil
	})
}

func (ac *ApiController) GetEpoch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"epoch": ac.service.GetEpoch()})
}

func (ac *ApiController) GetPaused(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"paused": ac.service.IsPaused()})
}

func (ac *ApiController) GetDailySeed(w http.ResponseWriter, r *http.Request) {
	day := cast.ToUint32(r.URL.Query().Get("day"))
	if day == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":  day,
		"seed": ac.service.GetDailySeed(day),
	})
}
