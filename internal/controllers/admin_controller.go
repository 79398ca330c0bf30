package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"rankd/internal/providers"
	"rankd/internal/services"
)

// AdminController exposes the owner-gated operations. Authorization happens
// inside the service against the stored owner; the controller only supplies
// the caller identity.
type AdminController struct {
	logger  providers.Logger
	service services.RankingServiceInterface
}

func NewAdminController(logger providers.Logger, service services.RankingServiceInterface) *AdminController {
	return &AdminController{
		logger:  logger,
		service: service,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (adm *AdminController) SetPaused(w http.ResponseWriter, r *http.Request) {
	caller := providers.CallerFrom(r.Context())
	var payload struct {
		Paused bool `json:"paused"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := adm.service.SetPaused(caller, payload.Paused); err != nil {
		writeServiceError(w, err)
		return
	}
	adm.logger.Infof(providers.TypeApp, "Paused flag set to %t by %s", payload.Paused, caller)
	writeJSON(w, http.StatusOK, map[string]any{"paused": payload.Paused})
}

func (adm *AdminController) ResetEpoch(w http.ResponseWriter, r *http.Request) {
	caller := providers.CallerFrom(r.Context())
	epoch, err := adm.service.ResetEpoch(caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	adm.logger.Infof(providers.TypeApp, "Epoch bumped to %d by %s", epoch, caller)
	writeJSON(w, http.StatusOK, map[string]any{"epoch": epoch})
}

func (adm *AdminController) SetOwner(w http.ResponseWriter, r *http.Request) {
	caller := providers.CallerFrom(r.Context())
	var payload struct {
		Owner string `json:"owner"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := adm.service.SetOwner(caller, payload.Owner); err != nil {
		writeServiceError(w, err)
		return
	}
	adm.logger.Warnf(providers.TypeApp, "Owner changed to %s by %s", payload.Owner, caller)
	writeJSON(w, http.StatusOK, map[string]any{"owner": payload.Owner})
}

func (adm *AdminController) SetDailySeed(w http.ResponseWriter, r *http.Request) {
	caller := providers.CallerFrom(r.Context())
	var payload struct {
		Day  uint32 `json:"day"`
		Seed uint64 `json:"seed"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.Day == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := adm.service.SetDailySeed(caller, payload.Day, payload.Seed); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": payload.Day, "seed": payload.Seed})
}

func (adm *AdminController) Migrate(w http.ResponseWriter, r *http.Request) {
	caller := providers.CallerFrom(r.Context())
	if err := adm.service.Migrate(caller); err != nil {
		adm.logger.Errorf(providers.TypeApp, "Migration requested by %s failed: %s", caller, err)
		writeServiceError(w, err)
		return
	}
	adm.logger.Infof(providers.TypeApp, "Migration completed by %s", caller)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
