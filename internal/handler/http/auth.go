package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/app"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/utils"
	"github.com/MKhiriev/bullbear-client/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	// other clients send the backend spelling ("moderate")
	risk, ok := models.ParseRiskTolerance(string(req.RiskTolerance))
	if !ok {
		log.Debug().Str("risk_tolerance", string(req.RiskTolerance)).Msg("unknown risk tolerance")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	req.RiskTolerance = risk

	result, err := h.backend.Register(ctx, req)
	if err != nil {
		h.writeBackendError(w, r, err, "registration failed")
		return
	}

	log.Debug().Str("user_id", result.User.ID).Msg("user successfully registered")
	h.writeAuthResult(w, r, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	log.Debug().Str("email", creds.Email).Msg("login attempt")

	result, err := h.backend.Login(ctx, creds)
	if err != nil {
		h.writeBackendError(w, r, err, "login failed")
		return
	}

	log.Debug().Str("user_id", result.User.ID).Msg("user successfully logged in")
	h.writeAuthResult(w, r, result, http.StatusOK)
}

// session reports the subject of a valid bearer token.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	_, _ = utils.WriteJSON(w, map[string]string{"user_id": userID}, http.StatusOK)
}

func (h *Handler) writeAuthResult(w http.ResponseWriter, r *http.Request, result models.AuthResult, status int) {
	w.Header().Set("Authorization", "Bearer "+result.Token)
	if _, err := utils.WriteJSON(w, adapter.EncodeAuthResponse(result), status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing auth response failed")
	}
}

func (h *Handler) writeBackendError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	reason := messageForStatus(status)
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict:
		reason = adapter.Reason(err)
	}

	logger.FromRequest(r).Err(err).Int("status", status).Msg(msg)
	utils.WriteError(w, reason, status)
}
