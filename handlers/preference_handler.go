package handlers

import (
	"net/http"

	"github.com/Sabbir999/Team-budget/aggregator"
	"github.com/Sabbir999/Team-budget/middleware"
	"github.com/Sabbir999/Team-budget/services"
)

type PreferenceHandler struct {
	preferenceService services.PreferenceService
	sessions          *aggregator.Manager
}

func NewPreferenceHandler(preferenceService services.PreferenceService, sessions *aggregator.Manager) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		sessions:          sessions,
	}
}

func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	pref, err := h.preferenceService.GetPreference(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"preference": pref}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update saves the user's team/sport selection. A live session, when one is
// open, applies the switch immediately so connected tabs follow along.
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.UpdatePreferenceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if session, ok := h.sessions.Get(userID); ok && input.CurrentTeamID != nil {
		if err := session.SetCurrentTeam(r.Context(), *input.CurrentTeamID); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		pref, err := h.preferenceService.GetPreference(r.Context(), userID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"preference": pref}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	pref, err := h.preferenceService.UpdatePreference(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"preference": pref}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
