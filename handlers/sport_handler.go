package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sabbir999/Team-budget/sports"
)

type SportHandler struct{}

func NewSportHandler() *SportHandler {
	return &SportHandler{}
}

func (h *SportHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sports": sports.List()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "sportKey")
	if !sports.Known(key) {
		notFoundResponse(w, r)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sports.GetConfig(key)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
