package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sabbir999/Team-budget/middleware"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreatePaymentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, duplicate, err := h.paymentService.CreatePayment(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"payment": payment}
	if duplicate {
		response["duplicate_warning"] = "a payment for this player and period already exists"
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	payment, err := h.paymentService.GetPayment(r.Context(), userID, chi.URLParam(r, "paymentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	query := r.URL.Query()
	teamID := query.Get("teamId")
	playerID := query.Get("playerId")

	var payments []models.Payment
	switch {
	case playerID != "":
		payments, err = h.paymentService.ListPlayerPayments(r.Context(), userID, playerID)
	case teamID != "":
		payments, err = h.paymentService.ListTeamPayments(r.Context(), userID, teamID)
	default:
		payments, err = h.paymentService.ListPayments(r.Context(), userID)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if status := query.Get("status"); status != "" {
		filtered := make([]models.Payment, 0, len(payments))
		for _, p := range payments {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.UpdatePaymentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.UpdatePayment(r.Context(), userID, chi.URLParam(r, "paymentID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.paymentService.DeletePayment(r.Context(), userID, chi.URLParam(r, "paymentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
