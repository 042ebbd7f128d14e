package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sabbir999/Team-budget/middleware"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/services"
	"github.com/Sabbir999/Team-budget/stats"
)

type ExpenseHandler struct {
	expenseService services.ExpenseService
}

func NewExpenseHandler(expenseService services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateExpenseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"expense": expense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	expense, err := h.expenseService.GetExpense(r.Context(), userID, chi.URLParam(r, "expenseID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"expense": expense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	query := r.URL.Query()
	teamID := query.Get("teamId")

	var expenses []models.Expense
	if teamID == "" {
		expenses, err = h.expenseService.ListExpenses(r.Context(), userID)
	} else {
		expenses, err = h.expenseService.ListTeamExpenses(r.Context(), userID, teamID)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// optional period narrowing, both parts required
	if month := query.Get("month"); month != "" {
		if year, convErr := strconv.Atoi(query.Get("year")); convErr == nil {
			expenses = stats.FilterExpensesByPeriod(expenses, month, year)
		}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"expenses": expenses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.UpdateExpenseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), userID, chi.URLParam(r, "expenseID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"expense": expense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), userID, chi.URLParam(r, "expenseID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	expense, err := h.expenseService.UploadReceipt(r.Context(), userID, chi.URLParam(r, "expenseID"), contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"expense": expense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
