package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/services"
)

// saveFailedMessage is the only detail a client gets about a failed write.
const saveFailedMessage = "Could not add expense. Please try again."

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			ErrorResponse(http.StatusServiceUnavailable, "storage unavailable").Write(w)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleCategories(w http.ResponseWriter, _ *http.Request) {
	names := []string{core.All}
	for _, c := range core.Categories() {
		names = append(names, c.String())
	}
	NewJSONResponse().Body(map[string][]string{"categories": names}).Write(w)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	ov, ok := s.overviewOrError(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(expensesView{
		Category: ov.Selection.Category,
		Month:    ov.Selection.YearMonth,
		Expenses: ov.Records,
		Total:    number(ov.FilteredTotal),
	}).Write(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, ok := s.overviewOrError(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(newOverviewView(ov)).Write(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ov, ok := s.overviewOrError(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(newChartView(ov.Monthly)).Write(w)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	ov, ok := s.overviewOrError(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(map[string][]string{"months": ov.YearMonths}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		logger.WarnContext(ctx, "Invalid expense request body", log.FieldError, err)
		BadRequestError("invalid request body").Write(w)
		return
	}

	e, err := s.svc.AddExpense(ctx, parser.NewExpense())
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationErrorResponse(verr).Write(w)
		return
	case err != nil:
		logger.ErrorContext(ctx, "Expense save failed", log.FieldError, err)
		InternalServerError(saveFailedMessage).Write(w)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		Body(e).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := sanitizeInput(r.PathValue("id"))

	removed, err := s.svc.DeleteExpense(ctx, id)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Expense delete failed",
			log.FieldExpenseID, id,
			log.FieldError, err)
		InternalServerError("Could not delete expense. Please try again.").Write(w)
		return
	}
	if !removed {
		log.FromContext(ctx).DebugContext(ctx, "Delete of unknown expense ignored", log.FieldExpenseID, id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) overviewOrError(w http.ResponseWriter, r *http.Request) (services.Overview, bool) {
	ov, err := s.overview(r.Context(), parseSelection(r.URL.Query()))
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			ValidationErrorResponse(verr).Write(w)
		} else {
			InternalServerError("could not load expenses").Write(w)
		}
		return services.Overview{}, false
	}
	return ov, true
}
