package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/planner"
	"github.com/julianstephens/mealplan/internal/service"
	"github.com/julianstephens/mealplan/internal/storage"
)

const maxBodyBytes = 1 << 20

// newValidator reports fields by their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   constants.Version,
		"timestamp": time.Now().UTC().Format(constants.TimestampFormat),
	})
}

func (s *Server) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if !s.decode(w, r, &req) {
		return
	}
	ing, err := s.svc.AddIngredient(r.Context(), req.model())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ing)
}

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.svc.ListIngredients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(ingredients))
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !s.decode(w, r, &req) {
		return
	}
	recipe, err := s.svc.AddRecipe(r.Context(), req.model())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	recipes, err := s.svc.ListRecipes(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(recipes))
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.svc.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !s.decode(w, r, &req) {
		return
	}

	defaults, err := s.svc.DefaultConstraints(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	plan, err := s.svc.CreatePlan(r.Context(), req.Name, req.overrides().Apply(defaults))
	if err != nil {
		s.metrics.planFailures.WithLabelValues(failureReason(err)).Inc()
		writeError(w, err)
		return
	}
	s.metrics.plansCreated.Inc()
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	plans, err := s.svc.ListPlans(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(plans))
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.GetPlanView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGroceryList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.GroceryList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, err)
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			_, field, _ := strings.Cut(fe.Namespace(), ".")
			fields[field] = fieldMessage(fe)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag() + " check"
}

func pageParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	vals := [2]int{}
	for i, key := range []string{"skip", "limit"} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("%s must be an integer", key)})
			return 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], true
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, planner.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrInsufficientRecipes), errors.Is(err, planner.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, planner.ErrEmptyCatalog):
		return "empty_catalog"
	case errors.Is(err, planner.ErrInsufficientRecipes):
		return "insufficient_recipes"
	case errors.Is(err, planner.ErrInvalidConfiguration):
		return "invalid_configuration"
	}
	return "internal"
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
