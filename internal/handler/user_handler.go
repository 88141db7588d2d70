package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type UserHandler struct {
	responder
	userService service.UserServiceInterface
}

func NewUserHandler(userService service.UserServiceInterface, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		responder:   responder{logger: logger.WithComponent("user_handler")},
		userService: userService,
	}
}

// RegisterUser handles POST /api/v1/users
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := parseRequestBody(r, &user); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.userService.RegisterUser(r.Context(), &user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, created)
}

// GetUser handles GET /api/v1/users/{username}; an email works too.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, user)
}
