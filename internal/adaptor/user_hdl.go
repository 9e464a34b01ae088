package adaptor

import (
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// AddUser handles POST /user/addNew
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "User registered successfully", user)
}

// Profile handles GET /user/profile (protected)
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), principal)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}
