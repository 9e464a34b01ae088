package adaptor

import (
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/pkg/utils"
)

// GetToken handles POST /user/getToken
func (h *UserHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	var req request.AuthRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.service.IssueToken(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "issue token")
		return
	}

	utils.ResponseSuccess(w, "Login successful", token)
}
