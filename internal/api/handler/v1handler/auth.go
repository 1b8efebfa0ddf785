package v1handler

import (
	"net/http"

	"emailfinder/internal/auth"
	"emailfinder/pkg/domain"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		h.writeError(w, r, err)

		return
	}

	sess, err := h.deps.Auth.Login(r.Context(), sessionKey(r.Context()), creds)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeJSON(w, r, &reg); err != nil {
		h.writeError(w, r, err)

		return
	}

	sess, err := h.deps.Auth.Register(r.Context(), sessionKey(r.Context()), reg)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

// Logout signs the session out and forgets its form state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(r.Context())
	if err := h.deps.Auth.Logout(r.Context(), key); err != nil {
		h.writeError(w, r, err)

		return
	}
	h.deps.Workflows.Drop(key)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: auth.MsgResetLinkSent})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordReset
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Auth.ResetPassword(r.Context(), req); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me validates the session against the backend and returns its user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.deps.Auth.Restore(r.Context(), sessionKey(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, sess.User)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Auth.UpdateProfile(r.Context(), sessionKey(r.Context()), update)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var change domain.PasswordChange
	if err := decodeJSON(w, r, &change); err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Auth.ChangePassword(r.Context(), sessionKey(r.Context()), change); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
