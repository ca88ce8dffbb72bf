package handlers

import (
	"errors"
	"net/http"

	"pizza-orders/internal/forms"
	"pizza-orders/internal/repository"
	"pizza-orders/internal/services"

	"github.com/rs/zerolog"
)

type LoginRecorder interface {
	Login(ok bool)
}

type AuthHandler struct {
	userService *services.UserService
	forms       *forms.Validator
	view        *Renderer
	logins      LoginRecorder
	logger      zerolog.Logger
}

func NewAuthHandler(userService *services.UserService, validator *forms.Validator, view *Renderer, logins LoginRecorder, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		forms:       validator,
		view:        view,
		logins:      logins,
		logger:      logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form forms.LoginForm
	data := PageData{Title: "Login", Form: &form}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "login", data)
		return
	}

	if data.Errors = h.forms.Bind(r, &form); data.Errors.Any() {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "login", data)
		return
	}

	sess := h.view.session(r)
	user, err := h.userService.Authenticate(r.Context(), form.Email, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.logins.Login(false)
		sess.Logout()
		sess.Flash("danger", "Invalid email or password. Please try again.")
		h.view.Render(w, r, http.StatusUnauthorized, "login", data)
		return
	}
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.logins.Login(true)
	sess.Login(user.Email, user.Role)
	sess.Flash("success", "Login successful!")
	h.view.Redirect(w, r, "/")
}

func (h *AuthHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form forms.RegisterForm
	data := PageData{Title: "Create Account", Form: &form}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "create", data)
		return
	}

	if data.Errors = h.forms.Bind(r, &form); data.Errors.Any() {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "create", data)
		return
	}

	err := h.userService.Register(r.Context(), form.ToUser())
	if errors.Is(err, repository.ErrUserExists) {
		data.Errors.Add("email", "An account with this email already exists.")
		h.view.Render(w, r, http.StatusConflict, "create", data)
		return
	}
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.session(r).Flash("success", "Account created successfully! You can now login.")
	h.view.Redirect(w, r, "/login")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.view.session(r)
	h.logger.Info().Str("email", sess.Email).Msg("User logged out")
	sess.Logout()
	sess.Flash("success", "You have been logged out successfully.")
	h.view.Redirect(w, r, "/login")
}
