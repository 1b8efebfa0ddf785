// Package pagehandler serves the server-rendered pages: sign in, sign up,
// password reset and the discovery dashboard. The dashboard drives the
// workflow through the JSON API.
package pagehandler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"emailfinder/internal/api/session"
	"emailfinder/internal/auth"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templates embed.FS

// MsgSomethingWentWrong is shown for failures that carry no user-facing message.
const MsgSomethingWentWrong = "Something went wrong. Please try again."

// Page names.
const (
	PageIndex          = "index"
	PageLogin          = "login"
	PageRegister       = "register"
	PageForgotPassword = "forgot_password"
)

type Deps struct {
	Auth      *auth.Service
	Workflows *discovery.Registry
}

type Handler struct {
	deps  Deps
	pages map[string]*template.Template
}

type pageData struct {
	Title  string
	Error  string
	Notice string
	User   *domain.User
	Values map[string]string
	State  *discovery.State
}

func New(deps Deps) (*Handler, error) {
	h := &Handler{deps: deps, pages: make(map[string]*template.Template)}

	for _, name := range []string{PageIndex, PageLogin, PageRegister, PageForgotPassword} {
		tpl, err := template.New(name).
			Option("missingkey=zero").
			ParseFS(templates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("could not parse %s template: %w", name, err)
		}
		h.pages[name] = tpl
	}

	return h, nil
}

// Routes expects session.Middleware to run first.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Index)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Get("/forgot-password", h.ForgotPasswordPage)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/logout", h.Logout)
	})

	return r
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error(r.Context(), "could not render page", zap.String("page", name), zap.Error(err))
		http.Error(w, MsgSomethingWentWrong, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError re-renders a form page with err's message and status.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, name string, data pageData, err error) {
	kind := serrors.KindOf(err)
	if kind == serrors.ErrInternal {
		logger.Error(r.Context(), "page action failed", zap.Error(err))
		data.Error = MsgSomethingWentWrong
	} else {
		data.Error = serrors.MessageOf(err, MsgSomethingWentWrong)
	}

	h.render(w, r, serrors.Status(kind), name, data)
}

func (h *Handler) signedIn(r *http.Request) bool {
	_, err := h.deps.Auth.Current(r.Context(), session.Key(r.Context()))

	return err == nil
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Index is the dashboard. Anonymous visitors are sent to the sign-in page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	key := session.Key(r.Context())
	sess, err := h.deps.Auth.Current(r.Context(), key)
	if err != nil {
		redirect(w, r, "/auth/login")

		return
	}

	state := h.deps.Workflows.Get(key).Snapshot()
	h.render(w, r, http.StatusOK, PageIndex, pageData{Title: "Dashboard", User: &sess.User, State: &state})
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.signedIn(r) {
		redirect(w, r, "/")

		return
	}

	h.render(w, r, http.StatusOK, PageLogin, pageData{Title: "Sign in"})
}

// Login stays on the page with a 401 when the credentials are rejected.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, PageLogin, pageData{Title: "Sign in"}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form"))

		return
	}

	creds := domain.Credentials{Email: r.PostForm.Get("email"), Password: r.PostForm.Get("password")}
	data := pageData{Title: "Sign in", Values: map[string]string{"email": creds.Email}}

	if _, err := h.deps.Auth.Login(r.Context(), session.Key(r.Context()), creds); err != nil {
		h.renderError(w, r, PageLogin, data, err)

		return
	}

	redirect(w, r, "/")
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.signedIn(r) {
		redirect(w, r, "/")

		return
	}

	h.render(w, r, http.StatusOK, PageRegister, pageData{Title: "Create an account"})
}

// Register signs the new user in and lands on the dashboard.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Create an account"}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, PageRegister, data, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form"))

		return
	}

	reg := domain.Registration{
		FirstName:       r.PostForm.Get("firstName"),
		LastName:        r.PostForm.Get("lastName"),
		Email:           r.PostForm.Get("email"),
		Phone:           strings.TrimSpace(r.PostForm.Get("phone")),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
		AgreeToTerms:    r.PostForm.Get("agreeToTerms") != "",
	}
	data.Values = map[string]string{
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
		"email":     reg.Email,
		"phone":     reg.Phone,
	}
	if reg.AgreeToTerms {
		data.Values["agreeToTerms"] = "on"
	}

	if _, err := h.deps.Auth.Register(r.Context(), session.Key(r.Context()), reg); err != nil {
		h.renderError(w, r, PageRegister, data, err)

		return
	}

	redirect(w, r, "/")
}

func (h *Handler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, PageForgotPassword, pageData{Title: "Reset your password"})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Reset your password"}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, PageForgotPassword, data, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form"))

		return
	}

	email := r.PostForm.Get("email")
	data.Values = map[string]string{"email": email}
	if err := h.deps.Auth.ForgotPassword(r.Context(), email); err != nil {
		h.renderError(w, r, PageForgotPassword, data, err)

		return
	}

	data.Notice = auth.MsgResetLinkSent
	data.Values = nil
	h.render(w, r, http.StatusOK, PageForgotPassword, data)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	key := session.Key(r.Context())
	if err := h.deps.Auth.Logout(r.Context(), key); err != nil {
		logger.Warn(r.Context(), "logout failed", zap.Error(err))
	}
	h.deps.Workflows.Drop(key)

	redirect(w, r, "/auth/login")
}
