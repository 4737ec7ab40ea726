package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"folio/internal/auth"
	"folio/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (d Dependencies) register(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "register")
	if !ok {
		return
	}
	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		d.Log.Error("hash password", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	user, err := d.DB.Queries.CreateUser(r.Context(), req.Username, req.Email, hash, model.RoleUser)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			WriteError(w, http.StatusBadRequest, "Username or email already registered", d.Log)
			return
		}
		d.Log.Error("create user", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	writeJSON(w, http.StatusCreated, user.User)
}

// login accepts an OAuth2 password form: username carries the email address.
func (d Dependencies) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form body", d.Log)
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := d.DB.Queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			WriteError(w, http.StatusUnauthorized, "Incorrect email or password", d.Log)
			return
		}
		d.Log.Error("get user", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		WriteError(w, http.StatusUnauthorized, "Incorrect email or password", d.Log)
		return
	}

	token, err := d.JWT.Issue(user.ID)
	if err != nil {
		d.Log.Error("issue token", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (d Dependencies) me(w http.ResponseWriter, r *http.Request) {
	user, err := d.DB.Queries.GetUserByID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		d.writeDBError(w, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.User)
}
