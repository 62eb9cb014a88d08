package handlers

import (
	"errors"
	"net/http"

	"backoffice/internal/accounts"
	"backoffice/internal/middleware"
	"backoffice/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// operatorView: оператор без хеша пароля.
type operatorView struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
}

func viewOf(u models.User) operatorView {
	return operatorView{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}

func (a *API) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	user, err := a.Accounts.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, "invalid username or password", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "login failed", err)
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	if err := sess.Save(); err != nil {
		RespondError(c, http.StatusInternalServerError, "could not save session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": viewOf(user)})
}

func (a *API) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Status(http.StatusNoContent)
}

func (a *API) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": viewOf(user)})
}

func (a *API) ListOperators(c *gin.Context) {
	users, err := a.Accounts.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load operators", err)
		return
	}
	out := make([]operatorView, 0, len(users))
	for _, u := range users {
		out = append(out, viewOf(u))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

type registerForm struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateOperator регистрирует оператора; доступно только админу.
func (a *API) CreateOperator(c *gin.Context) {
	var form registerForm
	if !BindJSONOrError(c, &form) {
		return
	}

	user, err := a.Accounts.Register(c.Request.Context(), form.Username, form.Name, form.Password, models.UserRole(form.Role))
	switch {
	case errors.Is(err, accounts.ErrInvalid):
		RespondError(c, http.StatusUnprocessableEntity, "username, password or role is invalid", nil)
		return
	case errors.Is(err, accounts.ErrExists):
		RespondError(c, http.StatusConflict, "operator already exists", nil)
		return
	case err != nil:
		RespondError(c, http.StatusInternalServerError, "could not save operator", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": viewOf(user)})
}
