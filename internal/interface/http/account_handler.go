package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/internal/application"
	"github.com/oksasatya/rituday/internal/interface/middleware"
	"github.com/oksasatya/rituday/pkg/response"
	"github.com/oksasatya/rituday/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	ID       string `form:"give_id" binding:"required"`
	Password string `form:"give_password" binding:"required"`
}

type checkIDRequest struct {
	ID string `form:"give_id" binding:"required"`
}

type checkEmailRequest struct {
	Email string `form:"give_email" binding:"required"`
}

type createAccountRequest struct {
	ID       string `form:"give_id" binding:"required"`
	Password string `form:"give_password" binding:"required"`
	Name     string `form:"give_name" binding:"required"`
	Email    string `form:"give_email" binding:"required"`
}

type findIDRequest struct {
	Name  string `form:"give_name" binding:"required"`
	Email string `form:"give_email" binding:"required"`
}

type findPasswordRequest struct {
	ID    string `form:"give_id" binding:"required"`
	Email string `form:"give_email" binding:"required"`
}

type changePasswordRequest struct {
	ID       string `form:"give_id" binding:"required"`
	Password string `form:"give_password" binding:"required"`
}

// bind parses the form into req and answers {result: fail, error} when it is invalid.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		response.Fail(c, response.Body{"error": validation.ToDetails(err)})
		return false
	}
	return true
}

// storeFault logs err with the request id and answers 500.
func storeFault(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.CtxRequestIDKey),
			"path":       c.FullPath(),
		}).Error(msg)
	}
	response.WriteError(c, http.StatusInternalServerError, "internal server error")
}

// maxFormBody bounds a form body read outside net/http's own parsing.
const maxFormBody = 64 << 10

// formValue reads key from an urlencoded body. net/http skips the body of a GET,
// so that case is parsed here.
func formValue(c *gin.Context, key string) string {
	if c.Request.Method != http.MethodGet {
		return c.PostForm(key)
	}
	if c.Request.Body == nil || c.ContentType() != binding.MIMEPOSTForm {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFormBody))
	if err != nil {
		return ""
	}
	vals, err := url.ParseQuery(string(raw))
	if err != nil {
		return ""
	}
	return vals.Get(key)
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.GetHeader("User-Agent")}
}

// Login POST /account/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.ID, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Fail(c, nil)
		return
	}
	if err != nil {
		storeFault(c, h.Logger, "login failed", err)
		return
	}
	response.Success(c, response.Body{"token": token})
}

// CheckToken GET|POST /account/check, token in the query string or form
func (h *AccountHandler) CheckToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = formValue(c, "token")
	}
	if _, err := h.Svc.CheckToken(token); err != nil {
		response.Fail(c, nil)
		return
	}
	response.Success(c, nil)
}

// CheckID POST /account/check/id. Answers fail when the id is already taken.
func (h *AccountHandler) CheckID(c *gin.Context) {
	var req checkIDRequest
	if !bind(c, &req) {
		return
	}
	taken, err := h.Svc.IDTaken(c.Request.Context(), req.ID)
	h.availability(c, taken, err)
}

// CheckEmail POST /account/check/email. Answers fail when the email is already taken.
func (h *AccountHandler) CheckEmail(c *gin.Context) {
	var req checkEmailRequest
	if !bind(c, &req) {
		return
	}
	taken, err := h.Svc.EmailTaken(c.Request.Context(), req.Email)
	h.availability(c, taken, err)
}

func (h *AccountHandler) availability(c *gin.Context, taken bool, err error) {
	switch {
	case err != nil:
		storeFault(c, h.Logger, "availability check failed", err)
	case taken:
		response.Fail(c, nil)
	default:
		response.Success(c, nil)
	}
}

// CreateAccount POST /account/create
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if !bind(c, &req) {
		return
	}
	err := h.Svc.CreateAccount(c.Request.Context(), req.ID, req.Password, req.Name, req.Email)
	if errors.Is(err, application.ErrAccountExists) {
		response.WriteError(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		storeFault(c, h.Logger, "create account failed", err)
		return
	}
	response.Success(c, nil)
}

// FindID POST /account/find/id
func (h *AccountHandler) FindID(c *gin.Context) {
	var req findIDRequest
	if !bind(c, &req) {
		return
	}
	id, err := h.Svc.FindID(c.Request.Context(), req.Name, req.Email)
	if errors.Is(err, application.ErrUserNotFound) {
		response.Fail(c, nil)
		return
	}
	if err != nil {
		storeFault(c, h.Logger, "find id failed", err)
		return
	}
	response.Success(c, response.Body{"id": id})
}

// FindPassword POST /account/find/password. Issues a temporary password.
func (h *AccountHandler) FindPassword(c *gin.Context) {
	var req findPasswordRequest
	if !bind(c, &req) {
		return
	}
	temp, err := h.Svc.FindPassword(c.Request.Context(), req.ID, req.Email, requestMeta(c))
	if errors.Is(err, application.ErrUserNotFound) {
		response.Fail(c, nil)
		return
	}
	if err != nil {
		storeFault(c, h.Logger, "find password failed", err)
		return
	}
	response.Success(c, response.Body{"password": temp})
}

// ChangePassword POST /account/change/password. Succeeds even for an unknown id.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), req.ID, req.Password, requestMeta(c)); err != nil {
		storeFault(c, h.Logger, "change password failed", err)
		return
	}
	response.Success(c, nil)
}
