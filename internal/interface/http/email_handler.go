package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
	"github.com/oksasatya/juicyplanet/pkg/response"
)

// EmailHandler lets admins push an arbitrary email through the configured
// transport, e.g. to check Mailgun or queue wiring.
type EmailHandler struct {
	Mail   mailer.Dispatcher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewEmailHandler(mail mailer.Dispatcher, logger *logrus.Logger, cfg *config.Config) *EmailHandler {
	return &EmailHandler{Mail: mail, Logger: logger, Cfg: cfg}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template" binding:"omitempty,oneof=verify_otp verify_email"`
	Data     map[string]any `json:"data"`
	Subject  string         `json:"subject"`
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
}

// Send POST /api/admin/emails
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if req.Template == "" && (req.Subject == "" || (req.Text == "" && req.HTML == "")) {
		response.Error[any](c, http.StatusBadRequest, "either template or subject with text/html is required", nil)
		return
	}
	if h.Cfg != nil && !h.Cfg.MailSendEnabled {
		response.Success(c, http.StatusAccepted, gin.H{"sent": false, "disabled": true}, "email sending disabled", nil)
		return
	}

	job := mailer.EmailJob{To: req.To}
	if req.Template != "" {
		job.Template = req.Template
		job.Data = req.Data
	} else {
		job.Subject = req.Subject
		job.Text = req.Text
		job.HTML = req.HTML
	}
	if err := h.Mail.Dispatch(c.Request.Context(), job); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("template", job.Template).Warn("admin email dispatch failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to send email", nil)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"sent": true}, "email accepted", nil)
}
