package v1

import (
	"fmt"
	"net/http"
	"time"

	"solar-quote-backend/internal/delivery/http/response"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/apperror"
	"solar-quote-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type DiagnosticsHandler struct {
	diagnosticsUC domain.DiagnosticsUsecase
}

// NewDiagnosticsHandler registers the operator setup checks on an
// authenticated group.
func NewDiagnosticsHandler(operator *gin.RouterGroup, diagnosticsUC domain.DiagnosticsUsecase) {
	handler := &DiagnosticsHandler{
		diagnosticsUC: diagnosticsUC,
	}

	operator.GET("/email/test", handler.CheckEmailConnection)
	operator.POST("/email/test", handler.SendTestEmail)
	operator.GET("/quote/test", handler.CheckQuoteConfiguration)
	operator.POST("/quote/test", handler.PingQuoteEndpoint)
}

// CheckEmailConnection godoc
// @Summary      Verify Email Provider
// @Description  Validates the email configuration and checks provider credentials. Sends nothing.
// @Tags         diagnostics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.EmailConfigSummary}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /email/test [get]
func (h *DiagnosticsHandler) CheckEmailConnection(c *gin.Context) {
	summary, err := h.diagnosticsUC.CheckConnection(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Email configuration test failed", err.Error())
		return
	}

	response.Success(c, http.StatusOK,
		"Email configuration is valid and provider connection successful", summary)
}

// SendTestEmail godoc
// @Summary      Send Test Email
// @Description  Sends a plain-text test message to the given address.
// @Tags         diagnostics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.TestEmailRequest  true  "Recipient"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /email/test [post]
func (h *DiagnosticsHandler) SendTestEmail(c *gin.Context) {
	var req domain.TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.BadRequest("Valid test email address is required")
		appErr.Details = validation.FormatValidationErrors(err)
		c.Error(appErr)
		return
	}

	if err := h.diagnosticsUC.SendTestEmail(c.Request.Context(), req.TestEmail); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to send test email", err.Error())
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Test email sent successfully to %s", req.TestEmail), nil)
}

// CheckQuoteConfiguration godoc
// @Summary      Check Quote Configuration
// @Description  Validates the email configuration without contacting the provider.
// @Tags         diagnostics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.EmailConfigSummary}
// @Failure      500  {object}  response.Response
// @Router       /quote/test [get]
func (h *DiagnosticsHandler) CheckQuoteConfiguration(c *gin.Context) {
	summary, err := h.diagnosticsUC.CheckConfiguration(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Email configuration is valid", summary)
}

// PingQuoteEndpoint godoc
// @Summary      Quote Endpoint Liveness
// @Tags         diagnostics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /quote/test [post]
func (h *DiagnosticsHandler) PingQuoteEndpoint(c *gin.Context) {
	response.Success(c, http.StatusOK, "Test quote endpoint is working", gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
