package v1

import (
	"errors"
	"net/http"

	"solar-quote-backend/internal/delivery/http/response"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	maxQuoteBodyBytes = 64 << 10

	msgQuoteSubmitted  = "Thank you! Your quote request has been submitted successfully. We'll be in touch soon."
	msgInvalidBody     = "Invalid request body"
	msgQuoteSendFailed = "Failed to submit quote request. Please try again later."
)

type QuoteHandler struct {
	quoteUC domain.QuoteUsecase
}

// NewQuoteHandler registers the public quote route on every group, behind
// the given middleware (rate limiting).
func NewQuoteHandler(quoteUC domain.QuoteUsecase, mw []gin.HandlerFunc, groups ...*gin.RouterGroup) {
	handler := &QuoteHandler{
		quoteUC: quoteUC,
	}

	chain := append(append([]gin.HandlerFunc{}, mw...), handler.SubmitQuote)
	for _, g := range groups {
		g.POST("/quote", chain...)
	}
}

// SubmitQuote godoc
// @Summary      Submit Quote Request
// @Description  Validates a quote form, emails the lead to the business and a confirmation to the customer.
// @Tags         quote
// @Accept       json
// @Produce      json
// @Param        quote  body      domain.QuoteRequest  true  "Quote Form Data"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /quote [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxQuoteBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		c.Error(apperror.BadRequest(msgInvalidBody))
		return
	}

	// An empty body is an empty form, not a parse error
	var form domain.QuoteForm
	if len(body) > 0 {
		if err := binding.JSON.BindBody(body, &form); err != nil {
			c.Error(apperror.BadRequest(msgInvalidBody))
			return
		}
	}

	if _, err := h.quoteUC.SubmitQuote(c.Request.Context(), &form); err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.Error(apperror.Validation(verr.Errors))
		case errors.Is(err, domain.ErrQuoteDispatchFailed):
			c.Error(apperror.Unavailable(msgQuoteSendFailed, err))
		default:
			c.Error(err)
		}
		return
	}

	response.EmailSent(c, http.StatusOK, msgQuoteSubmitted)
}
