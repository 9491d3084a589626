package usecase

import (
	"context"
	"fmt"

	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/logger"

	"github.com/google/uuid"
)

type quoteUsecase struct {
	dispatcher domain.QuoteDispatcher
}

// NewQuoteUsecase creates a new quote usecase
func NewQuoteUsecase(dispatcher domain.QuoteDispatcher) domain.QuoteUsecase {
	return &quoteUsecase{
		dispatcher: dispatcher,
	}
}

// SubmitQuote validates the form, sends the lead to the business and then a
// courtesy confirmation to the customer. Only a failed business email fails
// the submission.
func (uc *quoteUsecase) SubmitQuote(ctx context.Context, form *domain.QuoteForm) (*domain.QuoteSubmission, error) {
	result := ValidateQuoteForm(form)
	if !result.IsValid {
		logger.Log.InfoContext(ctx, "Quote submission rejected",
			"controller", "quote",
			"action", "submit_quote",
			"status", "rejected",
			"errors", result.Errors,
		)
		return nil, &domain.ValidationError{Errors: result.Errors}
	}

	quote := form.Normalize()
	reference := uuid.NewString()

	// A client hanging up must not abort a send that is already underway.
	sendCtx := context.WithoutCancel(ctx)

	business := uc.dispatcher.SendQuoteRequest(sendCtx, quote)
	if !business.Success {
		logger.Log.ErrorContext(ctx, "Quote submission failed - business email error",
			"controller", "quote",
			"action", "submit_quote",
			"status", "failed",
			"reason", "business_email_failed",
			"reference", reference,
			"customerEmail", quote.Email,
			"error", business.Error,
		)
		return nil, fmt.Errorf("%w: %s", domain.ErrQuoteDispatchFailed, business.Error)
	}

	confirmation := uc.dispatcher.SendConfirmationEmail(sendCtx, quote.Email, quote.FullName)
	if !confirmation.Success {
		logger.Log.WarnContext(ctx, "Quote submission succeeded but confirmation email failed",
			"controller", "quote",
			"action", "submit_quote",
			"status", "partial_success",
			"reason", "confirmation_email_failed",
			"reference", reference,
			"customerEmail", quote.Email,
			"error", confirmation.Error,
		)
	}

	logger.Log.InfoContext(ctx, "Quote submission completed successfully",
		"controller", "quote",
		"action", "submit_quote",
		"status", "success",
		"reference", reference,
		"customerEmail", quote.Email,
		"customerName", quote.FullName,
		"suburb", quote.Suburb,
		"interests", quote.Interests,
		"businessEmailSent", business.Success,
		"confirmationEmailSent", confirmation.Success,
	)

	return &domain.QuoteSubmission{
		Reference:    reference,
		Request:      quote,
		Business:     business,
		Confirmation: confirmation,
	}, nil
}
