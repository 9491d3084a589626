package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solar-quote-backend/config"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/logger"
)

type diagnosticsUsecase struct {
	cfg    *config.Config
	mailer domain.TestMailer
	now    func() time.Time
}

// NewDiagnosticsUsecase creates the operator setup checks
func NewDiagnosticsUsecase(cfg *config.Config, mailer domain.TestMailer) domain.DiagnosticsUsecase {
	return &diagnosticsUsecase{
		cfg:    cfg,
		mailer: mailer,
		now:    time.Now,
	}
}

func (uc *diagnosticsUsecase) summary() *domain.EmailConfigSummary {
	s := &domain.EmailConfigSummary{
		Provider:      uc.cfg.EmailProvider,
		BusinessEmail: uc.cfg.BusinessEmail,
		FromEmail:     uc.cfg.FromEmail,
	}
	if uc.cfg.EmailProvider == config.ProviderSMTP {
		s.Host = uc.cfg.SMTPHost
		s.Port = uc.cfg.SMTPPort
		s.Secure = uc.cfg.SMTPSecure
		s.User = uc.cfg.SMTPUser
	}
	return s
}

func (uc *diagnosticsUsecase) CheckConfiguration(ctx context.Context) (*domain.EmailConfigSummary, error) {
	if err := uc.cfg.Validate(); err != nil {
		return nil, err
	}
	return uc.summary(), nil
}

func (uc *diagnosticsUsecase) CheckConnection(ctx context.Context) (*domain.EmailConfigSummary, error) {
	summary, err := uc.CheckConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.mailer.Verify(ctx); err != nil {
		logger.Log.ErrorContext(ctx, "Email provider verification failed",
			"service", "diagnostics",
			"provider", uc.mailer.Provider(),
			"error", err.Error(),
		)
		return nil, fmt.Errorf("%s connection failed: %w", uc.mailer.Provider(), err)
	}
	return summary, nil
}

func (uc *diagnosticsUsecase) SendTestEmail(ctx context.Context, to string) error {
	if _, err := uc.CheckConfiguration(ctx); err != nil {
		return err
	}

	name := uc.cfg.BusinessShortName
	sentAt := uc.now().In(uc.cfg.Location()).Format("02/01/2006, 3:04:05 pm")
	text := fmt.Sprintf("Email Test Successful!\n\n"+
		"This is a test email from the %s website.\n"+
		"If you received this email, your email configuration is working correctly.\n\n"+
		"Sent at: %s\n", name, sentAt)

	result := uc.mailer.SendEmail(ctx, []string{to}, "Test Email - "+name, text)
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
