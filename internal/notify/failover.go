package notify

import (
	"context"
	"errors"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// FailoverSender attempts a primary send, then falls back to a secondary provider on error.
type FailoverSender struct {
	primary       EmailSender
	secondary     EmailSender
	primaryName   string
	secondaryName string
	logger        *logging.Logger
}

// NewFailoverSender builds a failover email sender with named providers.
func NewFailoverSender(primary EmailSender, primaryName string, secondary EmailSender, secondaryName string, logger *logging.Logger) *FailoverSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &FailoverSender{
		primary:       primary,
		secondary:     secondary,
		primaryName:   primaryName,
		secondaryName: secondaryName,
		logger:        logger,
	}
}

var _ EmailSender = (*FailoverSender)(nil)

// Name reports the primary provider's label.
func (f *FailoverSender) Name() string { return f.primaryName }

// Send tries the primary provider first, then falls back to the secondary provider on failure.
func (f *FailoverSender) Send(ctx context.Context, msg EmailMessage) error {
	if f == nil || f.primary == nil {
		return errors.New("notify: failover primary sender not configured")
	}
	if err := f.primary.Send(ctx, msg); err == nil {
		return nil
	} else if f.secondary == nil {
		return err
	} else {
		f.logger.Warn("primary email send failed; attempting fallback",
			"provider", f.primaryName,
			"fallback", f.secondaryName,
			"error", err,
			"to", msg.To,
		)
		fallbackErr := f.secondary.Send(ctx, msg)
		if fallbackErr != nil {
			f.logger.Error("fallback email send failed",
				"provider", f.secondaryName,
				"error", fallbackErr,
				"to", msg.To,
			)
			return fallbackErr
		}
		return nil
	}
}
