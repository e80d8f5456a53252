package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			if isUserError(err) {
				h.logger.Debug("request rejected",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			} else {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, errorMessage(err))
			return nil
		}
		return nil
	}
}

// errorMessage maps an error returned by a service to the text shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return msgStoreUnavailable
	case errors.Is(err, domain.ErrInvalidSelection):
		return msgPickCategoryFirst
	case errors.Is(err, domain.ErrNoWords):
		return msgNoWords
	case errors.Is(err, domain.ErrForbidden):
		return msgForbidden
	case errors.Is(err, domain.ErrNotFound):
		return msgNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, errBadCallback):
		return msgInvalidInput
	default:
		return msgInternalError
	}
}

// isUserError reports whether err was caused by the request rather than the system.
func isUserError(err error) bool {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return false
	}
	return errors.Is(err, domain.ErrInvalidSelection) ||
		errors.Is(err, domain.ErrNoWords) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, errBadCallback)
}
