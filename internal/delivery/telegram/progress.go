package telegram

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// progressHandler shows the known / wrong counts and the membership status.
func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.progress.GetSummary(ctx, userID)
		if err != nil {
			return err
		}

		active, err := h.memberships.IsActive(ctx, userID)
		if err != nil {
			h.logger.Warn("failed to load membership",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}

		h.send(newHTMLMessage(chatID, formatProgress(summary, active)))
		return nil
	}
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("░", length))
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
