package telegram

import (
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// SendReminder delivers a review digest and removes the previous digest of
// the chat, so only the latest one stays visible.
func (h *Handler) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	msg := newHTMLMessage(chatID, formatDigest(payload))
	msg.ReplyMarkup = buildDigestKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		if chatGone(err) {
			h.forgetChat(chatID)
		}
		return fmt.Errorf("send digest: %w", err)
	}

	if prev, ok := h.digests.Swap(chatID, sent.MessageID); ok && prev.MessageID != sent.MessageID {
		h.request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID))
	}

	return nil
}

// forgetChat drops the in-memory state of a chat the bot can no longer reach.
func (h *Handler) forgetChat(chatID int64) {
	h.sessions.Delete(chatID)
	h.digests.Forget(chatID)
	h.logger.Info("chat unreachable, state dropped", zap.Int64("chat_id", chatID))
}

// chatGone reports whether Telegram refused the message for good: the bot
// was blocked, the user was deactivated or the chat no longer exists.
func chatGone(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == http.StatusForbidden {
		return true
	}
	return apiErr.Code == http.StatusBadRequest && apiErr.Message == "Bad Request: chat not found"
}
