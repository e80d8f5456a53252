package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// categoriesHandler sends the category picker.
func (h *Handler) categoriesHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		categories, err := h.navigator.ListCategories(ctx)
		if err != nil {
			return err
		}

		if len(categories) == 0 {
			h.send(newHTMLMessage(chatID, msgEmptyCatalog))
			return nil
		}

		msg := newHTMLMessage(chatID, msgPickCategory)
		msg.ReplyMarkup = buildCategoriesKeyboard(categories)
		h.send(msg)
		return nil
	}
}

// wordsHandler sends the word list of the current selection.
func (h *Handler) wordsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess := h.sessions.Get(chatID)

		words, err := h.navigator.ListWords(ctx, sess.Selection, sess.Limit)
		if err != nil {
			return err
		}

		h.sendWordList(ctx, chatID, userID, sess.Selection, words, sess.Limit)
		return nil
	}
}

// sendWordList renders words with the user's marks, split over as many
// messages as needed. The keyboard goes with the last one.
func (h *Handler) sendWordList(
	ctx context.Context,
	chatID, userID int64,
	sel entities.Selection,
	words []entities.WordEntry,
	limit int,
) {
	statuses, err := h.progress.GetStatuses(ctx, userID, words)
	if err != nil {
		h.logger.Warn("failed to load word statuses",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	limits := h.navigator.Limits()
	chunks := splitMessage(formatWordList(sel, words, statuses), maxMessageLength)
	for i, chunk := range chunks {
		msg := newHTMLMessage(chatID, chunk)
		if i == len(chunks)-1 {
			msg.ReplyMarkup = buildWordListKeyboard(limits, limits.Clamp(limit))
		}
		h.send(msg)
	}
}

// randomHandler sends a random sample of the current subcategory.
func (h *Handler) randomHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel := h.sessions.Get(chatID).Selection

		words, err := h.navigator.RandomWords(ctx, sel)
		if err != nil {
			return err
		}

		statuses, err := h.progress.GetStatuses(ctx, userID, words)
		if err != nil {
			h.logger.Warn("failed to load word statuses",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}

		msg := newHTMLMessage(chatID, formatRandomWords(sel, words, statuses))
		msg.ReplyMarkup = buildRandomKeyboard()
		h.send(msg)
		return nil
	}
}

// flashHandler draws a flashcard from the current subcategory.
func (h *Handler) flashHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		card, err := h.flashcards.Draw(ctx, h.sessions.Get(chatID).Selection)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, formatFlashcard(card))
		msg.ReplyMarkup = buildFlashcardKeyboard(card.Word.ID)
		h.send(msg)
		return nil
	}
}

// questionHandler asks a new quiz question and keeps it pending for the chat.
func (h *Handler) questionHandler(mode entities.QuizMode) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := h.quiz.NextQuestion(ctx, h.sessions.Get(chatID).Selection, mode)
		if err != nil {
			return err
		}

		h.sessions.SetQuestion(chatID, q)

		msg := newHTMLMessage(chatID, formatQuestion(q))
		if q.Mode == entities.QuizModeChoice {
			msg.ReplyMarkup = buildQuestionKeyboard(q)
		}
		h.send(msg)
		return nil
	}
}

// textHandler treats plain text as the answer to a pending typed question.
func (h *Handler) textHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pending, ok := h.sessions.PeekQuestion(chatID)
		if !ok || pending.Mode != entities.QuizModeTyped {
			h.send(newHTMLMessage(chatID, msgUnknownInput))
			return nil
		}

		q, ok := h.sessions.TakeQuestion(chatID)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUnknownInput))
			return nil
		}

		qa, err := h.quiz.CheckAnswer(ctx, userID, q, text)
		if err != nil {
			h.sessions.SetQuestion(chatID, q)
			return err
		}

		msg := newHTMLMessage(chatID, formatQuizResult(q, qa))
		msg.ReplyMarkup = buildNextQuestionKeyboard(entities.QuizModeTyped)
		h.send(msg)
		return nil
	}
}

// grantHandler lets an admin grant a membership by username or user id.
func (h *Handler) grantHandler(adminID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		target := strings.TrimSpace(args)
		if target == "" {
			h.send(newHTMLMessage(chatID, msgGrantUsage))
			return nil
		}

		user, err := h.memberships.Grant(ctx, adminID, target)
		if err != nil {
			return err
		}

		h.logger.Info("membership granted",
			zap.Int64("admin_id", adminID),
			zap.Int64("user_id", user.ID),
		)
		h.send(newHTMLMessage(chatID, formatGranted(user)))
		return nil
	}
}

// BotCommands lists the commands shown in the Telegram menu.
func BotCommands() tgbotapi.SetMyCommandsConfig {
	return tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "categories", Description: "选择分类和子分类"},
		tgbotapi.BotCommand{Command: "words", Description: "单词列表"},
		tgbotapi.BotCommand{Command: "random", Description: "随机10个单词"},
		tgbotapi.BotCommand{Command: "flash", Description: "闪卡"},
		tgbotapi.BotCommand{Command: "quiz", Description: "测验"},
		tgbotapi.BotCommand{Command: "choice", Description: "选择题测验"},
		tgbotapi.BotCommand{Command: "progress", Description: "我的进度"},
		tgbotapi.BotCommand{Command: "help", Description: "帮助"},
	)
}
