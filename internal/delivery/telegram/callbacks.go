package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// callbackFunc handles one button press and returns the text of the
// callback answer, shown as a toast.
type callbackFunc func(ctx context.Context, chatID int64) (string, error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	userID := cb.From.ID
	data := decodeCallback(cb.Data)

	var fn callbackFunc
	switch data.Action {
	case actionCategories:
		fn = h.categoriesCallback(messageID)
	case actionCategory:
		fn = h.categoryCallback(messageID, data)
	case actionSubcategory:
		fn = h.subcategoryCallback(userID, messageID, data)
	case actionLimit:
		fn = h.limitCallback(userID, data)
	case actionRandom:
		fn = h.randomCallback(userID)
	case actionFlash:
		fn = h.flashCallback(userID, messageID, data)
	case actionQuiz:
		fn = h.quizCallback(userID, messageID, data)
	case actionNext:
		fn = h.nextQuestionCallback(data)
	default:
		h.logger.Warn("unknown callback action",
			zap.String("data", cb.Data),
		)
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	var toast string
	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		var err error
		toast, err = fn(ctx, chatID)
		return err
	})(ctx, chatID)

	h.request(tgbotapi.NewCallback(cb.ID, toast))
}

// categoriesCallback turns the message back into the category picker.
func (h *Handler) categoriesCallback(messageID int) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		categories, err := h.navigator.ListCategories(ctx)
		if err != nil {
			return "", err
		}

		if len(categories) == 0 {
			h.send(newHTMLEdit(chatID, messageID, msgEmptyCatalog))
			return "", nil
		}

		edit := newHTMLEdit(chatID, messageID, msgPickCategory)
		kb := buildCategoriesKeyboard(categories)
		edit.ReplyMarkup = &kb
		h.send(edit)
		return "", nil
	}
}

// categoryCallback selects a category and shows its subcategories.
func (h *Handler) categoryCallback(messageID int, data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		categoryID, err := data.int64Param(0)
		if err != nil {
			return "", err
		}

		sel, err := h.navigator.ChooseCategory(ctx, h.sessions.Get(chatID).Selection, categoryID)
		if err != nil {
			return "", err
		}
		h.sessions.SetSelection(chatID, sel)

		subcategories, err := h.navigator.ListSubcategories(ctx, categoryID)
		if err != nil {
			return "", err
		}

		text := formatSubcategoryPrompt(sel.Category)
		if len(subcategories) == 0 {
			text = msgNoSubcategories
		}

		edit := newHTMLEdit(chatID, messageID, text)
		kb := buildSubcategoriesKeyboard(subcategories)
		edit.ReplyMarkup = &kb
		h.send(edit)
		return "", nil
	}
}

// subcategoryCallback completes the selection and sends its word list.
func (h *Handler) subcategoryCallback(userID int64, messageID int, data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		subcategoryID, err := data.int64Param(0)
		if err != nil {
			return "", err
		}

		sess := h.sessions.Get(chatID)
		sel, words, err := h.navigator.ChooseSubcategory(ctx, sess.Selection, subcategoryID, sess.Limit)
		if err != nil {
			return "", err
		}
		h.sessions.SetSelection(chatID, sel)

		h.send(newHTMLEdit(chatID, messageID, formatSelected(sel)))
		h.sendWordList(ctx, chatID, userID, sel, words, sess.Limit)
		return "", nil
	}
}

// limitCallback changes the word list size and resends the list.
func (h *Handler) limitCallback(userID int64, data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		limit, err := data.intParam(0)
		if err != nil {
			return "", err
		}
		limit = h.navigator.Limits().Clamp(limit)

		sel := h.sessions.Get(chatID).Selection
		words, err := h.navigator.ListWords(ctx, sel, limit)
		if err != nil {
			return "", err
		}
		h.sessions.SetLimit(chatID, limit)

		h.sendWordList(ctx, chatID, userID, sel, words, limit)
		return "", nil
	}
}

// randomCallback sends a fresh random sample.
func (h *Handler) randomCallback(userID int64) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		return "", h.randomHandler(userID)(ctx, chatID)
	}
}

// flashCallback draws a new card or records a mark on the shown one.
func (h *Handler) flashCallback(userID int64, messageID int, data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		if len(data.Params) == 0 {
			return "", fmt.Errorf("%w: %q", errBadCallback, data.Raw)
		}

		if data.Params[0] == flashDraw {
			return "", h.flashHandler()(ctx, chatID)
		}

		status, err := entities.ParseStatus(data.Params[0])
		if err != nil {
			return "", fmt.Errorf("%w: %v", errBadCallback, err)
		}

		wordID, err := data.int64Param(1)
		if err != nil {
			return "", err
		}

		res, err := h.flashcards.Mark(ctx, userID, wordID, status)
		if err != nil {
			return "", err
		}

		h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, buildDrawKeyboard()))
		return formatMarked(res), nil
	}
}

// quizCallback checks the chosen option of the pending choice question.
func (h *Handler) quizCallback(userID int64, messageID int, data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		index, err := data.intParam(0)
		if err != nil {
			return "", err
		}
		wordID, err := data.int64Param(1)
		if err != nil {
			return "", err
		}

		pending, ok := h.sessions.PeekQuestion(chatID)
		if !ok || pending.Mode != entities.QuizModeChoice || pending.Word.ID != wordID {
			return msgQuestionExpired, nil
		}

		q, ok := h.sessions.TakeQuestion(chatID)
		if !ok {
			return msgQuestionExpired, nil
		}

		qa, err := h.quiz.CheckChoice(ctx, userID, q, index)
		if err != nil {
			h.sessions.SetQuestion(chatID, q)
			return "", err
		}

		edit := newHTMLEdit(chatID, messageID, formatQuizResult(q, qa))
		kb := buildNextQuestionKeyboard(entities.QuizModeChoice)
		edit.ReplyMarkup = &kb
		h.send(edit)
		return "", nil
	}
}

// nextQuestionCallback asks another question in the given mode.
func (h *Handler) nextQuestionCallback(data callbackData) callbackFunc {
	return func(ctx context.Context, chatID int64) (string, error) {
		if len(data.Params) == 0 {
			return "", fmt.Errorf("%w: %q", errBadCallback, data.Raw)
		}
		return "", h.questionHandler(entities.QuizMode(data.Params[0]))(ctx, chatID)
	}
}
