package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI used by the handler.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username, firstName string) (bool, error)
}

type NavigatorService interface {
	Limits() entities.WordLimits
	ListCategories(ctx context.Context) ([]entities.Category, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error)
	ChooseCategory(ctx context.Context, sel entities.Selection, categoryID int64) (entities.Selection, error)
	ChooseSubcategory(
		ctx context.Context, sel entities.Selection, subcategoryID int64, limit int,
	) (entities.Selection, []entities.WordEntry, error)
	ListWords(ctx context.Context, sel entities.Selection, limit int) ([]entities.WordEntry, error)
	RandomWords(ctx context.Context, sel entities.Selection) ([]entities.WordEntry, error)
}

type ProgressService interface {
	GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
	GetStatuses(ctx context.Context, userID int64, words []entities.WordEntry) (map[int64]entities.Status, error)
}

type FlashcardService interface {
	Draw(ctx context.Context, sel entities.Selection) (*entities.Flashcard, error)
	Mark(ctx context.Context, userID, wordID int64, status entities.Status) (*entities.ReconciliationResult, error)
}

type QuizService interface {
	NextQuestion(ctx context.Context, sel entities.Selection, mode entities.QuizMode) (*entities.Question, error)
	CheckAnswer(ctx context.Context, userID int64, q *entities.Question, answer string) (*entities.QuizAnswer, error)
	CheckChoice(ctx context.Context, userID int64, q *entities.Question, index int) (*entities.QuizAnswer, error)
}

type MembershipService interface {
	Grant(ctx context.Context, adminID int64, target string) (*entities.User, error)
	IsActive(ctx context.Context, userID int64) (bool, error)
}

// Services groups the use cases the handler dispatches to.
type Services struct {
	Users       UserService
	Navigator   NavigatorService
	Progress    ProgressService
	Flashcards  FlashcardService
	Quiz        QuizService
	Memberships MembershipService
}

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	users       UserService
	navigator   NavigatorService
	progress    ProgressService
	flashcards  FlashcardService
	quiz        QuizService
	memberships MembershipService
	sessions    *storage.SessionStorage
	digests     *storage.DigestStorage
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	services Services,
	sessions *storage.SessionStorage,
	digests *storage.DigestStorage,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		users:       services.Users,
		navigator:   services.Navigator,
		progress:    services.Progress,
		flashcards:  services.Flashcards,
		quiz:        services.Quiz,
		memberships: services.Memberships,
		sessions:    sessions,
		digests:     digests,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	created, err := h.users.EnsureUser(ctx, from.ID, chatID, from.UserName, from.FirstName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	} else if created {
		h.logger.Info("new user registered", zap.Int64("user_id", from.ID))
	}

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.send(newHTMLMessage(chatID, msgWelcome))

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		case "categories":
			_ = h.withErrorHandling(h.categoriesHandler())(ctx, chatID)

		case "words":
			_ = h.withErrorHandling(h.wordsHandler(from.ID))(ctx, chatID)

		case "random":
			_ = h.withErrorHandling(h.randomHandler(from.ID))(ctx, chatID)

		case "flash":
			_ = h.withErrorHandling(h.flashHandler())(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.questionHandler(entities.QuizModeTyped))(ctx, chatID)

		case "choice":
			_ = h.withErrorHandling(h.questionHandler(entities.QuizModeChoice))(ctx, chatID)

		case "progress":
			_ = h.withErrorHandling(h.progressHandler(from.ID))(ctx, chatID)

		case "grant":
			_ = h.withErrorHandling(h.grantHandler(from.ID, update.Message.CommandArguments()))(ctx, chatID)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.textHandler(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// request performs an API call whose result carries no message, e.g. a
// callback answer or a deletion.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}
