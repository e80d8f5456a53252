package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/service"
	"github.com/aliskhannn/topik-vocab-bot/internal/storage"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	updates  chan tgbotapi.Update
	sendErr  error
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts returns the text of every sent message and edit.
func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, c := range b.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func (b *fakeBot) lastText() string {
	texts := b.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (b *fakeBot) lastSent() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

// callbackAnswers returns the texts of answered callbacks.
func (b *fakeBot) callbackAnswers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, c := range b.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

var _ service.CatalogRepository = &memCatalog{}

type memCatalog struct {
	categories    []entities.Category
	subcategories []entities.Subcategory
	words         []entities.WordEntry
}

func newTestCatalog() *memCatalog {
	return &memCatalog{
		categories: []entities.Category{
			{ID: 1, Name: "高频"},
			{ID: 2, Name: "主题"},
		},
		subcategories: []entities.Subcategory{
			{ID: 10, Name: "名词", CategoryID: 1},
			{ID: 20, Name: "问候", CategoryID: 2},
		},
		words: []entities.WordEntry{
			{ID: 1, SurfaceForm: "안녕", Gloss: "你好", PartOfSpeech: "感叹词", CategoryID: 1, SubcategoryID: 10},
			{ID: 2, SurfaceForm: "학교", Gloss: "学校", PartOfSpeech: "名词", ExampleKR: "학교에 가요.", ExampleZH: "去学校。", CategoryID: 1, SubcategoryID: 10},
			{ID: 3, SurfaceForm: "사랑", Gloss: "爱", CategoryID: 1, SubcategoryID: 10},
			{ID: 4, SurfaceForm: "안녕", Gloss: "你好", CategoryID: 2, SubcategoryID: 20},
		},
	}
}

func (m *memCatalog) ListCategories(context.Context) ([]entities.Category, error) {
	return m.categories, nil
}

func (m *memCatalog) ListSubcategories(_ context.Context, categoryID int64) ([]entities.Subcategory, error) {
	out := []entities.Subcategory{}
	for _, s := range m.subcategories {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memCatalog) ListWords(_ context.Context, categoryID, subcategoryID int64, limit int) ([]entities.WordEntry, error) {
	out := []entities.WordEntry{}
	for _, w := range m.words {
		if w.CategoryID == categoryID && w.SubcategoryID == subcategoryID && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memCatalog) SampleWords(ctx context.Context, categoryID, subcategoryID int64, n int) ([]entities.WordEntry, error) {
	return m.ListWords(ctx, categoryID, subcategoryID, n)
}

func (m *memCatalog) FindWordsBySurfaceForm(_ context.Context, surfaceForm string) ([]entities.WordEntry, error) {
	out := []entities.WordEntry{}
	for _, w := range m.words {
		if w.SurfaceForm == surfaceForm {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memCatalog) GetWord(_ context.Context, id int64) (*entities.WordEntry, error) {
	for _, w := range m.words {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

type outcomeCall struct {
	SurfaceForm string
	Status      entities.Status
	UserID      int64
}

// recorderMock records outcomes and reports every catalog match as upserted.
type recorderMock struct {
	catalog *memCatalog

	mu    sync.Mutex
	calls []outcomeCall
}

func (r *recorderMock) RecordOutcome(
	ctx context.Context, surfaceForm string, status entities.Status, userID int64,
) (*entities.ReconciliationResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, outcomeCall{surfaceForm, status, userID})
	r.mu.Unlock()

	matches, _ := r.catalog.FindWordsBySurfaceForm(ctx, surfaceForm)
	res := &entities.ReconciliationResult{SurfaceForm: surfaceForm, Status: status, Upserted: len(matches)}
	for _, w := range matches {
		res.WordIDs = append(res.WordIDs, w.ID)
	}
	return res, nil
}

type progressMock struct {
	GetSummaryFunc  func(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
	GetStatusesFunc func(ctx context.Context, userID int64, words []entities.WordEntry) (map[int64]entities.Status, error)
}

func (m *progressMock) GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error) {
	if m.GetSummaryFunc == nil {
		return &entities.ProgressSummary{}, nil
	}
	return m.GetSummaryFunc(ctx, userID)
}

func (m *progressMock) GetStatuses(
	ctx context.Context, userID int64, words []entities.WordEntry,
) (map[int64]entities.Status, error) {
	if m.GetStatusesFunc == nil {
		return map[int64]entities.Status{}, nil
	}
	return m.GetStatusesFunc(ctx, userID, words)
}

type membershipMock struct {
	GrantFunc    func(ctx context.Context, adminID int64, target string) (*entities.User, error)
	IsActiveFunc func(ctx context.Context, userID int64) (bool, error)
}

func (m *membershipMock) Grant(ctx context.Context, adminID int64, target string) (*entities.User, error) {
	if m.GrantFunc == nil {
		panic("membershipMock.GrantFunc: method is nil but MembershipService.Grant was just called")
	}
	return m.GrantFunc(ctx, adminID, target)
}

func (m *membershipMock) IsActive(ctx context.Context, userID int64) (bool, error) {
	if m.IsActiveFunc == nil {
		return false, nil
	}
	return m.IsActiveFunc(ctx, userID)
}

type userMock struct {
	mu    sync.Mutex
	saved []int64
}

func (m *userMock) EnsureUser(_ context.Context, userID, _ int64, _, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, userID)
	return len(m.saved) == 1, nil
}

type testEnv struct {
	handler     *Handler
	bot         *fakeBot
	catalog     *memCatalog
	recorder    *recorderMock
	progress    *progressMock
	memberships *membershipMock
	sessions    *storage.SessionStorage
	digests     *storage.DigestStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := newTestCatalog()
	recorder := &recorderMock{catalog: catalog}
	env := &testEnv{
		bot:         &fakeBot{updates: make(chan tgbotapi.Update)},
		catalog:     catalog,
		recorder:    recorder,
		progress:    &progressMock{},
		memberships: &membershipMock{},
		sessions:    storage.NewSessionStorage(),
		digests:     storage.NewDigestStorage(),
	}

	env.handler = NewHandler(
		env.bot,
		zap.NewNop(),
		Services{
			Users:       &userMock{},
			Navigator:   service.NewNavigatorService(catalog, entities.NewWordLimits()),
			Progress:    env.progress,
			Flashcards:  service.NewFlashcardService(catalog, recorder),
			Quiz:        service.NewQuizService(catalog, recorder, service.DefaultQuizOptions),
			Memberships: env.memberships,
		},
		env.sessions,
		env.digests,
	)
	return env
}

// selectNouns puts the chat into the 高频 / 名词 subcategory.
func (e *testEnv) selectNouns(t *testing.T, chatID int64) {
	t.Helper()
	sel, err := entities.Selection{}.
		WithCategory(e.catalog.categories[0]).
		WithSubcategory(e.catalog.subcategories[0])
	if err != nil {
		t.Fatalf("select nouns: %v", err)
	}
	e.sessions.SetSelection(chatID, sel)
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	cmd := strings.SplitN(text, " ", 2)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: chatID, UserName: "learner", FirstName: "Mei"},
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID, UserName: "learner"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}}
}

func callbackUpdate(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: chatID},
		Message: &tgbotapi.Message{
			MessageID: messageID,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
		Data: data,
	}}
}
