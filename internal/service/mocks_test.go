package service

import (
	"context"
	"sort"
	"sync"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

var _ CatalogRepository = &catalogRepoMock{}

type catalogRepoMock struct {
	ListCategoriesFunc         func(ctx context.Context) ([]entities.Category, error)
	ListSubcategoriesFunc      func(ctx context.Context, categoryID int64) ([]entities.Subcategory, error)
	ListWordsFunc              func(ctx context.Context, categoryID, subcategoryID int64, limit int) ([]entities.WordEntry, error)
	SampleWordsFunc            func(ctx context.Context, categoryID, subcategoryID int64, n int) ([]entities.WordEntry, error)
	FindWordsBySurfaceFormFunc func(ctx context.Context, surfaceForm string) ([]entities.WordEntry, error)
	GetWordFunc                func(ctx context.Context, id int64) (*entities.WordEntry, error)

	mu    sync.Mutex
	calls struct {
		ListWords []struct {
			CategoryID    int64
			SubcategoryID int64
			Limit         int
		}
	}
}

func (m *catalogRepoMock) ListCategories(ctx context.Context) ([]entities.Category, error) {
	if m.ListCategoriesFunc == nil {
		panic("catalogRepoMock.ListCategoriesFunc: method is nil but CatalogRepository.ListCategories was just called")
	}
	return m.ListCategoriesFunc(ctx)
}

func (m *catalogRepoMock) ListSubcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error) {
	if m.ListSubcategoriesFunc == nil {
		panic("catalogRepoMock.ListSubcategoriesFunc: method is nil but CatalogRepository.ListSubcategories was just called")
	}
	return m.ListSubcategoriesFunc(ctx, categoryID)
}

func (m *catalogRepoMock) ListWords(ctx context.Context, categoryID, subcategoryID int64, limit int) ([]entities.WordEntry, error) {
	if m.ListWordsFunc == nil {
		panic("catalogRepoMock.ListWordsFunc: method is nil but CatalogRepository.ListWords was just called")
	}
	m.mu.Lock()
	m.calls.ListWords = append(m.calls.ListWords, struct {
		CategoryID    int64
		SubcategoryID int64
		Limit         int
	}{categoryID, subcategoryID, limit})
	m.mu.Unlock()
	return m.ListWordsFunc(ctx, categoryID, subcategoryID, limit)
}

func (m *catalogRepoMock) SampleWords(ctx context.Context, categoryID, subcategoryID int64, n int) ([]entities.WordEntry, error) {
	if m.SampleWordsFunc == nil {
		panic("catalogRepoMock.SampleWordsFunc: method is nil but CatalogRepository.SampleWords was just called")
	}
	return m.SampleWordsFunc(ctx, categoryID, subcategoryID, n)
}

func (m *catalogRepoMock) FindWordsBySurfaceForm(ctx context.Context, surfaceForm string) ([]entities.WordEntry, error) {
	if m.FindWordsBySurfaceFormFunc == nil {
		panic("catalogRepoMock.FindWordsBySurfaceFormFunc: method is nil but CatalogRepository.FindWordsBySurfaceForm was just called")
	}
	return m.FindWordsBySurfaceFormFunc(ctx, surfaceForm)
}

func (m *catalogRepoMock) GetWord(ctx context.Context, id int64) (*entities.WordEntry, error) {
	if m.GetWordFunc == nil {
		panic("catalogRepoMock.GetWordFunc: method is nil but CatalogRepository.GetWord was just called")
	}
	return m.GetWordFunc(ctx, id)
}

func (m *catalogRepoMock) ListWordsCalls() []struct {
	CategoryID    int64
	SubcategoryID int64
	Limit         int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ListWords
}

// memCatalog is an in-memory catalog matching surface forms byte for byte.
type memCatalog struct {
	catalogRepoMock
	words []entities.WordEntry
}

func newMemCatalog(words ...entities.WordEntry) *memCatalog {
	c := &memCatalog{words: words}
	c.FindWordsBySurfaceFormFunc = func(_ context.Context, surfaceForm string) ([]entities.WordEntry, error) {
		out := make([]entities.WordEntry, 0)
		for _, w := range c.words {
			if w.SurfaceForm == surfaceForm {
				out = append(out, w)
			}
		}
		return out, nil
	}
	return c
}

var _ ProgressRepository = &memProgress{}

type progressKey struct {
	userID int64
	wordID int64
}

// memProgress is an in-memory progress store keyed by (user, word).
type memProgress struct {
	mu      sync.Mutex
	records map[progressKey]entities.ProgressRecord
	upserts int

	UpsertErr error
	ListErr   error
}

func newMemProgress() *memProgress {
	return &memProgress{records: make(map[progressKey]entities.ProgressRecord)}
}

func (m *memProgress) Upsert(_ context.Context, p *entities.ProgressRecord) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[progressKey{p.UserID, p.WordID}] = *p
	m.upserts++
	return nil
}

func (m *memProgress) ListByUser(_ context.Context, userID int64) ([]*entities.ProgressRecord, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entities.ProgressRecord, 0)
	for k, r := range m.records {
		if k.userID == userID {
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordID < out[j].WordID })
	return out, nil
}

func (m *memProgress) GetStatuses(_ context.Context, userID int64, wordIDs []int64) (map[int64]entities.Status, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int64]entities.Status)
	for _, id := range wordIDs {
		if r, ok := m.records[progressKey{userID, id}]; ok {
			out[id] = r.Status
		}
	}
	return out, nil
}

func (m *memProgress) status(userID, wordID int64) (entities.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[progressKey{userID, wordID}]
	return r.Status, ok
}

func (m *memProgress) snapshot() map[progressKey]entities.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[progressKey]entities.Status, len(m.records))
	for k, r := range m.records {
		out[k] = r.Status
	}
	return out
}

type outcomeRecorderMock struct {
	RecordOutcomeFunc func(ctx context.Context, surfaceForm string, status entities.Status, userID int64) (*entities.ReconciliationResult, error)

	calls []struct {
		SurfaceForm string
		Status      entities.Status
		UserID      int64
	}
}

func (m *outcomeRecorderMock) RecordOutcome(
	ctx context.Context, surfaceForm string, status entities.Status, userID int64,
) (*entities.ReconciliationResult, error) {
	if m.RecordOutcomeFunc == nil {
		panic("outcomeRecorderMock.RecordOutcomeFunc: method is nil but OutcomeRecorder.RecordOutcome was just called")
	}
	m.calls = append(m.calls, struct {
		SurfaceForm string
		Status      entities.Status
		UserID      int64
	}{surfaceForm, status, userID})
	return m.RecordOutcomeFunc(ctx, surfaceForm, status, userID)
}

type userRepoMock struct {
	SaveFunc          func(ctx context.Context, user *entities.User) (bool, error)
	GetByIDFunc       func(ctx context.Context, userID int64) (*entities.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*entities.User, error)
}

func (m *userRepoMock) Save(ctx context.Context, user *entities.User) (bool, error) {
	if m.SaveFunc == nil {
		panic("userRepoMock.SaveFunc: method is nil but UserRepository.Save was just called")
	}
	return m.SaveFunc(ctx, user)
}

func (m *userRepoMock) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but UserRepository.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if m.GetByUsernameFunc == nil {
		panic("userRepoMock.GetByUsernameFunc: method is nil but UserRepository.GetByUsername was just called")
	}
	return m.GetByUsernameFunc(ctx, username)
}

type membershipRepoMock struct {
	UpsertFunc func(ctx context.Context, m *entities.Membership) error
	GetFunc    func(ctx context.Context, userID int64) (*entities.Membership, error)
}

func (m *membershipRepoMock) Upsert(ctx context.Context, ms *entities.Membership) error {
	if m.UpsertFunc == nil {
		panic("membershipRepoMock.UpsertFunc: method is nil but MembershipRepository.Upsert was just called")
	}
	return m.UpsertFunc(ctx, ms)
}

func (m *membershipRepoMock) Get(ctx context.Context, userID int64) (*entities.Membership, error) {
	if m.GetFunc == nil {
		panic("membershipRepoMock.GetFunc: method is nil but MembershipRepository.Get was just called")
	}
	return m.GetFunc(ctx, userID)
}

type digestRepoMock struct {
	ListReviewDigestsFunc func(ctx context.Context, limit, offset int) ([]*entities.ReviewDigest, error)
}

func (m *digestRepoMock) ListReviewDigests(ctx context.Context, limit, offset int) ([]*entities.ReviewDigest, error) {
	if m.ListReviewDigestsFunc == nil {
		panic("digestRepoMock.ListReviewDigestsFunc: method is nil but ReviewDigestRepository.ListReviewDigests was just called")
	}
	return m.ListReviewDigestsFunc(ctx, limit, offset)
}

type notifierMock struct {
	mu   sync.Mutex
	sent map[int64]entities.ReminderPayload
	err  func(chatID int64) error
}

func (m *notifierMock) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	if m.err != nil {
		if err := m.err(chatID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[int64]entities.ReminderPayload)
	}
	m.sent[chatID] = payload
	return nil
}
