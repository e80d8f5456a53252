package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

func wordRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "word_kr", "meaning_zh", "pos", "example_kr", "example_zh", "category_id", "subcategory_id",
	})
}

func TestCatalogRepository_ListCategories(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`SELECT id, name FROM categories ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "高频").
			AddRow(int64(2), "主题"))

	got, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.Category{{ID: 1, Name: "高频"}, {ID: 2, Name: "主题"}}, got)
}

func TestCatalogRepository_ListCategories_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	got, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogRepository_ListSubcategories(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    []entities.Subcategory
		wantErr bool
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM subcategories WHERE category_id = \$1 ORDER BY id`).
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category_id"}).
						AddRow(int64(10), "名词", int64(1)))
			},
			want: []entities.Subcategory{{ID: 10, Name: "名词", CategoryID: 1}},
		},
		{
			name: "unknown category is empty",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM subcategories`).
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category_id"}))
			},
			want: []entities.Subcategory{},
		},
		{
			name: "store error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM subcategories`).
					WithArgs(int64(1)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewCatalogRepository(mock)
			tt.setup(mock)

			got, err := repo.ListSubcategories(context.Background(), 1)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogRepository_ListWords(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`FROM vocabularies WHERE category_id = \$1 AND subcategory_id = \$2 ORDER BY id LIMIT 30`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(wordRows().
			AddRow(int64(100), "안녕", "你好", "感叹词", "안녕하세요.", "你好。", int64(1), int64(10)))

	got, err := repo.ListWords(context.Background(), 1, 10, 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "안녕", got[0].SurfaceForm)
	assert.Equal(t, "你好", got[0].Gloss)
	assert.True(t, got[0].HasExample())
}

func TestCatalogRepository_ListWords_ZeroLimit(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	got, err := repo.ListWords(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogRepository_SampleWords(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`ORDER BY random\(\) LIMIT 4`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(wordRows().
			AddRow(int64(101), "학교", "学校", "", "", "", int64(1), int64(10)))

	got, err := repo.SampleWords(context.Background(), 1, 10, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "학교", got[0].SurfaceForm)
}

func TestCatalogRepository_FindWordsBySurfaceForm(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`FROM vocabularies WHERE word_kr = \$1`).
		WithArgs("안녕").
		WillReturnRows(wordRows().
			AddRow(int64(100), "안녕", "你好", "", "", "", int64(1), int64(10)).
			AddRow(int64(200), "안녕", "再见", "", "", "", int64(2), int64(20)))

	got, err := repo.FindWordsBySurfaceForm(context.Background(), "안녕")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].ID)
	assert.Equal(t, int64(2), got[1].CategoryID)
}

func TestCatalogRepository_GetWord_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`FROM vocabularies WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetWord(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepository_EnsureCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("高频").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := repo.EnsureCategory(context.Background(), "高频")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestCatalogRepository_EnsureSubcategory_MissingCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	mock.ExpectQuery(`INSERT INTO subcategories`).
		WithArgs(int64(99), "名词").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.EnsureSubcategory(context.Background(), 99, "名词")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepository_UpsertWord(t *testing.T) {
	mock := newMock(t)
	repo := NewCatalogRepository(mock)

	w := &entities.WordEntry{
		SurfaceForm:   "학교",
		Gloss:         "学校",
		PartOfSpeech:  "名词",
		CategoryID:    1,
		SubcategoryID: 10,
	}

	mock.ExpectQuery(`INSERT INTO vocabularies \(word_kr,meaning_zh,pos,example_kr,example_zh,category_id,subcategory_id\).*ON CONFLICT \(subcategory_id, word_kr\) DO UPDATE`).
		WithArgs("학교", "学校", "名词", "", "", int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow(int64(42), true))
	mock.ExpectQuery(`ON CONFLICT \(subcategory_id, word_kr\) DO UPDATE`).
		WithArgs("학교", "学校", "名词", "", "", int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow(int64(42), false))

	id, inserted, err := repo.UpsertWord(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, inserted)

	id, inserted, err = repo.UpsertWord(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.False(t, inserted)
}
