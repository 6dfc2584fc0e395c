package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(readCode, updateCode string, privacy domain.Privacy, tags ...string) *domain.Document {
	return &domain.Document{
		ReadCode:   readCode,
		UpdateCode: updateCode,
		Title:      "title " + readCode,
		Content:    "content " + readCode,
		Tags:       tags,
		Type:       domain.DocumentTypeText,
		Privacy:    privacy,
		ExpiryStatus: domain.ExpiryStatus{
			ExpirationDate: domain.DefaultExpirationDate,
		},
		Active: true,
	}
}

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newDoc("READ0001", "UPDATE000001", domain.PrivacyPublic, "go", "db"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetActiveByReadCode(ctx, "READ0001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.ElementsMatch(t, []string{"go", "db"}, got.Tags)
	assert.True(t, got.ExpiryStatus.ExpirationDate.Equal(domain.DefaultExpirationDate))

	got, err = repo.GetActiveByUpdateCode(ctx, "UPDATE000001")
	require.NoError(t, err)
	assert.Equal(t, "READ0001", got.ReadCode)

	_, err = repo.GetActiveByReadCode(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_CreateCodeConflict(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, newDoc("SAMECODE", "UPDATE000001", domain.PrivacyPublic))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newDoc("SAMECODE", "UPDATE000002", domain.PrivacyPublic))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDocumentRepository_UpdateReplacesTagsAndZeroValues(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	doc := newDoc("READ0001", "UPDATE000001", domain.PrivacyPrivate, "a", "b")
	doc.PasswordStatus = domain.PasswordStatus{IsPasswordProtected: true, PasswordHash: "hash"}
	created, err := repo.Create(ctx, doc)
	require.NoError(t, err)

	created.Tags = []string{"c"}
	created.PasswordStatus = domain.PasswordStatus{}
	created.Privacy = domain.PrivacyPublic
	created.Title = ""

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, updated.Tags)
	assert.False(t, updated.PasswordStatus.IsPasswordProtected)
	assert.Empty(t, updated.PasswordStatus.PasswordHash)
	assert.Equal(t, domain.PrivacyPublic, updated.Privacy)
	assert.Equal(t, "", updated.Title)
	assert.Equal(t, "READ0001", updated.ReadCode)
}

func TestDocumentRepository_Deactivate(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newDoc("READ0001", "UPDATE000001", domain.PrivacyPublic))
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(ctx, created.ID))

	_, err = repo.GetActiveByReadCode(ctx, "READ0001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetActiveByUpdateCode(ctx, "UPDATE000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the row survives as a soft-deleted record
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, repo.Deactivate(ctx, created.ID), domain.ErrNotFound)
}

func TestDocumentRepository_IncrementViewsConcurrent(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newDoc("READ0001", "UPDATE000001", domain.PrivacyPublic))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementViews(ctx, created.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Views)

	views, err := repo.IncrementViews(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n+1), views)
}

func TestDocumentRepository_List(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		read    string
		privacy domain.Privacy
		typ     domain.DocumentType
		tags    []string
		views   int
	}{
		{"PUB00001", domain.PrivacyPublic, domain.DocumentTypeText, []string{"go"}, 3},
		{"PUB00002", domain.PrivacyPublic, domain.DocumentTypeCode, []string{"go", "sql"}, 1},
		{"PUB00003", domain.PrivacyPublic, domain.DocumentTypeText, []string{"rust"}, 5},
		{"PRIV0001", domain.PrivacyPrivate, domain.DocumentTypeText, []string{"go"}, 9},
	}
	for i, s := range seed {
		d := newDoc(s.read, "U"+s.read, s.privacy, s.tags...)
		d.Type = s.typ
		d.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		created, err := repo.Create(ctx, d)
		require.NoError(t, err)
		for v := 0; v < s.views; v++ {
			_, err := repo.IncrementViews(ctx, created.ID)
			require.NoError(t, err)
		}
	}

	tests := []struct {
		name   string
		filter domain.DocumentListFilter
		want   []string
		total  int64
	}{
		{
			name:   "default newest first",
			filter: domain.DocumentListFilter{SortBy: domain.SortByCreatedAt, SortDesc: true, Page: 1, PageSize: 10},
			want:   []string{"PUB00003", "PUB00002", "PUB00001"},
			total:  3,
		},
		{
			name:   "tag filter matches any",
			filter: domain.DocumentListFilter{Tags: []string{"sql", "rust"}, SortBy: domain.SortByCreatedAt, Page: 1, PageSize: 10},
			want:   []string{"PUB00002", "PUB00003"},
			total:  2,
		},
		{
			name:   "type filter",
			filter: domain.DocumentListFilter{Type: domain.DocumentTypeCode, Page: 1, PageSize: 10},
			want:   []string{"PUB00002"},
			total:  1,
		},
		{
			name:   "views desc",
			filter: domain.DocumentListFilter{SortBy: domain.SortByViews, SortDesc: true, Page: 1, PageSize: 10},
			want:   []string{"PUB00003", "PUB00001", "PUB00002"},
			total:  3,
		},
		{
			name:   "second page",
			filter: domain.DocumentListFilter{SortBy: domain.SortByCreatedAt, SortDesc: true, Page: 2, PageSize: 2},
			want:   []string{"PUB00001"},
			total:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			got := make([]string, 0, len(list))
			for _, d := range list {
				got = append(got, d.ReadCode)
				assert.Empty(t, d.Content)
				assert.Equal(t, "title "+d.ReadCode, d.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentRepository_ListExpired(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()
	now := time.Now().UTC()

	expired := newDoc("EXP00001", "UEXP00001", domain.PrivacyPublic)
	expired.ExpiryStatus = domain.ExpiryStatus{IsExpiring: true, ExpirationDate: now.Add(-time.Hour)}
	_, err := repo.Create(ctx, expired)
	require.NoError(t, err)

	live := newDoc("LIVE0001", "ULIVE0001", domain.PrivacyPublic)
	live.ExpiryStatus = domain.ExpiryStatus{IsExpiring: true, ExpirationDate: now.Add(time.Hour)}
	_, err = repo.Create(ctx, live)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newDoc("NEVER001", "UNEVER001", domain.PrivacyPublic))
	require.NoError(t, err)

	list, err := repo.ListExpired(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "EXP00001", list[0].ReadCode)
}
