package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/haierkeys/doc-share-service/internal/cache"
	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks ---

var errStoreDown = errors.New("store is down")

// memDocumentRepo in-memory document store with injectable failures
type memDocumentRepo struct {
	domain.DocumentRepository

	mu     sync.Mutex
	nextID int64
	docs   map[int64]*domain.Document

	createErrs   []error
	getErr       error
	incrementErr error

	readCodeLoads   int
	deactivateCalls int
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: make(map[int64]*domain.Document)}
}

func (m *memDocumentRepo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	for _, d := range m.docs {
		if d.ReadCode == doc.ReadCode || d.UpdateCode == doc.UpdateCode {
			return nil, domain.ErrConflict
		}
	}
	m.nextID++
	c := doc.Clone()
	c.ID = m.nextID
	m.docs[c.ID] = c
	return c.Clone(), nil
}

func (m *memDocumentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Clone(), nil
}

func (m *memDocumentRepo) GetActiveByReadCode(ctx context.Context, readCode string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCodeLoads++
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, d := range m.docs {
		if d.Active && d.ReadCode == readCode {
			return d.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDocumentRepo) GetActiveByUpdateCode(ctx context.Context, updateCode string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, d := range m.docs {
		if d.Active && d.UpdateCode == updateCode {
			return d.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDocumentRepo) Update(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.docs[doc.ID]
	if !ok || !cur.Active {
		return nil, domain.ErrNotFound
	}
	next := doc.Clone()
	next.Views = cur.Views
	next.Active = cur.Active
	next.CreatedAt = cur.CreatedAt
	m.docs[doc.ID] = next
	return next.Clone(), nil
}

func (m *memDocumentRepo) Deactivate(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deactivateCalls++
	d, ok := m.docs[id]
	if !ok || !d.Active {
		return domain.ErrNotFound
	}
	d.Active = false
	return nil
}

func (m *memDocumentRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incrementErr != nil {
		return 0, m.incrementErr
	}
	d, ok := m.docs[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	d.Views++
	return d.Views, nil
}

func (m *memDocumentRepo) List(ctx context.Context, filter domain.DocumentListFilter) ([]*domain.Document, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Document
	for _, d := range m.docs {
		if !d.Active || d.Privacy != domain.PrivacyPublic {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(d.Tags, filter.Tags) {
			continue
		}
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if filter.SortBy == domain.SortByViews && a.Views != b.Views {
			return (a.Views < b.Views) != filter.SortDesc
		}
		return (a.ID < b.ID) != filter.SortDesc
	})
	total := int64(len(out))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *memDocumentRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Document
	for _, d := range m.docs {
		if d.Active && d.IsExpiredAt(now) {
			out = append(out, d.Clone())
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// stored returns the store's copy, bypassing every cache
func (m *memDocumentRepo) stored(id int64) *domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id].Clone()
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

type memKeyRepo struct {
	domain.EncryptionKeyRepository
	mu   sync.Mutex
	keys map[int64]string
	err  error
}

func (m *memKeyRepo) Create(ctx context.Context, key *domain.EncryptionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.keys == nil {
		m.keys = make(map[int64]string)
	}
	m.keys[key.DocumentID] = key.Key
	return nil
}

type memAuditRepo struct {
	domain.AuditLogRepository
	mu   sync.Mutex
	logs []*domain.AuditLog
}

func (m *memAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *memAuditRepo) ListByDocumentID(ctx context.Context, documentID int64) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AuditLog
	for _, l := range m.logs {
		if l.DocumentID == documentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memAuditRepo) types() []domain.AuditType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditType, 0, len(m.logs))
	for _, l := range m.logs {
		out = append(out, l.Type)
	}
	return out
}

// failingCache wraps a working cache and fails the selected operations
type failingCache struct {
	domain.DocumentCache
	getErr error
	setErr error
	delErr error
}

func (f *failingCache) Get(ctx context.Context, readCode string) (*domain.Document, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.DocumentCache.Get(ctx, readCode)
}

func (f *failingCache) Set(ctx context.Context, doc *domain.Document, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.DocumentCache.Set(ctx, doc, ttl)
}

func (f *failingCache) Delete(ctx context.Context, readCode string) (bool, error) {
	if f.delErr != nil {
		return false, f.delErr
	}
	return f.DocumentCache.Delete(ctx, readCode)
}

// testEnv wires a DocumentService over in-memory collaborators
type testEnv struct {
	repo    *memDocumentRepo
	keys    *memKeyRepo
	audits  *memAuditRepo
	cache   *failingCache
	now     time.Time
	service DocumentService
}

func (e *testEnv) clock() time.Time {
	return e.now
}

func newTestEnv() *testEnv {
	cfg := DefaultServiceConfig()
	cfg.Document.BcryptCost = bcrypt.MinCost

	env := &testEnv{
		repo:   newMemDocumentRepo(),
		keys:   &memKeyRepo{},
		audits: &memAuditRepo{},
		cache:  &failingCache{DocumentCache: cache.NewDocumentCache(cache.NewMemoryStore(), "")},
		now:    time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	audit := NewAuditService(env.audits, nil, nil, cfg)
	env.service = NewDocumentService(env.repo, env.keys, env.cache, audit, nil, nil, cfg,
		WithClock(func() time.Time { return env.clock() }))
	return env
}
