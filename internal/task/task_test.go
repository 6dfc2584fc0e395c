package task

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/doc-share-service/internal/app"
	"github.com/haierkeys/doc-share-service/internal/dao"
	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/dto"
	"github.com/haierkeys/doc-share-service/internal/model"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, extra string) *app.App {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "database:\n  path: \"" + dsn + "\"\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, _, err := app.LoadConfig(path)
	require.NoError(t, err)
	cfg.Database.MaxOpenConns = 1

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func TestExpirySweepDisabledByDefault(t *testing.T) {
	a := newTestApp(t, "")
	task, err := NewExpirySweepTask(a)
	require.NoError(t, err)
	assert.Nil(t, task)

	m := NewManager(zap.NewNop(), safe_close.NewSafeClose(), a)
	require.NoError(t, m.RegisterTasks())
	assert.Equal(t, []string{"AuditCleanup"}, m.Tasks())
}

func TestExpirySweepRejectsBadSchedule(t *testing.T) {
	a := newTestApp(t, "task:\n  expiry-sweep-enabled: true\n  expiry-sweep-schedule: \"not a cron\"\n")
	_, err := NewExpirySweepTask(a)
	assert.Error(t, err)
}

func TestExpirySweepExpiresPastDocuments(t *testing.T) {
	a := newTestApp(t, "task:\n  expiry-sweep-enabled: true\n")
	ctx := context.Background()

	task, err := NewExpirySweepTask(a)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "ExpirySweep", task.Name())
	assert.False(t, task.IsStartupRun())

	stale, err := a.DocumentService.Create(ctx, &dto.DocumentCreateRequest{Content: "old"}, "127.0.0.1")
	require.NoError(t, err)
	fresh, err := a.DocumentService.Create(ctx, &dto.DocumentCreateRequest{Content: "new"}, "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, a.DB.Model(&model.Document{}).
		Where("id = ?", stale.ID).
		Updates(map[string]interface{}{
			"is_expiring":     true,
			"expiration_date": time.Now().Add(-time.Hour).UTC(),
		}).Error)
	// drop the snapshot cached by Create
	_, err = a.DocumentCache.Delete(ctx, stale.ReadCode)
	require.NoError(t, err)

	require.NoError(t, task.Run(ctx))

	_, err = a.DocumentService.ResolveStatusByReadCode(ctx, stale.ReadCode)
	assert.ErrorIs(t, err, code.ErrorDocumentNotFound)

	got, err := a.DocumentService.ResolveByReadCode(ctx, &dto.DocumentReadRequest{Code: fresh.ReadCode}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
}

func TestAuditCleanupDeletesOldRows(t *testing.T) {
	a := newTestApp(t, "app:\n  audit-retention: \"1d\"\n")
	ctx := context.Background()

	task, err := NewAuditCleanupTask(a)
	require.NoError(t, err)
	require.NotNil(t, task)

	const docID = 999
	require.NoError(t, a.AuditLogRepo.Create(ctx, &domain.AuditLog{
		DocumentID: docID, Type: domain.AuditCreate, CreatedAt: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, a.AuditLogRepo.Create(ctx, &domain.AuditLog{
		DocumentID: docID, Type: domain.AuditUpdate, CreatedAt: time.Now(),
	}))

	require.NoError(t, task.Run(ctx))

	logs, err := a.AuditLogRepo.ListByDocumentID(ctx, docID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditUpdate, logs[0].Type)
}

func TestAuditCleanupDisabledWithAudit(t *testing.T) {
	a := newTestApp(t, "app:\n  audit-enabled: false\n")
	task, err := NewAuditCleanupTask(a)
	require.NoError(t, err)
	assert.Nil(t, task)
}

type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time { return t.Add(time.Duration(e)) }

type countingTask struct {
	runs     atomic.Int32
	schedule cron.Schedule
}

func (c *countingTask) Name() string            { return "counting" }
func (c *countingTask) Schedule() cron.Schedule { return c.schedule }
func (c *countingTask) IsStartupRun() bool      { return true }
func (c *countingTask) Run(ctx context.Context) error {
	if c.runs.Add(1) == 2 {
		panic("second run panics")
	}
	return nil
}

func TestSchedulerRunsAndStops(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	ct := &countingTask{schedule: everySchedule(5 * time.Millisecond)}
	s.AddTask(ct)
	s.Start()

	assert.Eventually(t, func() bool { return ct.runs.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("*/10 * * * *")
	require.NoError(t, err)
	from := time.Date(2026, 1, 1, 12, 3, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 10, 0, 0, time.UTC), s.Next(from))

	_, err = ParseSchedule("@daily")
	assert.NoError(t, err)
}
