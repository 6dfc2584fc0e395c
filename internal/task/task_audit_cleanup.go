package task

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/app"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AuditCleanupTask 删除超过保留期的审计记录
type AuditCleanupTask struct {
	app       *app.App
	logger    *zap.Logger
	schedule  cron.Schedule
	retention time.Duration
	now       func() time.Time
}

// Name 返回任务名称
func (t *AuditCleanupTask) Name() string {
	return "AuditCleanup"
}

// Schedule 返回执行计划
func (t *AuditCleanupTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun 是否立即执行一次
func (t *AuditCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理
func (t *AuditCleanupTask) Run(ctx context.Context) error {
	before := t.now().Add(-t.retention)
	n, err := t.app.AuditService.Cleanup(ctx, before)
	if err != nil {
		return err
	}
	t.logger.Info("task log",
		zap.String("task", t.Name()),
		zap.Int64("deleted", n),
		zap.Time("before", before),
		zap.String("msg", "success"))
	return nil
}

// NewAuditCleanupTask 创建审计清理任务，审计关闭时返回 nil
func NewAuditCleanupTask(appContainer *app.App) (Task, error) {
	svcCfg := appContainer.ServiceConfig
	if svcCfg == nil || !svcCfg.App.AuditEnabled || svcCfg.App.AuditRetention <= 0 {
		appContainer.Logger().Info("audit cleanup task is disabled")
		return nil, nil
	}
	expr := appContainer.Config().Task.AuditCleanupSchedule
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "audit cleanup schedule %q", expr)
	}
	return &AuditCleanupTask{
		app:       appContainer,
		logger:    appContainer.Logger(),
		schedule:  schedule,
		retention: svcCfg.App.AuditRetention,
		now:       time.Now,
	}, nil
}

func init() {
	RegisterWithApp(NewAuditCleanupTask)
}
