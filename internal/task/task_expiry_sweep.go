package task

import (
	"context"

	"github.com/haierkeys/doc-share-service/internal/app"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpirySweepTask soft-deletes expired documents in batches.
// Reads still expire documents lazily, this task only keeps the table tidy.
// ExpirySweepTask 分批软删除过期文档，读取时的惰性过期依然生效
type ExpirySweepTask struct {
	app      *app.App
	logger   *zap.Logger
	schedule cron.Schedule
	batch    int
}

// Name 返回任务名称
func (t *ExpirySweepTask) Name() string {
	return "ExpirySweep"
}

// Schedule 返回执行计划
func (t *ExpirySweepTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun 是否立即执行一次
func (t *ExpirySweepTask) IsStartupRun() bool {
	return false
}

// Run 执行扫描
func (t *ExpirySweepTask) Run(ctx context.Context) error {
	n, err := t.app.DocumentService.SweepExpired(ctx, t.batch)
	if err != nil {
		return err
	}
	t.logger.Info("task log",
		zap.String("task", t.Name()),
		zap.Int("expired", n),
		zap.String("msg", "success"))
	return nil
}

// NewExpirySweepTask 创建过期扫描任务，未启用时返回 nil
func NewExpirySweepTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config().Task
	if !cfg.ExpirySweepEnabled {
		appContainer.Logger().Info("expiry sweep task is disabled, documents expire on read")
		return nil, nil
	}
	schedule, err := ParseSchedule(cfg.ExpirySweepSchedule)
	if err != nil {
		return nil, errors.Wrapf(err, "expiry sweep schedule %q", cfg.ExpirySweepSchedule)
	}
	return &ExpirySweepTask{
		app:      appContainer,
		logger:   appContainer.Logger(),
		schedule: schedule,
		batch:    cfg.ExpirySweepBatch,
	}, nil
}

func init() {
	RegisterWithApp(NewExpirySweepTask)
}
