// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/haierkeys/doc-share-service/internal/cache"
	"github.com/haierkeys/doc-share-service/internal/dao"
	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/service"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/tracer"
	"github.com/haierkeys/doc-share-service/pkg/workerpool"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool *workerpool.Pool

	// 缓存与观测
	cacheStore   cache.Store
	Registry     *prometheus.Registry
	Metrics      *service.Metrics
	Tracer       opentracing.Tracer
	tracerCloser io.Closer

	// Repository 层
	DocumentRepo      domain.DocumentRepository
	EncryptionKeyRepo domain.EncryptionKeyRepository
	ReportRepo        domain.ReportRepository
	AuditLogRepo      domain.AuditLogRepository
	DocumentCache     domain.DocumentCache

	// Service 层
	DocumentService service.DocumentService
	ReportService   service.ReportService
	AuditService    service.AuditService

	ServiceConfig *service.ServiceConfig

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	// 初始化缓存
	cacheConfig := cfg.GetCacheConfig()
	store, err := cache.NewStore(cacheConfig)
	if err != nil {
		return nil, err
	}
	a.cacheStore = store
	a.DocumentCache = cache.NewDocumentCache(store, cacheConfig.KeyPrefix)

	// 初始化追踪
	a.Tracer, a.tracerCloser, err = tracer.NewJaegerTracer(cfg.Tracer.ServiceName, cfg.Tracer.JaegerAgent)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	// each container owns its registry so a config reload can build a fresh one
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = service.NewMetrics(a.Registry)

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(wpConfig, logger)

	// 初始化 DAO（使用依赖注入）
	dbConfig := cfg.GetDatabaseConfig()
	a.Dao = dao.New(db,
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
	)

	// 初始化 Repository 层
	a.DocumentRepo = dao.NewDocumentRepository(a.Dao)
	a.EncryptionKeyRepo = dao.NewEncryptionKeyRepository(a.Dao)
	a.ReportRepo = dao.NewReportRepository(a.Dao)
	a.AuditLogRepo = dao.NewAuditLogRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.ServiceConfig = cfg.GetServiceConfig()
	a.AuditService = service.NewAuditService(a.AuditLogRepo, a.workerPool, logger, a.ServiceConfig)
	a.DocumentService = service.NewDocumentService(
		a.DocumentRepo,
		a.EncryptionKeyRepo,
		a.DocumentCache,
		a.AuditService,
		logger,
		a.Metrics,
		a.ServiceConfig,
		service.WithStorePinger(a.Dao.Ping),
	)
	a.ReportService = service.NewReportService(a.DocumentRepo, a.ReportRepo, logger)

	logger.Info("App container initialized successfully",
		zap.String("cacheDriver", cacheConfig.Driver),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	var firstErr error
	if a.cacheStore != nil {
		if err := a.cacheStore.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close cache: %w", err)
		}
	}
	if a.tracerCloser != nil {
		if err := a.tracerCloser.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close tracer: %w", err)
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return firstErr
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Worker Pool -> 后台操作 -> 缓存、追踪、数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 关闭 Worker Pool（停止接受新任务，等待排队的审计写入完成）
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 2. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 3. 关闭缓存、追踪与数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
