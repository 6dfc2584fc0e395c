// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/doc-share-service/internal/cache"
	"github.com/haierkeys/doc-share-service/internal/dao"
	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/service"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/limiter"
	"github.com/haierkeys/doc-share-service/pkg/logger"
	"github.com/haierkeys/doc-share-service/pkg/util"
	"github.com/haierkeys/doc-share-service/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Document DocumentConfig `yaml:"document"`
	App      AppSettings    `yaml:"app"`
	Task     TaskConfig     `yaml:"task"`
	Limiter  []LimiterRule  `yaml:"limiter"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Cors     CorsConfig     `yaml:"cors"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics、pprof），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:9001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite | mysql | postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/doc-share.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas 只读副本主机，列表查询走副本
	Replicas []string `yaml:"replicas"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	// Driver redis | memory
	Driver    string `yaml:"driver" default:"memory"`
	Addr      string `yaml:"addr" default:"127.0.0.1:6379"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key-prefix" default:"DOCUMENT"`
	PoolSize  int    `yaml:"pool-size" default:"20"`
	// DialTimeout 连接与读写超时，默认 3s
	DialTimeout string `yaml:"dial-timeout" default:"3s"`
	// ReadTTL 读回源后的缓存时间，默认 300s
	ReadTTL string `yaml:"read-ttl" default:"300s"`
	// WriteTTL 写入后的缓存时间，默认 600s
	WriteTTL string `yaml:"write-ttl" default:"600s"`
}

// DocumentConfig 文档配置
type DocumentConfig struct {
	ReadCodeLength   int `yaml:"read-code-length" default:"8"`
	UpdateCodeLength int `yaml:"update-code-length" default:"12"`
	// DefaultExpiry 不过期文档使用的远期日期，RFC3339
	DefaultExpiry string `yaml:"default-expiry" default:"2100-01-01T00:00:00Z"`
	BcryptCost    int    `yaml:"bcrypt-cost" default:"10"`
	// RenderStyle chroma 代码高亮样式
	RenderStyle string `yaml:"render-style" default:"github"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"16"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1024"`

	// AuditEnabled 是否记录审计日志
	AuditEnabled bool `yaml:"audit-enabled" default:"true"`
	// AuditRetention 审计日志保留时间，默认 90d
	AuditRetention string `yaml:"audit-retention" default:"90d"`
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	// ExpirySweepEnabled 是否启用过期扫描，读取时的惰性过期始终生效
	ExpirySweepEnabled bool `yaml:"expiry-sweep-enabled" default:"false"`
	// ExpirySweepSchedule cron 表达式
	ExpirySweepSchedule string `yaml:"expiry-sweep-schedule" default:"*/10 * * * *"`
	// ExpirySweepBatch 每次扫描处理的最大文档数
	ExpirySweepBatch int `yaml:"expiry-sweep-batch" default:"500"`
	// AuditCleanupSchedule cron 表达式
	AuditCleanupSchedule string `yaml:"audit-cleanup-schedule" default:"0 3 * * *"`
}

// LimiterRule 限流规则
type LimiterRule struct {
	// Key 路由前缀
	Key string `yaml:"key"`
	// FillInterval 令牌填充间隔
	FillInterval string `yaml:"fill-interval" default:"1s"`
	Capacity     int64  `yaml:"capacity" default:"10"`
	Quantum      int64  `yaml:"quantum" default:"10"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent jaeger agent host:port，为空时不上报
	JaegerAgent string `yaml:"jaeger-agent"`
	// ServiceName 上报的服务名
	ServiceName string `yaml:"service-name" default:"doc-share-service"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	// AllowOrigins 为空或 * 时允许所有来源
	AllowOrigins []string `yaml:"allow-origins"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults 只在解析前对整体填充一次，否则 YAML 中显式的 false 会被改回 true
	// 列表元素由 YAML 新建，需单独填充
	for i := range c.Limiter {
		if err := defaults.Set(&c.Limiter[i]); err != nil {
			return nil, realpath, errors.Wrap(err, "set limiter default failed")
		}
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetDatabaseConfig 获取 DAO 层数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		SSLMode:         c.Database.SSLMode,
		AutoMigrate:     c.Database.AutoMigrate,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		Replicas:        c.Database.Replicas,
		RunMode:         c.Server.RunMode,
	}
}

// GetCacheConfig 获取缓存配置
func (c *AppConfig) GetCacheConfig() cache.Config {
	return cache.Config{
		Driver:      c.Cache.Driver,
		Addr:        c.Cache.Addr,
		Password:    c.Cache.Password,
		DB:          c.Cache.DB,
		KeyPrefix:   c.Cache.KeyPrefix,
		PoolSize:    c.Cache.PoolSize,
		DialTimeout: util.ParseDurationOr(c.Cache.DialTimeout, 3*time.Second),
	}
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetServiceConfig 从应用配置提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	def := service.DefaultServiceConfig()

	defaultExpiry := domain.DefaultExpirationDate
	if t, err := time.Parse(time.RFC3339, c.Document.DefaultExpiry); err == nil {
		defaultExpiry = t.UTC()
	}

	return &service.ServiceConfig{
		Document: service.DocumentServiceConfig{
			ReadCodeLength:   c.Document.ReadCodeLength,
			UpdateCodeLength: c.Document.UpdateCodeLength,
			DefaultExpiry:    defaultExpiry,
			BcryptCost:       c.Document.BcryptCost,
			RenderStyle:      c.Document.RenderStyle,
		},
		Cache: service.CacheServiceConfig{
			ReadTTL:  util.ParseDurationOr(c.Cache.ReadTTL, def.Cache.ReadTTL),
			WriteTTL: util.ParseDurationOr(c.Cache.WriteTTL, def.Cache.WriteTTL),
		},
		App: service.AppServiceConfig{
			Pagination: pkgapp.PaginationConfig{
				DefaultPageSize: c.App.DefaultPageSize,
				MaxPageSize:     c.App.MaxPageSize,
			},
			AuditEnabled:   c.App.AuditEnabled,
			AuditRetention: util.ParseDurationOr(c.App.AuditRetention, def.App.AuditRetention),
		},
	}
}

// GetLimiterRules 获取限流规则
func (c *AppConfig) GetLimiterRules() []limiter.BucketRule {
	rules := make([]limiter.BucketRule, 0, len(c.Limiter))
	for _, r := range c.Limiter {
		if r.Key == "" {
			continue
		}
		rules = append(rules, limiter.BucketRule{
			Key:          r.Key,
			FillInterval: util.ParseDurationOr(r.FillInterval, time.Second),
			Capacity:     r.Capacity,
			Quantum:      r.Quantum,
		})
	}
	return rules
}

// GetContextTimeout 获取请求上下文超时
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
