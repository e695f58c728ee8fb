package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Outblog  OutblogConfig  `mapstructure:"outblog"`
	Shopify  ShopifyConfig  `mapstructure:"shopify"`
	Cron     CronConfig     `mapstructure:"cron"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Limit    LimitConfig    `mapstructure:"limit"`
}

type AppConfig struct {
	Env  string `mapstructure:"env"` // development / production
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig 数据库配置
// driver: postgres | sqlite
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

// RedisConfig 为空 Addr 时使用进程内缓存
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	BlogTTL  time.Duration `mapstructure:"blog_ttl"`
}

type OutblogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ShopifyConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	APISecret  string        `mapstructure:"api_secret"`
	APIVersion string        `mapstructure:"api_version"`
	BlogHandle string        `mapstructure:"blog_handle"`
	BlogTitle  string        `mapstructure:"blog_title"`
	Author     string        `mapstructure:"author"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// 每个店铺每秒允许的 GraphQL 请求数
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst"`
}

type CronConfig struct {
	Secret   string `mapstructure:"secret"`
	Enabled  bool   `mapstructure:"enabled"` // 进程内定时同步，外部 cron 调用 /api/cron 时关闭
	Schedule string `mapstructure:"schedule"`
}

type PublishConfig struct {
	// 批量发布是否也做完整的 markdown 转换 (默认只去掉 front matter)
	BulkFullSanitize bool `mapstructure:"bulk_full_sanitize"`
}

// LimitConfig 手动操作冷却时间
type LimitConfig struct {
	FetchInterval      time.Duration `mapstructure:"fetch_interval"`
	PublishAllInterval time.Duration `mapstructure:"publish_all_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=outblog port=5432 sslmode=disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.blog_ttl", 24*time.Hour)

	v.SetDefault("outblog.base_url", "https://api.outblogai.com")
	v.SetDefault("outblog.timeout", 20*time.Second)

	v.SetDefault("shopify.api_version", "2025-01")
	v.SetDefault("shopify.blog_handle", "outblog")
	v.SetDefault("shopify.blog_title", "Outblog")
	v.SetDefault("shopify.author", "Outblog AI")
	v.SetDefault("shopify.timeout", 30*time.Second)
	v.SetDefault("shopify.rate_per_second", 2.0)
	v.SetDefault("shopify.rate_burst", 4)

	v.SetDefault("cron.enabled", false)
	v.SetDefault("cron.schedule", "0 0 3 * * *")

	v.SetDefault("publish.bulk_full_sanitize", false)

	v.SetDefault("limit.fetch_interval", 30*time.Second)
	v.SetDefault("limit.publish_all_interval", time.Minute)
}

// Load 读取配置：默认值 < config 文件 < 环境变量
// path 为空时按 ./config.yaml 查找，找不到不报错
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// DATABASE_DSN -> database.dsn
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// bindEnvs AutomaticEnv 只对 Get 生效，Unmarshal 需要显式绑定
func bindEnvs(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}
	// 常用的部署环境变量名
	_ = v.BindEnv("cron.secret", "CRON_SECRET")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("shopify.api_key", "SHOPIFY_API_KEY")
	_ = v.BindEnv("shopify.api_secret", "SHOPIFY_API_SECRET")
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
