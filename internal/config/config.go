package config

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"simba-catalog-server/internal/consts"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 用于管理应用配置

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// TrustedProxies 逗号/分号/空白分隔的代理 IP 或 CIDR，为空时不信任任何代理
	TrustedProxies string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
	LogLevel string `mapstructure:"log_level"`
}

// UploadConfig 图片存储目录（相对于进程工作目录）及上传策略
type UploadConfig struct {
	Path              string `mapstructure:"path"`
	MaxSizeMB         int    `mapstructure:"max_size_mb"`
	AllowedExtensions string `mapstructure:"allowed_extensions"`
	CacheControl      string `mapstructure:"cache_control"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

type CatalogConfig struct {
	CategoryDeletePolicy string `mapstructure:"category_delete_policy"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// InitConfig 加载配置并监听配置文件变更
func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("🔄 检测到配置文件变更: %s", e.Name)
			loadAndStore(v)
		})
		v.WatchConfig()
	}
	log.Println("✅ 配置加载成功")
}

// InitConfigWithoutWatch 加载配置但不监听文件，测试使用
func InitConfigWithoutWatch(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
}

func initViper(customConfigDir string) *viper.Viper {
	// .env 仅作为环境变量来源，不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 设置默认值
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/simba.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "simba")
	v.SetDefault("database.ssl", false)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("upload.path", "uploads/images")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("upload.allowed_extensions", ".jpg,.jpeg,.png,.gif,.webp")
	v.SetDefault("upload.cache_control", "public, max-age=86400")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "simba")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.upload_rps", 5)
	v.SetDefault("rate_limit.upload_burst", 10)
	v.SetDefault("catalog.category_delete_policy", consts.CategoryDeleteRestrict)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 SIMBA_ 开头
	// 例如：yaml 中的 upload.path 对应环境变量 SIMBA_UPLOAD_PATH
	v.SetEnvPrefix("SIMBA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	// 加写锁，防止并发重载时的竞争
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ 配置解析失败: %v", err)
		return
	}

	normalize(&tempConfig)

	appConfig.Store(&tempConfig)
	log.Println("✅ 配置已更新")
}

// normalize 修正非法取值
func normalize(c *Config) {
	if strings.TrimSpace(c.Upload.Path) == "" {
		c.Upload.Path = "uploads/images"
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 10
	}

	if c.RateLimit.UploadRPS <= 0 {
		if c.RateLimit.Enabled {
			log.Printf("⚠️ rate_limit.upload_rps=%v 无效，已回退为 5", c.RateLimit.UploadRPS)
		}
		c.RateLimit.UploadRPS = 5
	}
	if c.RateLimit.UploadBurst <= 0 {
		if c.RateLimit.Enabled {
			log.Printf("⚠️ rate_limit.upload_burst=%d 无效，已回退为 10", c.RateLimit.UploadBurst)
		}
		c.RateLimit.UploadBurst = 10
	}

	policy := strings.ToLower(strings.TrimSpace(c.Catalog.CategoryDeletePolicy))
	switch policy {
	case consts.CategoryDeleteRestrict, consts.CategoryDeleteCascade:
	case consts.CategoryDeleteOrphan:
		// 商品必须归属分类，无法孤立
		log.Printf("⚠️ catalog.category_delete_policy=%s 不受支持（商品必须归属分类），已回退为 %s", policy, consts.CategoryDeleteRestrict)
		policy = consts.CategoryDeleteRestrict
	default:
		if policy != "" {
			log.Printf("⚠️ 未知的 catalog.category_delete_policy=%q，已回退为 %s", policy, consts.CategoryDeleteRestrict)
		}
		policy = consts.CategoryDeleteRestrict
	}
	c.Catalog.CategoryDeletePolicy = policy
}
