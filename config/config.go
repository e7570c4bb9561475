package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Subscription SubscriptionConfig `mapstructure:"subscription"`
	Synthesis    SynthesisConfig    `mapstructure:"synthesis"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Queue        QueueConfig        `mapstructure:"queue"`
	Quota        QuotaConfig        `mapstructure:"quota"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Upload       UploadConfig       `mapstructure:"upload"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql 或 sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Path         string `mapstructure:"path"` // sqlite 数据库文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SubscriptionConfig struct {
	Tiers map[string]SubscriptionTier `mapstructure:"tiers"`
}

type SubscriptionTier struct {
	DailyGenerations int     `mapstructure:"daily_generations"`
	Price            float64 `mapstructure:"price"`
	AllowCloning     bool    `mapstructure:"allow_cloning"`
}

type SynthesisConfig struct {
	Command        string   `mapstructure:"command"`         // 本地 TTS 命令，如 espeak-ng
	Args           []string `mapstructure:"args"`            // 附加参数
	TimeoutSeconds int      `mapstructure:"timeout_seconds"` // 单次合成超时
	BaseRate       int      `mapstructure:"base_rate"`       // 基准语速（词/分钟）
}

type StorageConfig struct {
	Backend  string    `mapstructure:"backend"`   // local 或 oss
	LocalDir string    `mapstructure:"local_dir"` // local 后端的根目录
	OSS      OSSConfig `mapstructure:"oss"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type QueueConfig struct {
	SynthesisQueue string `mapstructure:"synthesis_queue"`
	MaxWorkers     int    `mapstructure:"max_workers"`
}

type QuotaConfig struct {
	ResetEnabled bool `mapstructure:"reset_enabled"` // 是否启用每日配额重置
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type UploadConfig struct {
	MaxSampleSize     int64    `mapstructure:"max_sample_size"`    // 克隆样本最大字节数
	AllowedExtensions []string `mapstructure:"allowed_extensions"` // 允许的样本扩展名
}

// 未知档位回退的默认取值（静默替换而非拒绝）
const (
	DefaultDailyGenerations = 10
	DefaultPrice            = 0.0
)

// TierFor 查询档位配置，未知档位返回默认值
func (c *SubscriptionConfig) TierFor(name string) SubscriptionTier {
	if tier, ok := c.Tiers[name]; ok {
		return tier
	}
	return SubscriptionTier{
		DailyGenerations: DefaultDailyGenerations,
		Price:            DefaultPrice,
	}
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
