package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Backend         BackendConfig         `mapstructure:"backend"`
	Poll            PollConfig            `mapstructure:"poll"`
	Log             LogConfig             `mapstructure:"log"`
	ServiceRegistry ServiceRegistryConfig `mapstructure:"service_registry"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// BackendConfig 后端任务服务配置
type BackendConfig struct {
	// BaseURL 指向任务后端，例如 http://127.0.0.1:8000
	BaseURL string `mapstructure:"base_url"`
	// PollTimeout 单次轮询请求超时，必须小于最短轮询周期
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
	// CommandTimeout 用户指令请求超时（ensure/scan 可能较慢）
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// PollConfig 各资源的轮询周期
type PollConfig struct {
	TasksInterval          time.Duration `mapstructure:"tasks_interval"`
	DownloadsInterval      time.Duration `mapstructure:"downloads_interval"`
	UpscaleInterval        time.Duration `mapstructure:"upscale_interval"`
	InstanceStatusInterval time.Duration `mapstructure:"instance_status_interval"`
	ClipsInterval          time.Duration `mapstructure:"clips_interval"`
	// MaxBackoffFactor 连续失败时轮询周期的放大上限
	MaxBackoffFactor int `mapstructure:"max_backoff_factor"`
}

// ServiceRegistryConfig registration configuration.
type ServiceRegistryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoints       []string      `mapstructure:"endpoints"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceID       string        `mapstructure:"service_id"`
	RegisterHost    string        `mapstructure:"register_host"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	viper.SetDefault("backend.poll_timeout", "2500ms")
	viper.SetDefault("backend.command_timeout", "15s")
	viper.SetDefault("poll.tasks_interval", "3s")
	viper.SetDefault("poll.downloads_interval", "3s")
	viper.SetDefault("poll.upscale_interval", "4s")
	viper.SetDefault("poll.instance_status_interval", "8s")
	viper.SetDefault("poll.clips_interval", "3s")
	viper.SetDefault("poll.max_backoff_factor", 5)
	viper.SetDefault("service_registry.enabled", false)
	viper.SetDefault("service_registry.service_name", "dashboard-service")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.output", "stdout")

	// 设置环境变量前缀
	viper.SetEnvPrefix("DASHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	// 解析配置
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.normalize()

	return &config, nil
}

// normalize 补全配置的默认值
func (c *Config) normalize() {
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Backend.PollTimeout <= 0 {
		c.Backend.PollTimeout = 2500 * time.Millisecond
	}
	if c.Backend.CommandTimeout <= 0 {
		c.Backend.CommandTimeout = 15 * time.Second
	}
	if c.Poll.TasksInterval <= 0 {
		c.Poll.TasksInterval = 3 * time.Second
	}
	if c.Poll.DownloadsInterval <= 0 {
		c.Poll.DownloadsInterval = c.Poll.TasksInterval
	}
	if c.Poll.UpscaleInterval <= 0 {
		c.Poll.UpscaleInterval = 4 * time.Second
	}
	if c.Poll.InstanceStatusInterval <= 0 {
		c.Poll.InstanceStatusInterval = 8 * time.Second
	}
	if c.Poll.ClipsInterval <= 0 {
		c.Poll.ClipsInterval = c.Poll.TasksInterval
	}
	if c.Poll.MaxBackoffFactor <= 0 {
		c.Poll.MaxBackoffFactor = 5
	}
	// 轮询超时必须短于最短周期，避免挂起请求饿死同一资源的后续轮询
	if c.Backend.PollTimeout >= c.Poll.TasksInterval {
		c.Backend.PollTimeout = c.Poll.TasksInterval - 500*time.Millisecond
	}
	if c.ServiceRegistry.DialTimeout <= 0 {
		c.ServiceRegistry.DialTimeout = 5 * time.Second
	}
	if c.ServiceRegistry.TTL <= 0 {
		c.ServiceRegistry.TTL = 15 * time.Second
	}
}

// GetServerAddr 返回HTTP监听地址
func (c *ServerConfig) GetServerAddr() string {
	host := c.Host
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, c.Port)
}

var globalConfig *Config

// SetGlobalConfig 设置全局配置
func SetGlobalConfig(cfg *Config) {
	globalConfig = cfg
}

// GetGlobalConfig 获取全局配置
func GetGlobalConfig() *Config {
	return globalConfig
}
