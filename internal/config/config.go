package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Notion NotionConfig `mapstructure:"notion"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// NotionConfig Notion集成配置
// Token为启动必需项，缺失时Load直接报错
type NotionConfig struct {
	Token   string `mapstructure:"token"`
	Version string `mapstructure:"version"`
	BaseURL string `mapstructure:"base_url"` // 留空使用官方地址

	// 业务数据库ID
	DailySalesDB  string `mapstructure:"daily_sales_db"`
	SalesmanDB    string `mapstructure:"salesman_db"`
	DistributorDB string `mapstructure:"distributor_db"`
	SKUDB         string `mapstructure:"sku_db"`
	OutletDB      string `mapstructure:"outlet_db"` // 可选，留空则不渲染门店下拉
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 默认值
	v.SetDefault("server.port", 5055)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("notion.version", "2022-06-28")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// 配置文件不存在，使用环境变量
	}

	// 环境变量覆盖配置
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 凭证缺失属于致命启动错误
	if cfg.Notion.Token == "" {
		return nil, fmt.Errorf("notion token missing: set NOTION_TOKEN in .env or environment")
	}

	return &cfg, nil
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Notion
	v.BindEnv("notion.token", "NOTION_TOKEN")
	v.BindEnv("notion.version", "NOTION_VERSION")
	v.BindEnv("notion.base_url", "NOTION_BASE_URL")
	v.BindEnv("notion.daily_sales_db", "DB_DAILY_SALES")
	v.BindEnv("notion.salesman_db", "DB_MASTER_SALESMAN")
	v.BindEnv("notion.distributor_db", "DB_MASTER_DISTRIBUTOR")
	v.BindEnv("notion.sku_db", "DB_MASTER_SKU")
	v.BindEnv("notion.outlet_db", "DB_MASTER_OUTLET")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}
