package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置加载 ====================

// Config 进程配置
type Config struct {
	ServerPort string // 监听端口
	ServerMode string // gin 运行模式 debug/release/test

	DBPath     string // SQLite 数据库文件
	LegacyJSON string // 旧版 JSON 快照路径，为空则不导入

	JWTSecret string        // 会话签名密钥
	TokenTTL  time.Duration // 会话有效期

	OpenAPIKey string // 对外接口静态 API Key

	NotifyGatewayURL string // 消息网关地址
	NotifyEnabled    bool   // 是否发送群通知
	NotifyCron       string // 每日提醒的 cron 表达式（秒级）
}

// Load 加载配置
// 默认值可直接起服务；config.yaml 可选；WMS_ 前缀环境变量覆盖一切
func Load() *Config {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("db.path", "data/wms.db")
	v.SetDefault("db.legacy_json", "data/db.json")
	v.SetDefault("jwt.secret", "pdd-wms-secret-change-in-production")
	v.SetDefault("jwt.ttl_hours", 24)
	v.SetDefault("open_api.key", "")
	v.SetDefault("notify.gateway_url", "")
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.cron", "0 0 18 * * *")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("读取配置文件失败: %v", err)
		}
	}

	v.SetEnvPrefix("WMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		ServerPort:       v.GetString("server.port"),
		ServerMode:       v.GetString("server.mode"),
		DBPath:           v.GetString("db.path"),
		LegacyJSON:       v.GetString("db.legacy_json"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         time.Duration(v.GetInt("jwt.ttl_hours")) * time.Hour,
		OpenAPIKey:       v.GetString("open_api.key"),
		NotifyGatewayURL: v.GetString("notify.gateway_url"),
		NotifyEnabled:    v.GetBool("notify.enabled"),
		NotifyCron:       v.GetString("notify.cron"),
	}
}
