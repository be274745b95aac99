package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// ErrConfigurationMissing 必填配置缺失
var ErrConfigurationMissing = errors.New("configuration missing")

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load("./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取 path 目录下的 config.yaml（可选），叠加环境变量后校验必填项
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("CHATCV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 兼容原有的环境变量名
	_ = v.BindEnv("llm.api_key", "CHATCV_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("mongo.url", "CHATCV_MONGO_URL", "DB_MONGO")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 只检查存在性，缺失即启动失败
func (c *Config) Validate() error {
	var missing []string
	if c.LLM.ApiKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.Mongo.URL == "" {
		missing = append(missing, "DB_MONGO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("llm.url", "")
	v.SetDefault("llm.model", "gpt-3.5-turbo-1106")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.timeout_seconds", 0)
	v.SetDefault("llm.max_concurrency", 5)
	v.SetDefault("llm.prompt_path", "./prompts/system.txt")
	v.SetDefault("llm.context_path", "./docs/descriptif_cv_for_llm.txt")

	v.SetDefault("chat.bot_name", "Renardo")
	v.SetDefault("chat.owner_name", "Sergio")
	v.SetDefault("chat.timezone", "Europe/Madrid")
	v.SetDefault("chat.max_queries", 0)
	v.SetDefault("chat.reveal_delay_ms", 30)
	v.SetDefault("chat.reveal_mode", "char")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.cookie_name", "chatcv_session")
	v.SetDefault("session.idle_minutes", 60)
	v.SetDefault("session.sweep_spec", "0 */5 * * * *")
	v.SetDefault("session.secret", "")

	v.SetDefault("mongo.database", "CHAT-CV")
	v.SetDefault("mongo.exchange_collection", "PreguntasRespuestas")
	v.SetDefault("mongo.counter_collection", "ContadorCV")
	v.SetDefault("mongo.counter_id", "6486283c707ebb023db021e4")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "chatcv:session:")

	v.SetDefault("cv.backend", "file")
	v.SetDefault("cv.path", "./docs/cv.pdf")
	v.SetDefault("cv.file_name", "cv.pdf")
	v.SetDefault("cv.object", "cv.pdf")

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "chatcv")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("kafka.enable", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.exchange_topic", "chatcv-exchanges")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.remote_addr", "")
}
