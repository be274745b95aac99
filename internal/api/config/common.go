package config

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Session SessionConfig `mapstructure:"session"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	CV      CVConfig      `mapstructure:"cv"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig 大模型配置
type LLMConfig struct {
	URL            string             `mapstructure:"url"`
	Model          string             `mapstructure:"model"`
	ApiKey         string             `mapstructure:"api_key"`
	Temperature    float64            `mapstructure:"temperature"`
	TimeoutSeconds int                `mapstructure:"timeout_seconds"`
	MaxConcurrency int64              `mapstructure:"max_concurrency"`
	PromptPath     string             `mapstructure:"prompt_path"`
	ContextPath    string             `mapstructure:"context_path"`
	Pricing        map[string]float64 `mapstructure:"pricing"`
}

// ChatConfig 对话配置
type ChatConfig struct {
	BotName     string `mapstructure:"bot_name"`
	OwnerName   string `mapstructure:"owner_name"`
	Timezone    string `mapstructure:"timezone"`
	MaxQueries  int    `mapstructure:"max_queries"`
	RevealDelay int    `mapstructure:"reveal_delay_ms"`
	RevealMode  string `mapstructure:"reveal_mode"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Backend     string `mapstructure:"backend"`
	CookieName  string `mapstructure:"cookie_name"`
	Secret      string `mapstructure:"secret"`
	IdleMinutes int    `mapstructure:"idle_minutes"`
	SweepSpec   string `mapstructure:"sweep_spec"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL                string `mapstructure:"url"`
	Database           string `mapstructure:"database"`
	ExchangeCollection string `mapstructure:"exchange_collection"`
	CounterCollection  string `mapstructure:"counter_collection"`
	CounterID          string `mapstructure:"counter_id"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// CVConfig 简历文件配置
type CVConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	FileName string `mapstructure:"file_name"`
	Object   string `mapstructure:"object"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type KafkaConfig struct {
	Enable        bool       `mapstructure:"enable"`
	Brokers       []string   `mapstructure:"brokers"`
	Sasl          SaslConfig `mapstructure:"sasl"`
	ExchangeTopic string     `mapstructure:"exchange_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	RemoteAddr string `mapstructure:"remote_addr"`
}
