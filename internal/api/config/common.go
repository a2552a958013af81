package config

// Config 配置主体
type Config struct {
	Server                ServerConfig          `mapstructure:"server"`
	DB                    DBConfig              `mapstructure:"database"`
	Redis                 RedisConfig           `mapstructure:"redis"`
	Mongo                 MongoConfig           `mapstructure:"mongo"`
	MinIO                 MinIOConfig           `mapstructure:"minio"`
	Elastic               ElasticConfig         `mapstructure:"elastic"`
	Kafka                 KafkaConfig           `mapstructure:"kafka"`
	KafkaLikeConsumer     KafkaConsumerBinding  `mapstructure:"kafka_like_consumer"`
	KafkaBookmarkConsumer KafkaConsumerBinding  `mapstructure:"kafka_bookmark_consumer"`
	KafkaCommentConsumer  KafkaConsumerBinding  `mapstructure:"kafka_comment_consumer"`
	KafkaPostConsumer     KafkaConsumerBinding  `mapstructure:"kafka_post_consumer"`
	Logstash              LogstashConfig        `mapstructure:"logstash"`
	Site                  SiteConfig            `mapstructure:"site"`
	Music                 MusicConfig           `mapstructure:"music"`
	Marks                 MarksConfig           `mapstructure:"marks"`
	Invite                InviteConfig          `mapstructure:"invite"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	TempBucket       string `mapstructure:"temp_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaConsumerBinding 单个 CDC 消费组的 topic 绑定
type KafkaConsumerBinding struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// LogstashConfig 远程日志上报
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// SiteConfig 站点元信息，RSS/Sitemap 生成使用
type SiteConfig struct {
	URL         string `mapstructure:"url"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
}

// MusicConfig 第三方乐库代理配置
type MusicConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	UserID      string `mapstructure:"user_id"`
	CacheTTLSec int    `mapstructure:"cache_ttl_sec"`
}

// MarksConfig 匿名标记的落地后端：redis（默认）或单机文件
type MarksConfig struct {
	AnonBackend string `mapstructure:"anon_backend"`
	File        string `mapstructure:"file"`
}

// InviteConfig 注册邀请码
type InviteConfig struct {
	Code string `mapstructure:"code"`
}
