package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	App struct {
		Port      string `mapstructure:"port"`
		Env       string `mapstructure:"env"`
		PublicURL string `mapstructure:"public_url"`
		SiteTitle string `mapstructure:"site_title"`
	} `mapstructure:"app"`
	Store struct {
		Driver  string        `mapstructure:"driver"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"store"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		AdminSecret   string        `mapstructure:"admin_secret"`
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
		SecureCookie  bool          `mapstructure:"secure_cookie"`
	} `mapstructure:"auth"`
	Media struct {
		MaxImageBytes int64 `mapstructure:"max_image_bytes"`
	} `mapstructure:"media"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Backup struct {
		S3Bucket string `mapstructure:"s3_bucket"`
		S3Prefix string `mapstructure:"s3_prefix"`
		S3Region string `mapstructure:"s3_region"`
		// S3Endpoint targets an S3 compatible store instead of AWS.
		S3Endpoint  string `mapstructure:"s3_endpoint"`
		AccessKeyID string `mapstructure:"access_key_id"`
		SecretKey   string `mapstructure:"secret_access_key"`
		Dir         string `mapstructure:"dir"`
	} `mapstructure:"backup"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.public_url", "http://localhost:3000")
	v.SetDefault("app.site_title", "Portfolio Timeline")
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.timeout", 5*time.Second)
	v.SetDefault("mongo.database", "portfolio")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("auth.token_lifespan", 0)
	v.SetDefault("media.max_image_bytes", 1<<20)
	v.SetDefault("backup.s3_prefix", "backups")
	v.SetDefault("backup.s3_region", "us-east-1")
	v.SetDefault("backup.dir", "backups")
}

// LoadConfig reads .env and config.yaml from path (both optional) and lets
// environment variables override every key.
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = "."
	}

	err = godotenv.Load(path + "/.env")
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.public_url", "APP_PUBLIC_URL")
	v.BindEnv("app.site_title", "APP_SITE_TITLE")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.timeout", "STORE_TIMEOUT")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.ttl", "REDIS_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.admin_secret", "ADMIN_SECRET")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.secure_cookie", "SECURE_COOKIE")
	v.BindEnv("media.max_image_bytes", "MEDIA_MAX_IMAGE_BYTES")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("backup.s3_bucket", "BACKUP_S3_BUCKET")
	v.BindEnv("backup.s3_prefix", "BACKUP_S3_PREFIX")
	v.BindEnv("backup.s3_region", "BACKUP_S3_REGION")
	v.BindEnv("backup.s3_endpoint", "BACKUP_S3_ENDPOINT")
	v.BindEnv("backup.access_key_id", "BACKUP_ACCESS_KEY_ID")
	v.BindEnv("backup.secret_access_key", "BACKUP_SECRET_ACCESS_KEY")
	v.BindEnv("backup.dir", "BACKUP_DIR")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}
	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)
	return
}

// KAFKA_BROKERS arrives as one comma separated string.
func splitBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}
