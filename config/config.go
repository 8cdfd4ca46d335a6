package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Log          Log
	Database     Database
	Payment      Payment
	Redis        Redis
	RabbitMQ     RabbitMQ
	Minio        Minio
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Log struct {
	Level  string
	Pretty bool
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Payment selects the processor used for payment intents.
// Provider is "stripe" (default) or "midtrans".
type Payment struct {
	Provider           string
	Currency           string
	StripeSecretKey    string
	MidtransServerKey  string
	MidtransProduction bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQ struct {
	URI string
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("PAYMENT_PROVIDER", "stripe")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("MINIO_BUCKET", "course-documents")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Payment.Provider = viper.GetString("PAYMENT_PROVIDER")
	config.Payment.Currency = viper.GetString("PAYMENT_CURRENCY")
	config.Payment.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	config.Payment.MidtransServerKey = viper.GetString("MIDTRANS_SERVER_KEY")
	config.Payment.MidtransProduction = viper.GetBool("MIDTRANS_PRODUCTION")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.RabbitMQ.URI = viper.GetString("RABBITMQ_URI")

	config.Minio.Endpoint = viper.GetString("MINIO_ENDPOINT")
	config.Minio.AccessKey = viper.GetString("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = viper.GetString("MINIO_SECRET_KEY")
	config.Minio.Bucket = viper.GetString("MINIO_BUCKET")
	config.Minio.Region = viper.GetString("MINIO_REGION")
	config.Minio.UseSSL = viper.GetBool("MINIO_USE_SSL")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Str("payment_provider", config.Payment.Provider).
		Bool("redis_enabled", config.Redis.Addr != "").
		Bool("rabbitmq_enabled", config.RabbitMQ.URI != "").
		Bool("minio_enabled", config.Minio.Endpoint != "").
		Bool("gemini_enabled", config.GeminiApiKey != "").
		Msg("Config loaded")
	return &config, nil
}

// DSN builds the postgres connection string for gorm.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode +
		" TimeZone=UTC"
}
