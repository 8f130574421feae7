package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	MQ      MQConfig
	Mpesa   MpesaConfig
	Sweeper SweeperConfig
}

type AppConfig struct {
	Port           string
	Env            string
	AdminSecretKey string
	OpTimeout      time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type MQConfig struct {
	URL      string
	Exchange string
}

type MpesaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

type SweeperConfig struct {
	Interval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	opTimeout, err := time.ParseDuration(viper.GetString("APP_OP_TIMEOUT"))
	if err != nil {
		opTimeout = 5 * time.Second
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			AdminSecretKey: viper.GetString("APP_ADMIN_SECRET_KEY"),
			OpTimeout:      opTimeout,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		MQ: MQConfig{
			URL:      viper.GetString("MQ_URL"),
			Exchange: viper.GetString("MQ_EXCHANGE"),
		},
		Mpesa: MpesaConfig{
			BaseURL:        viper.GetString("MPESA_BASE_URL"),
			ConsumerKey:    viper.GetString("MPESA_CONSUMER_KEY"),
			ConsumerSecret: viper.GetString("MPESA_CONSUMER_SECRET"),
			ShortCode:      viper.GetString("MPESA_SHORT_CODE"),
			Passkey:        viper.GetString("MPESA_PASSKEY"),
			CallbackURL:    viper.GetString("MPESA_CALLBACK_URL"),
		},
		Sweeper: SweeperConfig{
			Interval: sweepInterval,
		},
	}

	return config, nil
}
