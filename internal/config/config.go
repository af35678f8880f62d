package config

import (
	"errors"
	"fmt"
	"time"

	haas "github.com/iwtcode/haasAdapter"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort         string
	GinMode            string
	CollectionInterval time.Duration
	KafkaBroker        string
	KafkaTopic         string
	Haas               *haas.Config
	Logging            LoggerConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// LoadConfiguration загружает конфигурацию из .env файла, файла haas.yaml и переменных окружения.
// Переменные окружения имеют приоритет над файлом.
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("haas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "8083")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("collection_interval_ms", 5000)
	v.SetDefault("kafka_broker", "")
	v.SetDefault("kafka_topic", "haas_data")

	v.SetDefault("haas_serial_port", "/dev/ttyUSB0")
	v.SetDefault("haas_baud_rate", 9600)
	v.SetDefault("haas_timeout_ms", 2000)
	v.SetDefault("haas_write_timeout_ms", 500)
	v.SetDefault("haas_data_bits", 7)
	v.SetDefault("haas_settle_ms", 1000)
	v.SetDefault("log_level", "info")

	v.SetDefault("logger_enable", true)
	v.SetDefault("logger_logs_dir", "./logs")
	v.SetDefault("logger_log_level", "DEBUG")
	v.SetDefault("logger_saving_days", 7)
}

func fromViper(v *viper.Viper) *AppConfig {
	interval := v.GetInt("collection_interval_ms")
	if interval < 0 {
		interval = 0
	}

	return &AppConfig{
		ServerPort:         v.GetString("app_port"),
		GinMode:            v.GetString("gin_mode"),
		CollectionInterval: time.Duration(interval) * time.Millisecond,
		KafkaBroker:        v.GetString("kafka_broker"),
		KafkaTopic:         v.GetString("kafka_topic"),
		Haas: &haas.Config{
			SerialPort:     v.GetString("haas_serial_port"),
			BaudRate:       v.GetInt("haas_baud_rate"),
			TimeoutMs:      v.GetInt("haas_timeout_ms"),
			WriteTimeoutMs: v.GetInt("haas_write_timeout_ms"),
			DataBits:       v.GetInt("haas_data_bits"),
			SettleMs:       v.GetInt("haas_settle_ms"),
			LogLevel:       v.GetString("log_level"),
		},
		Logging: LoggerConfig{
			Enable:     v.GetBool("logger_enable"),
			LogsDir:    v.GetString("logger_logs_dir"),
			Level:      v.GetString("logger_log_level"),
			SavingDays: v.GetInt("logger_saving_days"),
		},
	}
}
