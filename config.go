package haas

import (
	"os"
	"strconv"
	"time"

	"github.com/iwtcode/haasAdapter/transport"
)

const defaultSerialPort = "/dev/ttyUSB0"

// Config хранит модель конфигурации клиента
type Config struct {
	SerialPort     string
	BaudRate       int
	TimeoutMs      int
	WriteTimeoutMs int
	DataBits       int
	SettleMs       int
	LogLevel       string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	serialPort := os.Getenv("HAAS_SERIAL_PORT")
	if serialPort == "" {
		serialPort = defaultSerialPort
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		SerialPort:     serialPort,
		BaudRate:       envPositiveInt("HAAS_BAUD_RATE", transport.DefaultBaudRate),
		TimeoutMs:      envPositiveInt("HAAS_TIMEOUT_MS", int(transport.DefaultTimeout/time.Millisecond)),
		WriteTimeoutMs: envPositiveInt("HAAS_WRITE_TIMEOUT_MS", int(transport.DefaultWriteTimeout/time.Millisecond)),
		DataBits:       envPositiveInt("HAAS_DATA_BITS", transport.DefaultDataBits),
		SettleMs:       envNonNegativeInt("HAAS_SETTLE_MS", 1000),
		LogLevel:       logLevel,
	}
}

// transportConfig переводит настройки клиента в параметры последовательного порта.
func (c *Config) transportConfig() transport.Config {
	return transport.Config{
		PortName:     c.SerialPort,
		BaudRate:     c.BaudRate,
		DataBits:     c.DataBits,
		Timeout:      time.Duration(c.TimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(c.WriteTimeoutMs) * time.Millisecond,
	}
}

func (c *Config) settleDelay() time.Duration {
	if c.SettleMs < 0 {
		return -1
	}
	return time.Duration(c.SettleMs) * time.Millisecond
}

func envPositiveInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envNonNegativeInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
