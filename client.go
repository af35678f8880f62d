package haas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/iwtcode/haasAdapter/mdc"
	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/iwtcode/haasAdapter/transport"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для взаимодействия с библиотекой.
// Все операции выполняются по очереди: в каждый момент с портом работает одна команда.
type Client struct {
	mu      sync.Mutex
	conn    mdc.Conn
	adapter *mdc.MdcAdapter
	config  *Config
	logger  logrus.FieldLogger
}

// Option настраивает Client.
type Option func(*Client)

// WithTransport подменяет последовательный порт, например на эмулятор станка.
func WithTransport(conn mdc.Conn) Option {
	return func(c *Client) { c.conn = conn }
}

// WithLogger задает логгер вместо создаваемого по LogLevel.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// New создает и возвращает новый экземпляр клиента.
// Порт не открывается заранее: каждая команда сама открывает и закрывает соединение.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = newLogger(cfg.LogLevel)
	}

	if c.conn == nil {
		if cfg.SerialPort == "" {
			return nil, fmt.Errorf("%w: serial port is not configured", apperrors.ErrConnection)
		}
		c.conn = transport.NewSerialTransport(cfg.transportConfig())
	}

	protocol := mdc.NewProtocol(c.conn, cfg.settleDelay(), c.logger)
	c.adapter = mdc.NewMdcAdapter(protocol, c.logger.WithField("port", cfg.SerialPort))

	return c, nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()

	if level == "off" || level == "none" {
		logger.SetOutput(io.Discard)
	} else {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logger.SetLevel(lvl)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}

// Close закрывает соединение со станком.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		c.logger.WithError(err).Warn("failed to close serial port")
	}
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() logrus.FieldLogger {
	return c.logger
}

// GetConfig возвращает конфигурацию клиента.
func (c *Client) GetConfig() Config {
	return *c.config
}

// GetStatus возвращает доступность станка (Q100).
func (c *Client) GetStatus() (models.MachineStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadStatus()
}

// GetMode возвращает режим работы (Q104).
func (c *Client) GetMode() (models.Value[models.Mode], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadMode()
}

// GetProgramStatus возвращает состояние или имя текущей программы (Q500).
func (c *Client) GetProgramStatus() (models.Value[models.ProgramStatus], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadProgramStatus()
}

// GetToolChanges возвращает общее число смен инструмента (Q200).
func (c *Client) GetToolChanges() (models.Value[int], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadToolChanges()
}

// GetCurrentTool возвращает номер инструмента в шпинделе (Q201).
func (c *Client) GetCurrentTool() (models.Value[int], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadCurrentTool()
}

// GetPowerOnTime возвращает время во включенном состоянии (Q300).
func (c *Client) GetPowerOnTime() (models.Value[string], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadPowerOnTime()
}

// GetMotionTime возвращает время движения (Q301).
func (c *Client) GetMotionTime() (models.Value[string], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadMotionTime()
}

// GetLastCycleTime возвращает время последнего цикла (Q303).
func (c *Client) GetLastCycleTime() (models.Value[string], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadLastCycleTime()
}

// GetPreviousCycleTime возвращает время предыдущего цикла (Q304).
func (c *Client) GetPreviousCycleTime() (models.Value[string], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadPreviousCycleTime()
}

// GetPartCount возвращает сумму счетчиков деталей (Q402 + Q403).
func (c *Client) GetPartCount() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadPartCount()
}

// GetSpindleSpeed возвращает скорость шпинделя (макропеременная 3027).
func (c *Client) GetSpindleSpeed() (models.Value[float64], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadSpindleSpeed()
}

// GetAxisPositions возвращает позиции осей X, Y, Z (макропеременные 5041-5043).
func (c *Client) GetAxisPositions() (models.AxisPositions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadAxisPositions()
}

// GetVariable читает произвольную макропеременную (Q600).
func (c *Client) GetVariable(variable int) (models.Value[string], error) {
	if variable <= 0 {
		return models.Value[string]{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidVariable, variable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.ReadVariable(variable)
}

// GetSnapshot возвращает полный снимок состояния станка.
// При ошибке возвращается models.EmptySnapshot() и ошибка ErrAssembly.
func (c *Client) GetSnapshot() (models.MachineSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.AggregateAllData()
}

// GetSnapshotJSON возвращает снимок в виде JSON-документа.
// Документ формируется всегда, даже если сбор завершился ошибкой.
func (c *Client) GetSnapshotJSON() ([]byte, error) {
	snapshot, err := c.GetSnapshot()
	data, merr := json.MarshalIndent(snapshot, "", "  ")
	if merr != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", merr)
	}
	return data, err
}

// StartPolling периодически собирает снимки, пока не отменен ctx.
func (c *Client) StartPolling(ctx context.Context, interval time.Duration) <-chan mdc.PollingResult {
	return mdc.Poll(ctx, interval, c.GetSnapshot)
}
