package transport

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"go.bug.st/serial"
)

const (
	DefaultBaudRate     = 9600
	DefaultDataBits     = 7
	DefaultTimeout      = 2 * time.Second
	DefaultWriteTimeout = 500 * time.Millisecond

	// pollInterval - сколько ждать следующего байта, прежде чем считать линию затихшей.
	pollInterval = 50 * time.Millisecond
	readChunk    = 256
)

// Port - то, что транспорту нужно от открытого последовательного порта.
// serial.Port из go.bug.st/serial ему удовлетворяет.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetOutputBuffer() error
}

// Opener открывает порт с заданными параметрами.
type Opener func(name string, mode *serial.Mode) (Port, error)

func openSerial(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}

// Config хранит параметры последовательного соединения.
type Config struct {
	PortName     string
	BaudRate     int
	DataBits     int
	Timeout      time.Duration
	WriteTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaudRate <= 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.DataBits <= 0 {
		c.DataBits = DefaultDataBits
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	return c
}

// Option настраивает SerialTransport.
type Option func(*SerialTransport)

// WithOpener подменяет функцию открытия порта.
func WithOpener(open Opener) Option {
	return func(t *SerialTransport) { t.open = open }
}

// SerialTransport владеет одним соединением со стойкой ЧПУ.
// Не предназначен для одновременного использования из нескольких горутин.
type SerialTransport struct {
	cfg  Config
	open Opener

	mu   sync.Mutex
	port Port
}

// NewSerialTransport создает транспорт. Порт не открывается до первого Open.
func NewSerialTransport(cfg Config, opts ...Option) *SerialTransport {
	t := &SerialTransport{
		cfg:  cfg.withDefaults(),
		open: openSerial,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config возвращает действующие параметры соединения.
func (t *SerialTransport) Config() Config {
	return t.cfg
}

// IsOpen сообщает, открыт ли порт.
func (t *SerialTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Open открывает порт. Повторный вызов на открытом порту ничего не делает.
func (t *SerialTransport) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port != nil {
		return nil
	}

	mode := &serial.Mode{
		BaudRate: t.cfg.BaudRate,
		DataBits: t.cfg.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := t.open(t.cfg.PortName, mode)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", apperrors.ErrConnection, t.cfg.PortName, err)
	}
	if err := port.SetReadTimeout(pollInterval); err != nil {
		_ = port.Close()
		return fmt.Errorf("%w: set read timeout on %s: %w", apperrors.ErrConnection, t.cfg.PortName, err)
	}

	t.port = port
	return nil
}

// Close закрывает порт. Безопасно вызывать на уже закрытом порту.
func (t *SerialTransport) Close() error {
	t.mu.Lock()
	port := t.port
	t.port = nil
	t.mu.Unlock()

	if port == nil {
		return nil
	}
	if err := port.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", apperrors.ErrTransport, t.cfg.PortName, err)
	}
	return nil
}

func (t *SerialTransport) current() (Port, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil, fmt.Errorf("%w: port %s is not open", apperrors.ErrTransport, t.cfg.PortName)
	}
	return t.port, nil
}

// Write отправляет данные целиком, не дольше WriteTimeout.
// По таймауту выходной буфер порта сбрасывается, чтобы драйвер вернул управление
// из зависшей записи. Если драйвер все равно блокирует запись, горутина записи
// живет до возврата из port.Write; закрытие tty этого не гарантирует.
func (t *SerialTransport) Write(p []byte) error {
	port, err := t.current()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, werr := port.Write(p)
		done <- werr
	}()

	timer := time.NewTimer(t.cfg.WriteTimeout)
	defer timer.Stop()

	select {
	case werr := <-done:
		if werr != nil {
			return fmt.Errorf("%w: write %s: %w", apperrors.ErrTransport, t.cfg.PortName, werr)
		}
		return nil
	case <-timer.C:
		if rerr := port.ResetOutputBuffer(); rerr != nil {
			return fmt.Errorf("%w: write to %s exceeded %s, output flush failed: %w",
				apperrors.ErrTimeout, t.cfg.PortName, t.cfg.WriteTimeout, rerr)
		}
		return fmt.Errorf("%w: write to %s exceeded %s", apperrors.ErrTimeout, t.cfg.PortName, t.cfg.WriteTimeout)
	}
}

// ReadAvailable читает все байты, которые есть на линии, пока она не затихнет.
// Чтение ограничено Timeout. Если не пришло ни одного байта, возвращается ErrTimeout.
func (t *SerialTransport) ReadAvailable() ([]byte, error) {
	port, err := t.current()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	deadline := time.Now().Add(t.cfg.Timeout)

	for time.Now().Before(deadline) {
		n, rerr := port.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: read %s: %w", apperrors.ErrTransport, t.cfg.PortName, rerr)
		}
		// Пустое чтение после данных - станок закончил отвечать.
		if n == 0 && buf.Len() > 0 {
			break
		}
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: no data from %s within %s", apperrors.ErrTimeout, t.cfg.PortName, t.cfg.Timeout)
	}
	return buf.Bytes(), nil
}
