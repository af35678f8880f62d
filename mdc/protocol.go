package mdc

import (
	"errors"
	"io"
	"strings"
	"time"

	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	lineTerminator = "\r\n"

	// DefaultSettleDelay - пауза между отправкой команды и чтением ответа.
	// Станок не сообщает о конце ответа, поэтому ждем фиксированное время.
	DefaultSettleDelay = time.Second
)

// Conn - соединение со стойкой, которым пользуется протокол.
// transport.SerialTransport удовлетворяет этому интерфейсу.
type Conn interface {
	Open() error
	Close() error
	Write(p []byte) error
	ReadAvailable() ([]byte, error)
}

// Commander выполняет Q-команду и возвращает токены ответа.
type Commander interface {
	Execute(command string) ([]string, error)
}

// Protocol реализует цикл "открыть - отправить - подождать - прочитать - закрыть"
// для одной команды.
type Protocol struct {
	conn   Conn
	settle time.Duration
	sleep  func(time.Duration)
	logger logrus.FieldLogger
}

var _ Commander = (*Protocol)(nil)

// NewProtocol создает протокол поверх соединения. settle < 0 заменяется значением по умолчанию.
func NewProtocol(conn Conn, settle time.Duration, logger logrus.FieldLogger) *Protocol {
	if settle < 0 {
		settle = DefaultSettleDelay
	}
	return &Protocol{
		conn:   conn,
		settle: settle,
		sleep:  time.Sleep,
		logger: loggerOrDiscard(logger),
	}
}

// Execute отправляет команду и разбирает ответ на токены.
// Таймаут не считается ошибкой: возвращается пустой список токенов.
// Соединение закрывается при любом исходе.
func (p *Protocol) Execute(command string) (tokens []string, err error) {
	log := p.logger.WithField("command", command)

	if err := p.conn.Open(); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := p.conn.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close serial port")
		}
	}()

	if err := p.conn.Write([]byte(command + lineTerminator)); err != nil {
		if errors.Is(err, apperrors.ErrTimeout) {
			log.WithError(err).Warn("write timed out, treating as no response")
			return []string{}, nil
		}
		return nil, err
	}

	p.sleep(p.settle)

	raw, err := p.conn.ReadAvailable()
	if err != nil {
		if errors.Is(err, apperrors.ErrTimeout) {
			log.Debug("no response")
			return []string{}, nil
		}
		return nil, err
	}

	tokens = Tokenize(decodeASCII(raw))
	log.WithField("tokens", tokens).Debug("response received")
	return tokens, nil
}

// Tokenize заменяет запятые пробелами и делит строку по пробельным символам.
// Пустые токены отбрасываются, порядок сохраняется.
func Tokenize(response string) []string {
	return strings.Fields(strings.ReplaceAll(response, ",", " "))
}

// decodeASCII превращает ответ в текст, выбрасывая байты вне печатного ASCII
// (в том числе STX/ETB, которыми стойка обрамляет ответ).
func decodeASCII(raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		switch {
		case b == '\t', b == '\n', b == '\r':
			sb.WriteByte(b)
		case b >= 0x20 && b < 0x7f:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

func loggerOrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
