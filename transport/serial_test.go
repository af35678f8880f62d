package transport

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// fakePort отдает заранее заданные куски ответа, затем пустые чтения.
type fakePort struct {
	mu          sync.Mutex
	chunks      [][]byte
	written     []byte
	readErr     error
	writeBlock  chan struct{}
	writeDone   chan struct{}
	closeCalls  int
	resets      int
	readTimeout time.Duration
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.chunks) == 0 {
		return 0, nil
	}
	n := copy(b, p.chunks[0])
	p.chunks = p.chunks[1:]
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	block := p.writeBlock
	p.mu.Unlock()
	if block != nil {
		<-block
		if p.writeDone != nil {
			close(p.writeDone)
		}
		return 0, io.ErrClosedPipe
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, b...)
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCalls++
	if p.writeBlock != nil {
		close(p.writeBlock)
		p.writeBlock = nil
	}
	return nil
}

// ResetOutputBuffer сбрасывает буфер и отпускает зависшую запись, как tcflush.
func (p *fakePort) ResetOutputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets++
	if p.writeBlock != nil {
		close(p.writeBlock)
		p.writeBlock = nil
	}
	return nil
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.readTimeout = t
	return nil
}

func newTestTransport(port *fakePort, openErr error) (*SerialTransport, *serial.Mode) {
	var gotMode serial.Mode
	tr := NewSerialTransport(Config{
		PortName:     "/dev/ttyUSB0",
		Timeout:      30 * time.Millisecond,
		WriteTimeout: 20 * time.Millisecond,
	}, WithOpener(func(name string, mode *serial.Mode) (Port, error) {
		gotMode = *mode
		if openErr != nil {
			return nil, openErr
		}
		return port, nil
	}))
	return tr, &gotMode
}

func TestOpenUsesSerialSettings(t *testing.T) {
	port := &fakePort{}
	tr, mode := newTestTransport(port, nil)

	require.NoError(t, tr.Open())
	assert.True(t, tr.IsOpen())
	assert.Equal(t, DefaultBaudRate, mode.BaudRate)
	assert.Equal(t, DefaultDataBits, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, pollInterval, port.readTimeout)

	// Повторное открытие ничего не делает
	require.NoError(t, tr.Open())
}

func TestOpenFailureIsConnectionError(t *testing.T) {
	tr, _ := newTestTransport(nil, errors.New("no such device"))

	err := tr.Open()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConnection)
	assert.False(t, tr.IsOpen())
}

func TestCloseIsIdempotent(t *testing.T) {
	port := &fakePort{}
	tr, _ := newTestTransport(port, nil)

	require.NoError(t, tr.Close(), "закрытие неоткрытого порта")
	require.NoError(t, tr.Open())
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
	assert.Equal(t, 1, port.closeCalls)
	assert.False(t, tr.IsOpen())
}

func TestWriteRequiresOpenPort(t *testing.T) {
	tr, _ := newTestTransport(&fakePort{}, nil)

	err := tr.Write([]byte("Q100\r\n"))
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestWriteSendsBytes(t *testing.T) {
	port := &fakePort{}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	require.NoError(t, tr.Write([]byte("Q100\r\n")))
	assert.Equal(t, "Q100\r\n", string(port.written))
}

func TestWriteTimeout(t *testing.T) {
	port := &fakePort{writeBlock: make(chan struct{})}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	err := tr.Write([]byte("Q100\r\n"))
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	require.NoError(t, tr.Close())
}

func TestWriteTimeoutReleasesWriter(t *testing.T) {
	port := &fakePort{writeBlock: make(chan struct{}), writeDone: make(chan struct{})}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	err := tr.Write([]byte("Q100\r\n"))
	require.ErrorIs(t, err, apperrors.ErrTimeout)

	// порт еще открыт: запись отпускает сброс буфера, а не Close
	select {
	case <-port.writeDone:
	case <-time.After(time.Second):
		t.Fatal("writer goroutine still blocked after timeout")
	}
	port.mu.Lock()
	assert.Equal(t, 1, port.resets)
	assert.Zero(t, port.closeCalls)
	port.mu.Unlock()
	assert.True(t, tr.IsOpen())
}

func TestReadAvailableCollectsChunks(t *testing.T) {
	port := &fakePort{chunks: [][]byte{[]byte("MACRO, 50"), []byte("41, 12.500\r\n")}}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	data, err := tr.ReadAvailable()
	require.NoError(t, err)
	assert.Equal(t, "MACRO, 5041, 12.500\r\n", string(data))
}

func TestReadAvailableTimeout(t *testing.T) {
	port := &fakePort{}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	data, err := tr.ReadAvailable()
	assert.Nil(t, data)
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestReadAvailableTransportError(t *testing.T) {
	port := &fakePort{readErr: errors.New("device disconnected")}
	tr, _ := newTestTransport(port, nil)
	require.NoError(t, tr.Open())

	_, err := tr.ReadAvailable()
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.NotErrorIs(t, err, apperrors.ErrTimeout)
}
