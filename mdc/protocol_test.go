package mdc

import (
	"fmt"
	"testing"
	"time"

	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	openErr  error
	writeErr error
	readErr  error
	response []byte

	opens   int
	closes  int
	written []string
}

func (c *fakeConn) Open() error {
	c.opens++
	return c.openErr
}

func (c *fakeConn) Close() error {
	c.closes++
	return nil
}

func (c *fakeConn) Write(p []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, string(p))
	return nil
}

func (c *fakeConn) ReadAvailable() ([]byte, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.response, nil
}

func newTestProtocol(conn Conn) (*Protocol, *[]time.Duration) {
	p := NewProtocol(conn, 250*time.Millisecond, nil)
	var slept []time.Duration
	p.sleep = func(d time.Duration) { slept = append(slept, d) }
	return p, &slept
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"PROGRAM, MDI, IDLE, PARTS, 5", []string{"PROGRAM", "MDI", "IDLE", "PARTS", "5"}},
		{"  A,,B  \r\n", []string{"A", "B"}},
		{"USING TOOL,\t7", []string{"USING", "TOOL", "7"}},
		{"", []string{}},
		{" , , ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestExecuteSendsCommandAndParsesReply(t *testing.T) {
	conn := &fakeConn{response: []byte("\x02MACRO, 5041, 12.500\r\n\x17>")}
	p, slept := newTestProtocol(conn)

	tokens, err := p.Execute("Q600 5041")
	require.NoError(t, err)

	assert.Equal(t, []string{"MACRO", "5041", "12.500", ">"}, tokens)
	assert.Equal(t, []string{"Q600 5041\r\n"}, conn.written)
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, *slept)
	assert.Equal(t, 1, conn.opens)
	assert.Equal(t, 1, conn.closes)
}

func TestExecuteDropsNonASCII(t *testing.T) {
	conn := &fakeConn{response: []byte{'U', 'S', 0xff, 'I', 'N', 'G', ' ', 0x80, '7'}}
	p, _ := newTestProtocol(conn)

	tokens, err := p.Execute("Q201")
	require.NoError(t, err)
	assert.Equal(t, []string{"USING", "7"}, tokens)
}

func TestExecuteReadTimeoutIsEmptyResponse(t *testing.T) {
	conn := &fakeConn{readErr: fmt.Errorf("read: %w", apperrors.ErrTimeout)}
	p, _ := newTestProtocol(conn)

	tokens, err := p.Execute("Q100")
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.NotNil(t, tokens)
	assert.Equal(t, 1, conn.closes)
}

func TestExecuteWriteTimeoutIsEmptyResponse(t *testing.T) {
	conn := &fakeConn{writeErr: fmt.Errorf("write: %w", apperrors.ErrTimeout)}
	p, slept := newTestProtocol(conn)

	tokens, err := p.Execute("Q100")
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Empty(t, *slept)
	assert.Equal(t, 1, conn.closes)
}

func TestExecuteTransportErrorClosesConnection(t *testing.T) {
	conn := &fakeConn{readErr: fmt.Errorf("read: %w", apperrors.ErrTransport)}
	p, _ := newTestProtocol(conn)

	tokens, err := p.Execute("Q100")
	require.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Nil(t, tokens)
	assert.Equal(t, 1, conn.closes)
}

func TestExecuteOpenFailurePropagates(t *testing.T) {
	conn := &fakeConn{openErr: fmt.Errorf("open: %w", apperrors.ErrConnection)}
	p, _ := newTestProtocol(conn)

	_, err := p.Execute("Q100")
	require.ErrorIs(t, err, apperrors.ErrConnection)
	assert.Empty(t, conn.written)
	assert.Zero(t, conn.closes)
}

func TestNewProtocolDefaultSettle(t *testing.T) {
	p := NewProtocol(&fakeConn{}, -1, nil)
	assert.Equal(t, DefaultSettleDelay, p.settle)
}
