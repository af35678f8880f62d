package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12
	defaultInterval = 5 * time.Second
	maxInterval     = time.Minute
)

// streamMessage - сообщение, отправляемое клиенту по WebSocket.
type streamMessage struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamMachineData отправляет снимки состояния станка по WebSocket.
// @Summary Поток снимков
// @Description Открывает WebSocket и отправляет снимок сразу и затем с интервалом ?interval=5s или ?interval_ms=5000 (не больше минуты).
// @Tags Machine
// @Param interval query string false "Интервал, например 10s"
// @Param interval_ms query int false "Интервал в миллисекундах"
// @Router /machine/stream [get]
func (h *Handler) StreamMachineData(c *gin.Context) {
	interval := parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.drainReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	h.logger.Info("Stream opened", "interval", interval, "client_ip", c.ClientIP())
	if err := h.sendSnapshot(conn); err != nil {
		h.logger.Info("Stream write failed", "error", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Info("Stream ping failed", "error", err)
				return
			}
		case <-ticker.C:
			if err := h.sendSnapshot(conn); err != nil {
				h.logger.Info("Stream write failed", "error", err)
				return
			}
		}
	}
}

// parseInterval читает ?interval=10s или ?interval_ms=10000 с ограничением сверху.
func parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && time.Duration(v)*time.Millisecond <= maxInterval {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// drainReader читает входящие сообщения, чтобы обрабатывать control-кадры и заметить закрытие.
func (h *Handler) drainReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Debug("Stream reader closed", "error", err)
			return
		}
	}
}

// sendSnapshot собирает снимок и отправляет его. Ошибка сбора не закрывает поток:
// клиент получает снимок-заглушку с текстом ошибки.
func (h *Handler) sendSnapshot(conn *websocket.Conn) error {
	snapshot, err := h.usecase.GetMachineData()
	msg := streamMessage{Type: "snapshot", Data: snapshot}
	if err != nil {
		h.logger.Warn("Snapshot for stream collected with errors", "error", err)
		msg.Type = "error"
		msg.Error = err.Error()
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
