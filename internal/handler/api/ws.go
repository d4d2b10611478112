package api

import (
	"net/http"
	"time"

	xlogger "StockCast/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	wsWriteWait    = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

// PerformanceWS streams each new performance record to the client as JSON.
func (h *ForecastHandler) PerformanceWS(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ch, cancel := h.perf.Subscribe()
	defer cancel()

	// Reader loop only detects client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case rec := <-ch:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteJSON(rec); err != nil {
				h.logger.Debug("performance ws write failed", xlogger.Error(err))
				return nil
			}
		case <-ping.C:
			deadline := time.Now().Add(wsWriteWait)
			if err := ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
