package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"storefront-api/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamBuffer = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// StreamFrame is one snapshot pushed to a live stream client
type StreamFrame struct {
	Store    string `json:"store"`
	Snapshot any    `json:"snapshot"`
}

// streamClient buffers frames for one websocket. A client that falls a
// full buffer behind is disconnected so store mutations never block on it.
type streamClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (sc *streamClient) close() {
	sc.once.Do(func() { close(sc.done) })
}

func (sc *streamClient) push(name string, snapshot any) {
	data, err := json.Marshal(StreamFrame{Store: name, Snapshot: snapshot})
	if err != nil {
		return
	}
	select {
	case <-sc.done:
	case sc.send <- data:
	default:
		sc.close()
	}
}

func (sc *streamClient) readPump() {
	defer sc.close()
	sc.conn.SetReadLimit(512)
	sc.conn.SetReadDeadline(time.Now().Add(pongWait))
	sc.conn.SetPongHandler(func(string) error {
		return sc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sc.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (sc *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-sc.done:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			sc.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-sc.send:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sc.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				sc.close()
				return
			}
		case <-ticker.C:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sc.close()
				return
			}
		}
	}
}

// Stream upgrades to a websocket and pushes the caller's cart, orders and
// address snapshots: the current ones first, then one per committed change.
func (h *Handler) Stream(c *gin.Context) {
	s := h.session(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger().Warn("stream upgrade failed", "user_id", s.UserID, "error", err)
		return
	}
	defer conn.Close()

	client := &streamClient{
		conn: conn,
		send: make(chan []byte, streamBuffer),
		done: make(chan struct{}),
	}
	stops := []func(){
		s.Cart.Watch(func(_, next store.CartState) { client.push("cart", next) }),
		s.Orders.Watch(func(_, next store.OrdersState) { client.push("orders", next) }),
		s.Addresses.Watch(func(_, next store.AddressState) { client.push("addresses", next) }),
	}
	defer func() {
		for _, stop := range stops {
			stop()
		}
	}()

	if h.Metrics != nil {
		h.Metrics.StreamConnected()
		defer h.Metrics.StreamClosed()
	}
	h.logger().Debug("stream connected", "user_id", s.UserID)

	go client.readPump()
	client.writePump()
}
