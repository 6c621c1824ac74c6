package market

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gridmarket/go-compute-market/models"
)

const (
	PingMsg = "ping"
)

var upgrade = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WsClient struct {
	client  *websocket.Conn
	message chan wsMessage
	stopCh  chan struct{}
}

type wsMessage struct {
	data    []byte
	msgType int
}

func NewWsClient(client *websocket.Conn) *WsClient {
	wsClient := &WsClient{
		client:  client,
		message: make(chan wsMessage, 5),
		stopCh:  make(chan struct{}),
	}

	client.SetCloseHandler(func(code int, text string) error {
		log.Println(code, "user client send close event")
		wsClient.Close()
		return nil
	})

	return wsClient
}

func (ws *WsClient) Close() {
	defer func() {
		if ws.client != nil {
			ws.client.Close()
		}
	}()

	select {
	case <-ws.stopCh:
	default:
		close(ws.stopCh)
	}
}

func (ws *WsClient) Done() <-chan struct{} {
	return ws.stopCh
}

// HandleTaskEvents pushes task status changes from the hub to the client,
// interleaved with keepalive pings, until either side closes.
func (ws *WsClient) HandleTaskEvents(events chan models.TaskEvent) {
	ws.readMessage()
	ws.writeMessage()

	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ws.message <- wsMessage{
					data:    []byte(PingMsg),
					msgType: websocket.TextMessage,
				}
			case event, ok := <-events:
				if !ok {
					ws.Close()
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				ws.message <- wsMessage{
					data:    payload,
					msgType: websocket.TextMessage,
				}
			case <-ws.stopCh:
				return
			}
		}
	}()
}

func (ws *WsClient) readMessage() {
	go func() {
		for {
			select {
			case <-ws.stopCh:
				return
			default:
				if _, _, err := ws.client.ReadMessage(); err != nil {
					ws.Close()
					return
				}
			}
		}
	}()
}

func (ws *WsClient) writeMessage() {
	go func() {
		for {
			select {
			case msg := <-ws.message:
				if err := ws.client.WriteMessage(msg.msgType, msg.data); err != nil {
					ws.Close()
					return
				}
			case <-ws.stopCh:
				return
			}
		}
	}()
}
