package feed

import (
	"context"
	"time"

	"nhooyr.io/websocket"
)

// DefaultURL is where the transcription agent publishes the display feed.
const DefaultURL = "ws://localhost:8765"

const dialTimeout = 10 * time.Second

type wsTransport struct {
	conn *websocket.Conn
}

// DialWebSocket returns a DialFunc opening a WebSocket to url. Frames
// are UTF-8 text; the display sends nothing back.
func DialWebSocket(url string) DialFunc {
	return func(ctx context.Context) (Transport, error) {
		dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()
		conn, _, err := websocket.Dial(dialCtx, url, nil)
		if err != nil {
			return nil, err
		}
		return &wsTransport{conn: conn}, nil
	}
}

func (t *wsTransport) Recv(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	return data, err
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "")
}
