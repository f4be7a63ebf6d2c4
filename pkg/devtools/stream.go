package devtools

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/statekit-dev/statekit/pkg/statekit"
)

// eventBuffer is how many change notifications may queue per connection
// before further ones are dropped. A dropped notification only costs an
// intermediate value; the client always sees the latest on the next event.
const eventBuffer = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// watchRequest is the first message a client sends: the keys to watch.
type watchRequest struct {
	Keys []string `json:"keys"`
}

// changeEvent is pushed to the client on every write to a watched key.
// Value is read from the store at send time, so coalesced notifications
// still carry the current value.
type changeEvent struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Stream returns a WebSocket endpoint that pushes a changeEvent for each
// write to the keys named in the client's initial watchRequest. The watch
// is removed when the client disconnects.
func Stream(st *statekit.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var req watchRequest
		if err := conn.ReadJSON(&req); err != nil || len(req.Keys) == 0 {
			return
		}

		// Store notifications run on the writer's goroutine; hand them to
		// the connection through a channel so writes never block on I/O.
		events := make(chan string, eventBuffer)
		stop := st.Watch(req.Keys, func(key string) {
			select {
			case events <- key:
			default:
			}
		})
		defer stop()

		// Read pump: detects client disconnect.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case key := <-events:
				if err := conn.WriteJSON(changeEvent{Key: key, Value: st.Get(key)}); err != nil {
					return
				}
			}
		}
	})
}
