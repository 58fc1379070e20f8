package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"memories-chain/internal/events"
	"memories-chain/internal/services"
	"memories-chain/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	auth *services.AuthService
	hub  *Hub
}

func NewHandler(auth *services.AuthService, hub *Hub) *Handler {
	return &Handler{auth: auth, hub: hub}
}

// subscribeMessage is the client-side subscription protocol. A wallet scope
// watches both the forms table and that wallet's ownership grants; the other
// scopes narrow a single table.
type subscribeMessage struct {
	Action        string `json:"action"` // subscribe | unsubscribe
	Table         string `json:"table,omitempty"`
	CreatorID     string `json:"creator_id,omitempty"`
	FormID        string `json:"form_id,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

// Connect upgrades the request and serves subscription commands until the
// client disconnects. A bearer token is optional; when present it must
// verify.
func (h *Handler) Connect(c *gin.Context) {
	wallet := ""
	if token := c.Query("token"); token != "" {
		identity, err := h.auth.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			return
		}
		wallet = identity.AccountID
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, wallet)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg subscribeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		channels, err := resolveScope(msg)
		if err != nil {
			continue
		}
		for _, channel := range channels {
			if msg.Action == "unsubscribe" {
				h.hub.Unsubscribe(client, channel)
			} else {
				h.hub.Subscribe(client, channel)
			}
		}
	}

	h.hub.Unregister(client)
}

// resolveScope maps a subscription request onto relay channel names.
func resolveScope(msg subscribeMessage) ([]string, error) {
	switch {
	case msg.WalletAddress != "":
		return []string{
			events.TableChannel(events.TableMemoryForms),
			events.WalletChannel(msg.WalletAddress),
		}, nil
	case msg.Table == events.TableMemoryForms && msg.CreatorID != "":
		return []string{events.CreatorChannel(msg.CreatorID)}, nil
	case (msg.Table == events.TablePhotos || msg.Table == events.TableFormOwners) && msg.FormID != "":
		return []string{events.FormChannel(msg.Table, msg.FormID)}, nil
	case msg.Table != "":
		return []string{events.TableChannel(msg.Table)}, nil
	default:
		return nil, errors.New("empty subscription scope")
	}
}
