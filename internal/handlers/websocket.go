package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"joker-poker-go/backend/internal/auth"
	"joker-poker-go/backend/internal/config"
	"joker-poker-go/backend/internal/models"
	ws "joker-poker-go/backend/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		if cfgDevAllowAll() {
			return true
		}
		if cfgIsDev() {
			return isLocalhostOrigin(origin) || isAllowedOrigin(origin)
		}
		return isAllowedOrigin(origin)
	},
}

// set by config at startup
var originMu sync.RWMutex
var allowedOrigins = map[string]bool{}
var devMode = false
var devAllowAll = false

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowedOrigins[o] = true
		}
	}
}

func cfgIsDev() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode
}
func cfgDevAllowAll() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode && devAllowAll
}
func isAllowedOrigin(origin string) bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return allowedOrigins[origin]
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler authenticates, upgrades the connection and registers the
// client. A seated player is dropped straight into their table's room.
func WebSocketHandler(hubProvider func() (*ws.Hub, bool), db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromWSRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := auth.ParseAndValidateToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Preconditions before attempting the upgrade so we can return HTTP errors normally.
		room := strings.TrimSpace(c.Query("room"))
		if room == "" {
			room = ws.DefaultRoom
			if tableID, seated, err := models.SeatedTableID(db, claims.UserID); err == nil && seated {
				room = tableRoom(tableID)
			}
		}
		hub, ok := hubProvider()
		if !ok || hub == nil {
			log.Printf("WebSocketHandler hubProvider returned nil: user_id=%d room=%q", claims.UserID, room)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocketHandler upgrade failed: method=%s path=%s remote=%s origin=%q err=%v",
				c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Request.Header.Get("Origin"), err,
			)
			return
		}

		client := ws.NewClient(conn, hub, room, claims.UserID)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump(func(msg []byte) {
			handleWSMessage(hub, client, db, msg)
		})

		// Send a direct "connected" ack.
		_ = sendDirect(client, "connected", map[string]any{
			"user_id": client.UserID,
			"room":    room,
		})
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func handleWSMessage(hub *ws.Hub, client *ws.Client, db *sql.DB, msg []byte) {
	var in inboundMessage
	if err := json.Unmarshal(msg, &in); err != nil {
		_ = sendDirect(client, "error", map[string]any{"error": "invalid json"})
		return
	}

	switch in.Type {
	case "join_room":
		var p struct {
			Room string `json:"room"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil || strings.TrimSpace(p.Room) == "" {
			_ = sendDirect(client, "error", map[string]any{"error": "invalid room"})
			return
		}
		room := strings.TrimSpace(p.Room)
		hub.Join(client, room)
		_ = sendDirect(client, "joined_room", map[string]any{"room": room})
	case "action":
		var p struct {
			TableID int64 `json:"table_id"`
			tableActionRequest
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil || p.TableID <= 0 {
			_ = sendDirect(client, "error", map[string]any{"error": "invalid action payload"})
			return
		}
		snap, err := applyTableAction(db, p.TableID, client.UserID, p.tableActionRequest)
		if err != nil {
			_ = sendDirect(client, "error", map[string]any{"error": wsErrorMessage(err)})
			return
		}
		_ = sendDirect(client, "action_ok", map[string]any{
			"table_id": p.TableID,
			"state":    snapshotForViewer(snap, client.UserID),
		})
	default:
		_ = sendDirect(client, "error", map[string]any{"error": "unknown message type"})
	}
}

// wsErrorMessage maps engine sentinels to client-safe strings; anything else
// stays generic.
func wsErrorMessage(err error) string {
	for _, sentinel := range []error{
		models.ErrRoundNotRunning, models.ErrRoundInProgress, models.ErrNotEnoughPlayers,
		models.ErrNotSeated, models.ErrNotYourTurn, models.ErrAlreadyPlayed,
		models.ErrEmptyPlay, models.ErrTooManyCards, models.ErrCardNotInHand,
		models.ErrBetNotAllowed, models.ErrInvalidBetAmount,
		models.ErrNoDiscardsLeft, models.ErrTooManyDiscards,
		models.ErrShopIndexOutOfRange, models.ErrJokerIndexOutOfRange, models.ErrJokerLimitReached,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "action rejected"
}

func sendDirect(c *ws.Client, typ string, payload any) error {
	msg := map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.Send <- b:
	default:
		log.Printf("ws send drop: user_id=%d room=%s type=%s", c.UserID, c.Room, typ)
	}
	return nil
}

func tokenFromWSRequest(c *gin.Context) string {
	if v, err := c.Cookie(auth.AuthCookieName); err == nil {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	authz := c.GetHeader("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}
