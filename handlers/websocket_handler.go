package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/softballsistem/SoftballStads-Ochoa/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin,
		// чтобы разрешать подключения только с доверенных доменов.
		return true // Для разработки разрешаем все
	},
}

// Таблицы, на изменения которых можно подписаться.
var subscribableTables = map[string]bool{
	"teams":        true,
	"players":      true,
	"games":        true,
	"player_stats": true,
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs подписывает клиента на изменения одной таблицы.
// Клиент подключается к /ws/{table}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !subscribableTables[table] {
		http.Error(w, "Unknown table", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for table %s: %v", table, err)
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		return
	}

	client := &live.Client{
		Hub:   h.hub,
		Conn:  conn,
		Send:  make(chan []byte, 256), // Буферизированный канал
		Table: table,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
