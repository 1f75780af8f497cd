package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
)

// EventStream aceita conexões WebSocket de painéis autenticados
type EventStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// EventsHandler expõe os eventos administrativos em tempo real
type EventsHandler struct {
	stream EventStream
	log    ports.Logger
}

// NewEventsHandler cria um novo EventsHandler
func NewEventsHandler(stream EventStream, log ports.Logger) *EventsHandler {
	return &EventsHandler{stream: stream, log: log}
}

// Stream faz o upgrade para WebSocket e bloqueia até o cliente sair.
// Falhas de upgrade já foram respondidas pelo upgrader.
// @Summary Eventos do painel (WebSocket)
// @Tags events
// @Router /admin/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	if err := h.stream.ServeWS(c.Writer, c.Request); err != nil {
		h.log.Debug("websocket closed", "error", err, "user", currentUser(c).Username)
	}
}
