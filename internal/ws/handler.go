package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sustainability_dashboard/internal/dashboard"
	"sustainability_dashboard/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket sessions and answers view requests with
// dashboard reports.
type Handler struct {
	hub *Hub
	svc *dashboard.Service
}

func NewHandler(hub *Hub, svc *dashboard.Service) *Handler {
	return &Handler{hub: hub, svc: svc}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
		view: dashboard.View{Dataset: model.DatasetStuder},
	}

	h.hub.Register(client)
	go client.writePump()

	if msg, err := NewEnvelope(TypeSessionReady, SessionReadyPayload{SessionID: client.id}); err == nil {
		h.hub.queue(client, msg)
	}
	if msg, err := dataLoadedMessage(h.svc.Datasets()); err == nil {
		h.hub.queue(client, msg)
	} else {
		log.Printf("Error creating data:loaded message: %v", err)
	}

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		h.sendError(c, "", fmt.Errorf("invalid message: %w", err))
		return
	}

	switch env.Type {
	case TypeViewSetRange:
		var p SetRangePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, env.Type, fmt.Errorf("invalid payload: %w", err))
			return
		}
		v, err := viewFromPayload(p, c.view.Dataset)
		if err != nil {
			h.sendError(c, env.Type, err)
			return
		}
		c.view = v
		h.sendReport(c)

	case TypeViewRefresh:
		h.sendReport(c)

	default:
		log.Printf("Unknown message type: %s", env.Type)
		h.sendError(c, env.Type, fmt.Errorf("unknown message type %q", env.Type))
	}
}

func viewFromPayload(p SetRangePayload, current model.Dataset) (dashboard.View, error) {
	dataset := current
	if p.Dataset != "" {
		dataset = model.Dataset(p.Dataset)
	}
	switch dataset {
	case model.DatasetStuder, model.DatasetWeather, model.DatasetEnphase:
	default:
		return dashboard.View{}, fmt.Errorf("%w: %s", dashboard.ErrUnknownDataset, dataset)
	}
	return dashboard.ViewFromDates(dataset, p.Start, p.End)
}

// sendReport computes the report for the client's view and queues it.
func (h *Handler) sendReport(c *Client) {
	var (
		msgType string
		report  any
		err     error
	)
	switch c.view.Dataset {
	case model.DatasetWeather:
		msgType = TypeWeatherReport
		report, err = h.svc.WeatherReport(c.view)
	case model.DatasetEnphase:
		msgType = TypeEnphaseReport
		report, err = h.svc.EnphaseReport(c.view)
	default:
		msgType = TypeGridReport
		report, err = h.svc.GridReport(c.view)
	}
	if err != nil {
		h.sendError(c, msgType, err)
		return
	}

	msg, err := NewEnvelope(msgType, report)
	if err != nil {
		log.Printf("Error marshaling %s: %v", msgType, err)
		return
	}
	h.hub.queue(c, msg)
}

func (h *Handler) sendError(c *Client, request string, err error) {
	msg, merr := NewEnvelope(TypeError, ErrorPayload{Request: request, Message: err.Error()})
	if merr != nil {
		return
	}
	h.hub.queue(c, msg)
}
