package live

import (
	"encoding/json"
	"errors"
	"net/http"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/session"
	"solar-proposal/internal/simulation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades connections and routes envelopes to the client's session.
type Handler struct {
	hub     *Hub
	engine  *simulation.Engine
	pricing *config.PricingHolder
	logger  *zap.Logger
}

func NewHandler(hub *Hub, engine *simulation.Engine, pricing *config.PricingHolder, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, engine: engine, pricing: pricing, logger: logger}
}

// Serve handles GET /api/v1/ws
func (h *Handler) Serve(c *gin.Context) {
	h.ServeHTTP(c.Writer, c.Request)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, _ := h.pricing.Get()
	sess, err := session.New(h.engine, simulation.Input{
		Records:  model.EmptyYear(),
		Settings: model.DefaultSettings(),
		Pricing:  p,
	}, session.Options{})
	if err != nil {
		h.logger.Error("starting session", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		session: sess,
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendSnapshot(client, sess.Snapshot())
	h.readPump(client)
}

// BroadcastPricing tells every client the shared pricing changed, moves each
// session onto it and sends the recomputed result after the notice.
func (h *Handler) BroadcastPricing(p model.PricingConfig, source string) {
	msg, err := NewEnvelope(TypePricingUpdated, PricingUpdatedPayload{Source: source, Pricing: p})
	if err != nil {
		h.logger.Error("encoding pricing:updated", zap.Error(err))
		return
	}
	h.hub.Broadcast(msg)
	h.hub.Each(func(c *Client) {
		snap, err := c.session.SetPricing(p)
		if err != nil {
			h.logger.Warn("applying pricing to session", zap.Error(err))
			h.sendError(c, models.CodeInvalidPricing, err.Error())
			return
		}
		h.sendSnapshot(c, snap)
	})
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
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(c, models.CodeInvalidRequest, "invalid envelope: "+err.Error())
		return
	}

	var (
		snap session.Snapshot
		err  error
	)
	switch env.Type {
	case TypeInputsSet:
		// Parts missing from the payload, pricing included, keep their current value.
		in := c.session.Snapshot().Input
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			h.sendError(c, models.CodeInvalidRequest, "invalid inputs:set payload: "+err.Error())
			return
		}
		snap, err = c.session.SetInput(in)

	case TypeRecordsSet:
		var p RecordsPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, models.CodeInvalidRequest, "invalid records:set payload: "+err.Error())
			return
		}
		snap, err = c.session.SetRecords(p.Records)

	case TypeSettingsSet:
		// Fields missing from the payload keep their current value.
		s := c.session.Snapshot().Input.Settings
		if err := json.Unmarshal(env.Payload, &s); err != nil {
			h.sendError(c, models.CodeInvalidRequest, "invalid settings:set payload: "+err.Error())
			return
		}
		snap, err = c.session.SetSettings(s)

	case TypeRationalizationSet:
		r := c.session.Snapshot().Input.Rationalization
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			h.sendError(c, models.CodeInvalidRequest, "invalid rationalization:set payload: "+err.Error())
			return
		}
		snap, err = c.session.SetRationalization(r)

	case TypeMaintenanceConfirm:
		snap, err = c.session.Confirm()

	case TypeMaintenanceDecline:
		snap, err = c.session.Decline()

	default:
		h.sendError(c, models.CodeInvalidRequest, "unknown message type: "+env.Type)
		return
	}

	if err != nil {
		code := models.CodeInvalidPricing
		if errors.Is(err, session.ErrNoPendingCalibration) {
			code = models.CodeInvalidRequest
		}
		h.sendError(c, code, err.Error())
		return
	}
	h.sendSnapshot(c, snap)
}

func (h *Handler) sendSnapshot(c *Client, snap session.Snapshot) {
	msg, err := NewEnvelope(TypeResult, snap)
	if err != nil {
		h.logger.Error("encoding result", zap.Error(err))
		return
	}
	h.send(c, msg)
}

func (h *Handler) sendError(c *Client, code, message string) {
	msg, err := NewEnvelope(TypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	h.send(c, msg)
}

func (h *Handler) send(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("client buffer full, dropping message")
	}
}
