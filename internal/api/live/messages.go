package live

import (
	"encoding/json"

	"solar-proposal/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server message types.
const (
	TypeInputsSet          = "inputs:set"
	TypeRecordsSet         = "records:set"
	TypeSettingsSet        = "settings:set"
	TypeRationalizationSet = "rationalization:set"
	TypeMaintenanceConfirm = "maintenance:confirm"
	TypeMaintenanceDecline = "maintenance:decline"
)

// Server -> Client message types.
const (
	TypeResult         = "result"
	TypeError          = "error"
	TypePricingUpdated = "pricing:updated"
)

type RecordsPayload struct {
	Records []model.MonthlyRecord `json:"records"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PricingUpdatedPayload struct {
	Source  string              `json:"source"`
	Pricing model.PricingConfig `json:"pricing"`
}

// NewEnvelope creates a JSON-encoded envelope.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
