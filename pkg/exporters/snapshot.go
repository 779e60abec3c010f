package exporters

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Snapshot is the payload exported downstream: one raw report fetched from
// the Gauges API for one gauge.
type Snapshot struct {
	GaugeID   string          `json:"gauge_id"`
	GaugeName string          `json:"gauge_name,omitempty"`
	Endpoint  string          `json:"endpoint"`
	Status    int             `json:"status"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// NewSnapshot constructs a Snapshot for the given gauge + report payload.
func NewSnapshot(gaugeID, gaugeName, endpoint string, status int, payload []byte) Snapshot {
	return Snapshot{
		GaugeID:   gaugeID,
		GaugeName: gaugeName,
		Endpoint:  endpoint,
		Status:    status,
		Payload:   json.RawMessage(payload),
		FetchedAt: time.Now().UTC(),
	}
}

// Key identifies the gauge report this snapshot belongs to.
func (s Snapshot) Key() string {
	return s.GaugeID + "/" + s.Endpoint
}

// Digest is a content hash of the payload, used to skip unchanged reports.
func (s Snapshot) Digest() string {
	sum := sha256.Sum256(s.Payload)
	return hex.EncodeToString(sum[:])
}
