package events

import "time"

const ContractImportedTopic = "guard.contract.imported.v1"

// ContractImportedEvent announces a committed import for downstream systems
// (scheduling, billing) to sync against.
type ContractImportedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	ContractID     string    `json:"contract_id"`
	CustomerID     string    `json:"customer_id"`
	ContractNumber string    `json:"contract_number"`
	Confidence     int       `json:"confidence"`
	OccurredAt     time.Time `json:"occurred_at"`
}
