package model

// Table names for the entity-change output.
const (
	TableVault    = "Vault"
	TablePosition = "Position"
)

// EntityRow is one create-row operation against a downstream table.
// Key is expected to be unique per table within a batch; duplicate keys
// collapse to the last value under the sink's upsert semantics.
type EntityRow struct {
	Table  string                 `json:"table"`
	Key    string                 `json:"key"`
	Fields map[string]interface{} `json:"fields"`
}
