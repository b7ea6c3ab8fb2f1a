package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fastygo/cooltodo/domain"
)

// migration upgrades a payload of one kind from version N to N+1.
type migration func(kind string, payload json.RawMessage) (json.RawMessage, error)

// migrations is indexed by the version being upgraded from.
var migrations = map[int]migration{
	1: migrateV1,
}

type envelopeProbe struct {
	Version *int            `json:"version"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeSnapshot parses raw slot data and upgrades it to domain.SnapshotVersion.
// Unversioned data is the v1 layout: the bare JSON value without an envelope.
func DecodeSnapshot(kind string, raw []byte) (domain.Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.Snapshot{}, domain.NewError(domain.ErrCodeInvalid, "empty "+kind+" snapshot")
	}

	snapshot := domain.Snapshot{Version: 1, Kind: kind, Payload: json.RawMessage(trimmed)}
	if trimmed[0] == '{' {
		var probe envelopeProbe
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInvalid, "corrupt "+kind+" snapshot", err)
		}
		if probe.Version != nil && probe.Payload != nil {
			if err := json.Unmarshal(trimmed, &snapshot); err != nil {
				return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInvalid, "corrupt "+kind+" snapshot", err)
			}
		}
	} else if trimmed[0] != '[' {
		return domain.Snapshot{}, domain.NewError(domain.ErrCodeInvalid, "corrupt "+kind+" snapshot")
	}

	if snapshot.Kind != "" && snapshot.Kind != kind {
		return domain.Snapshot{}, domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("snapshot kind %q does not match %q", snapshot.Kind, kind))
	}
	if snapshot.Version > domain.SnapshotVersion || snapshot.Version < 1 {
		return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInvalid,
			fmt.Sprintf("%s snapshot version %d", kind, snapshot.Version), domain.ErrUnsupportedSchema)
	}

	for snapshot.Version < domain.SnapshotVersion {
		step, ok := migrations[snapshot.Version]
		if !ok {
			return domain.Snapshot{}, domain.ErrUnsupportedSchema
		}
		payload, err := step(kind, snapshot.Payload)
		if err != nil {
			return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInvalid,
				fmt.Sprintf("migrate %s snapshot from v%d", kind, snapshot.Version), err)
		}
		snapshot.Payload = payload
		snapshot.Version++
	}
	snapshot.Kind = kind
	return snapshot, nil
}

// migrateV1 renames the task owner field from userId to ownerId. Other kinds are unchanged.
func migrateV1(kind string, payload json.RawMessage) (json.RawMessage, error) {
	if kind != domain.KindTasks {
		return payload, nil
	}
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		if owner, ok := record["userId"]; ok {
			if _, exists := record["ownerId"]; !exists {
				record["ownerId"] = owner
			}
			delete(record, "userId")
		}
	}
	return json.Marshal(records)
}
