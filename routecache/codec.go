// Package routecache serializes reachability maps to JSON and keeps
// them in a pluggable store, so repeated queries for the same origin
// and options skip the search. Backends exist for memory, SQLite and
// Postgres.
package routecache

import (
	"encoding/json"
	"strconv"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
)

// Wire format, per stop:
//
//	{ "<stopId>": { "time": <i32>,
//	                "incoming": [{"from": <u64>, "trip": <u64>, "tripStr": "<u64>"}] } }
//
// tripStr duplicates trip for consumers that cannot hold 64-bit
// integers exactly.
type incomingJSON struct {
	From    uint64 `json:"from"`
	Trip    uint64 `json:"trip"`
	TripStr string `json:"tripStr"`
}

type stateJSON struct {
	Time     int32          `json:"time"`
	Incoming []incomingJSON `json:"incoming"`
}

// ParsedIncoming is one decoded predecessor edge.
type ParsedIncoming struct {
	From model.StopID
	Trip model.TripID
}

// ParsedState is one decoded per-stop record. The stop sequence of
// the predecessor edges is not part of the wire format.
type ParsedState struct {
	TravelTime int32
	Incoming   []ParsedIncoming
}

// Marshal encodes a reachability map.
func Marshal(reach map[model.StopID]*routing.StopState) ([]byte, error) {
	obj := make(map[string]stateJSON, len(reach))
	for stopID, state := range reach {
		incoming := make([]incomingJSON, 0, len(state.Incoming))
		for _, in := range state.Incoming {
			incoming = append(incoming, incomingJSON{
				From:    uint64(in.From),
				Trip:    uint64(in.Trip),
				TripStr: strconv.FormatUint(uint64(in.Trip), 10),
			})
		}
		obj[strconv.FormatUint(uint64(stopID), 10)] = stateJSON{
			Time:     state.TravelTime,
			Incoming: incoming,
		}
	}
	return json.Marshal(obj)
}

// Unmarshal decodes a reachability map previously encoded with
// Marshal.
func Unmarshal(data []byte) (map[model.StopID]ParsedState, error) {
	obj := map[string]stateJSON{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	reach := make(map[model.StopID]ParsedState, len(obj))
	for key, state := range obj {
		stopID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, err
		}
		incoming := make([]ParsedIncoming, 0, len(state.Incoming))
		for _, in := range state.Incoming {
			incoming = append(incoming, ParsedIncoming{
				From: model.StopID(in.From),
				Trip: model.TripID(in.Trip),
			})
		}
		reach[model.StopID(stopID)] = ParsedState{
			TravelTime: state.Time,
			Incoming:   incoming,
		}
	}
	return reach, nil
}
