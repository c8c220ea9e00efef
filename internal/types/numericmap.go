package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// NumericMap is an open numeric record: a free-form mapping from a name
// ("plot", "joy", ...) to a numeric score. Review aspects/emotions and content
// perception maps / emotional clouds are all stored as jsonb blobs whose values
// are user-supplied and not guaranteed to be numbers.
type NumericMap map[string]float64

// DecodeNumericMap validates a jsonb payload into a NumericMap. Entries whose
// value is not a JSON number are dropped. A payload that is not a JSON object
// at all decodes to an empty map: a malformed record contributes nothing, it
// never fails the caller.
func DecodeNumericMap(raw datatypes.JSON) NumericMap {
	out := NumericMap{}
	if len(raw) == 0 {
		return out
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return out
	}
	for key, val := range generic {
		var num float64
		if err := json.Unmarshal(val, &num); err != nil {
			continue
		}
		out[key] = num
	}
	return out
}

// EncodeNumericMap serializes a NumericMap back to jsonb. A nil map encodes to
// an empty payload so the column stays NULL.
func EncodeNumericMap(m NumericMap) datatypes.JSON {
	if m == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
