package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/yit/registration/internal/store"
)

// toRecord flattens a model into a store record via its json tags.
func toRecord(v interface{}) (store.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding record: %w", err)
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("error flattening record: %w", err)
	}
	return rec, nil
}

// decode maps a store record back onto a model. A nil record decodes to nil.
func decode[T any](rec store.Record) (*T, error) {
	if rec == nil {
		return nil, nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("error encoding record: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("error decoding record: %w", err)
	}
	return out, nil
}

// decodeAll maps a slice of store records onto models, skipping nothing.
func decodeAll[T any](recs []store.Record) ([]*T, error) {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		item, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
