package models

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Keys is the set of document keys backed by typed struct fields.
type Keys map[string]struct{}

func keysOf(names ...string) Keys {
	k := make(Keys, len(names))
	for _, n := range names {
		k[n] = struct{}{}
	}
	return k
}

func (k Keys) Has(name string) bool {
	_, ok := k[name]
	return ok
}

// SplitExtra returns the entries of raw that no typed field owns. Keys Mongo
// would read as an operator or a dotted path are dropped.
func SplitExtra(raw map[string]any, owned Keys) bson.M {
	var extra bson.M
	for k, v := range raw {
		if k == "" || owned.Has(k) || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			continue
		}
		if extra == nil {
			extra = bson.M{}
		}
		extra[k] = v
	}
	return extra
}

// mergeExtra adds extra to the JSON object typed. Typed keys win.
func mergeExtra(typed []byte, extra bson.M) ([]byte, error) {
	if len(extra) == 0 {
		return typed, nil
	}
	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(typed, &obj); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := obj[k]; taken {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = raw
	}
	return json.Marshal(obj)
}
