package dto

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/articles-server/internal/models"
)

// decodeWithExtra decodes b into typed and returns the keys owned does not claim.
func decodeWithExtra(b []byte, typed any, owned models.Keys) (bson.M, error) {
	if err := json.Unmarshal(b, typed); err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return models.SplitExtra(raw, owned), nil
}
