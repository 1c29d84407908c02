package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	start := []string{"u1", "u2"}

	next, added := Toggle(start, "u3")
	assert.True(t, added)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, next)

	back, added := Toggle(next, "u3")
	assert.False(t, added)
	assert.ElementsMatch(t, start, back)

	assert.Equal(t, []string{"u1", "u2"}, start, "input must not be mutated")
}

func TestToggleEmptySet(t *testing.T) {
	next, added := Toggle(nil, "u1")
	assert.True(t, added)
	assert.Equal(t, []string{"u1"}, next)
}

func TestMembershipOps(t *testing.T) {
	id := bson.NewObjectID()

	filter, update := ArticleLikes.RemoveOp(id, "u1")
	assert.Equal(t, bson.M{"_id": id, "likes": "u1"}, filter)
	assert.Equal(t, bson.M{
		"$pull": bson.M{"likes": "u1"},
		"$inc":  bson.M{"likesCount": -1},
	}, update)

	filter, update = ArticleLikes.AddOp(id, "u1")
	assert.Equal(t, bson.M{"_id": id, "likes": bson.M{"$ne": "u1"}}, filter)
	assert.Equal(t, bson.M{
		"$addToSet": bson.M{"likes": "u1"},
		"$inc":      bson.M{"likesCount": 1},
	}, update)
}
