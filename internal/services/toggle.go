package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// maxToggleAttempts bounds retries when a conditional update loses a race.
const maxToggleAttempts = 4

var ErrToggleConflict = errors.New("toggle kept losing to concurrent updates")

// Membership is a set-valued field plus a counter that always equals its size.
type Membership struct {
	SetField   string
	CountField string
}

var ArticleLikes = Membership{SetField: "likes", CountField: "likesCount"}

// RemoveOp matches only when actor is in the set.
func (m Membership) RemoveOp(id bson.ObjectID, actor string) (filter, update bson.M) {
	filter = bson.M{"_id": id, m.SetField: actor}
	update = bson.M{
		"$pull": bson.M{m.SetField: actor},
		"$inc":  bson.M{m.CountField: -1},
	}
	return filter, update
}

// AddOp matches only when actor is not in the set.
func (m Membership) AddOp(id bson.ObjectID, actor string) (filter, update bson.M) {
	filter = bson.M{"_id": id, m.SetField: bson.M{"$ne": actor}}
	update = bson.M{
		"$addToSet": bson.M{m.SetField: actor},
		"$inc":      bson.M{m.CountField: 1},
	}
	return filter, update
}

// Toggle flips actor's membership in set. It never mutates set.
func Toggle(set []string, actor string) (next []string, added bool) {
	next = make([]string, 0, len(set)+1)
	for _, m := range set {
		if m != actor {
			next = append(next, m)
		}
	}
	if len(next) == len(set) {
		return append(next, actor), true
	}
	return next, false
}
