// File: database/repository/conversation/crud.go
package conversationRepo

import (
	"context"
	"time"

	"farewise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append inserts one conversation turn.
func (r *mongoTranscriptRepo) Append(ctx context.Context, record models.TurnRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, record)
	return err
}

// GetBySessionID returns a session's transcript in turn order.
func (r *mongoTranscriptRepo) GetBySessionID(ctx context.Context, sessionID string) ([]models.TurnRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "turn", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TurnRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteBySessionID removes a session's transcript.
func (r *mongoTranscriptRepo) DeleteBySessionID(ctx context.Context, sessionID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"session_id": sessionID})
	return err
}
