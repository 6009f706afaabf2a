// File: database/repository/conversation/interface.go
package conversationRepo

import (
	"context"

	"farewise/database"
	"farewise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TranscriptRepository persists conversation turns for later review.
type TranscriptRepository interface {
	Append(ctx context.Context, record models.TurnRecord) error
	GetBySessionID(ctx context.Context, sessionID string) ([]models.TurnRecord, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type mongoTranscriptRepo struct {
	coll *mongo.Collection
}

// NewMongoTranscriptRepo returns a new TranscriptRepository instance using MongoDB.
func NewMongoTranscriptRepo() TranscriptRepository {
	db := database.MongoClient.Database("farewise")
	return &mongoTranscriptRepo{
		coll: db.Collection("conversation_turns"),
	}
}
