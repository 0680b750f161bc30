package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"debatebot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an archived debate does not exist
var ErrNotFound = errors.New("debate not found")

// Archive stores and reads back generated debates
type Archive interface {
	SaveDebate(ctx context.Context, record models.DebateRecord) (string, error)
	GetDebate(ctx context.Context, id string) (*models.DebateRecord, error)
	RecentDebates(ctx context.Context, limit int) ([]models.DebateRecord, error)
	Close(ctx context.Context) error
}

// Open connects the archive selected by driver ("mongo" or "sqlite")
func Open(ctx context.Context, driver, uri string) (Archive, error) {
	switch driver {
	case "mongo":
		return ConnectMongoDB(ctx, uri)
	case "sqlite":
		return OpenSQLite(uri)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", driver)
	}
}

const debatesCollection = "debates"

// MongoArchive keeps debates in a MongoDB collection
type MongoArchive struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type debateDocument struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	Topic     string                `bson:"topic"`
	Debate    models.DebateResponse `bson:"debate"`
	CreatedAt time.Time             `bson:"createdAt"`
}

func (d debateDocument) record() models.DebateRecord {
	return models.DebateRecord{
		ID:        d.ID.Hex(),
		Topic:     d.Topic,
		Debate:    d.Debate,
		CreatedAt: d.CreatedAt,
	}
}

// extractDBName parses the database name from the URI, defaulting to "debatebot"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "debatebot"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "debatebot"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(ctx context.Context, uri string) (*MongoArchive, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(extractDBName(uri)).Collection(debatesCollection)
	return &MongoArchive{client: client, collection: collection}, nil
}

// SaveDebate inserts a debate and returns its hex object id
func (a *MongoArchive) SaveDebate(ctx context.Context, record models.DebateRecord) (string, error) {
	doc := debateDocument{
		ID:        primitive.NewObjectID(),
		Topic:     record.Topic,
		Debate:    record.Debate,
		CreatedAt: record.CreatedAt,
	}
	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to save debate: %w", err)
	}
	return doc.ID.Hex(), nil
}

// GetDebate fetches one debate by its hex id
func (a *MongoArchive) GetDebate(ctx context.Context, id string) (*models.DebateRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc debateDocument
	err = a.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load debate: %w", err)
	}
	record := doc.record()
	return &record, nil
}

// RecentDebates returns the newest debates first
func (a *MongoArchive) RecentDebates(ctx context.Context, limit int) ([]models.DebateRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cursor, err := a.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list debates: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.DebateRecord{}
	for cursor.Next(ctx) {
		var doc debateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode debate: %w", err)
		}
		records = append(records, doc.record())
	}
	return records, cursor.Err()
}

func (a *MongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
