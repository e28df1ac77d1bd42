package bank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/verity/internal/quiz"
)

// document is the stored shape of a question. Field names match what the
// original quiz collection used.
type document struct {
	Question string `bson:"question"`
	Answer   string `bson:"answer"`
	Reason   string `bson:"reason,omitempty"`
}

// MongoBank reads questions from a MongoDB collection in _id order.
type MongoBank struct {
	client *mongo.Client
	col    *mongo.Collection
}

var _ Bank = (*MongoBank)(nil)

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoBank, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoBank{
		client: client,
		col:    client.Database(database).Collection(collection),
	}, nil
}

func (b *MongoBank) QuestionAt(ctx context.Context, index int) (quiz.Question, error) {
	if index < 0 {
		return quiz.Question{}, ErrNotFound
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(index))

	var doc document
	err := b.col.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return quiz.Question{}, ErrNotFound
	}
	if err != nil {
		return quiz.Question{}, fmt.Errorf("find question %d: %w", index, err)
	}
	return quiz.Question{Text: doc.Question, Answer: doc.Answer, Reason: doc.Reason}, nil
}

func (b *MongoBank) Count(ctx context.Context) (int, error) {
	n, err := b.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return int(n), nil
}

func (b *MongoBank) Add(ctx context.Context, questions []quiz.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]any, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, document{Question: q.Text, Answer: q.Answer, Reason: q.Reason})
	}
	// Ordered insert keeps _id order equal to input order.
	if _, err := b.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (b *MongoBank) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
