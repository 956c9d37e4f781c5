package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	eventsCollection  = "events"
	profileCollection = "profile"
	socialsCollection = "socials"

	// singletonID is the _id of the profile and socials documents.
	singletonID = "main"
)

func NewMongoDatabase(cfg config.Config, log logger.Logger) (*mongo.Database, error) {
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("config MONGO_URI is empty")
	}
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("can not connect MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB failed: %w", err)
	}

	log.Info("Connect MongoDB successfully.", zap.String("database", cfg.Mongo.Database))
	return client.Database(cfg.Mongo.Database), nil
}

func DisconnectMongo(db *mongo.Database, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect MongoDB", err)
	}
}

type mongoEventRepo struct {
	collection *mongo.Collection
}

func NewMongoEventRepo(db *mongo.Database) event.Repository {
	return &mongoEventRepo{collection: db.Collection(eventsCollection)}
}

func (r *mongoEventRepo) List(ctx context.Context) ([]*event.Event, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperror.NewInternal("failed to list events", err)
	}
	defer cursor.Close(ctx)

	events := []*event.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, apperror.NewInternal("failed to decode events", err)
	}
	for _, e := range events {
		fillEventDefaults(e)
	}
	return events, nil
}

func (r *mongoEventRepo) FindByID(ctx context.Context, id string) (*event.Event, error) {
	var e event.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("event", id)
		}
		return nil, apperror.NewInternal("failed to query event", err)
	}
	fillEventDefaults(&e)
	return &e, nil
}

// Put replaces the whole document, so a nil place is stored as null.
func (r *mongoEventRepo) Put(ctx context.Context, e *event.Event) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, opts); err != nil {
		return apperror.NewInternal("failed to upsert event", err)
	}
	return nil
}

func (r *mongoEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.NewInternal("failed to delete event", err)
	}
	return nil
}

func fillEventDefaults(e *event.Event) {
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Title == nil {
		e.Title = i18n.Text{}
	}
	if e.Description == nil {
		e.Description = i18n.Text{}
	}
}

type profileDocument struct {
	ID           string `bson:"_id"`
	profile.Data `bson:",inline"`
}

type mongoProfileRepo struct {
	collection *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) profile.Repository {
	return &mongoProfileRepo{collection: db.Collection(profileCollection)}
}

func (r *mongoProfileRepo) Get(ctx context.Context) (*profile.Data, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFoundDocument(profileCollection+"/"+singletonID, profile.ErrProfileNotFound)
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	d := doc.Data
	d.Normalize()
	return &d, nil
}

func (r *mongoProfileRepo) Put(ctx context.Context, d *profile.Data) error {
	doc := profileDocument{ID: singletonID, Data: *d}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": singletonID}, doc, opts); err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

type socialsDocument struct {
	ID    string        `bson:"_id"`
	Links []social.Link `bson:"links"`
}

type mongoSocialRepo struct {
	collection *mongo.Collection
}

func NewMongoSocialRepo(db *mongo.Database) social.Repository {
	return &mongoSocialRepo{collection: db.Collection(socialsCollection)}
}

func (r *mongoSocialRepo) Get(ctx context.Context) ([]social.Link, error) {
	var doc socialsDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFoundDocument(socialsCollection+"/"+singletonID, social.ErrSocialsNotFound)
		}
		return nil, apperror.NewInternal("failed to query social links", err)
	}
	if doc.Links == nil {
		doc.Links = []social.Link{}
	}
	return doc.Links, nil
}

func (r *mongoSocialRepo) Put(ctx context.Context, links []social.Link) error {
	if links == nil {
		links = []social.Link{}
	}
	doc := socialsDocument{ID: singletonID, Links: links}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": singletonID}, doc, opts); err != nil {
		return apperror.NewInternal("failed to upsert social links", err)
	}
	return nil
}
