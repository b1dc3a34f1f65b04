package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/silis/backend/internal/model"
)

// Collection names.
const (
	CollectionSubmissions = "contact_submissions"
	CollectionNews        = "news"
	CollectionContent     = "site_content"
)

// ConnectMongo opens a client for uri and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoPinger adapts a mongo client to DB.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}

// EnsureMongoIndexes creates the lookup and ordering indexes. It is safe to
// call on every start.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollectionSubmissions: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		CollectionNews: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "published", Value: 1}}},
		},
		CollectionContent: {
			{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// MongoSubmissionRepository stores submissions in the contact_submissions
// collection, addressed by the application id field rather than _id.
type MongoSubmissionRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoSubmissionRepository(db *mongo.Database, timeout time.Duration) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{coll: db.Collection(CollectionSubmissions), timeout: timeout}
}

var _ SubmissionRepository = (*MongoSubmissionRepository)(nil)

func submissionQuery(filter model.SubmissionFilter) bson.M {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if !filter.CreatedSince.IsZero() {
		q["created_at"] = bson.M{"$gte": filter.CreatedSince}
	}
	return q
}

func (r *MongoSubmissionRepository) Insert(ctx context.Context, s *model.ContactSubmission) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *MongoSubmissionRepository) FindByID(ctx context.Context, id string) (*model.ContactSubmission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var s model.ContactSubmission
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return &s, nil
}

func (r *MongoSubmissionRepository) List(ctx context.Context, filter model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, submissionQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	submissions := []*model.ContactSubmission{}
	if err := cur.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return submissions, nil
}

func (r *MongoSubmissionRepository) Count(ctx context.Context, filter model.SubmissionFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, submissionQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *MongoSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoNewsRepository stores articles in the news collection.
type MongoNewsRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoNewsRepository(db *mongo.Database, timeout time.Duration) *MongoNewsRepository {
	return &MongoNewsRepository{coll: db.Collection(CollectionNews), timeout: timeout}
}

var _ NewsRepository = (*MongoNewsRepository)(nil)

func newsQuery(filter model.NewsFilter) bson.M {
	q := bson.M{}
	if filter.Published != nil {
		q["published"] = *filter.Published
	}
	return q
}

func (r *MongoNewsRepository) Insert(ctx context.Context, n *model.NewsArticle) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

func (r *MongoNewsRepository) FindByID(ctx context.Context, id string) (*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a model.NewsArticle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find news: %w", err)
	}
	return &a, nil
}

func (r *MongoNewsRepository) List(ctx context.Context, filter model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, newsQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	articles := []*model.NewsArticle{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}
	return articles, nil
}

func (r *MongoNewsRepository) Count(ctx context.Context, filter model.NewsFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, newsQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return n, nil
}

func (r *MongoNewsRepository) Update(ctx context.Context, id string, changes model.NewsChanges) (*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{"updated_at": changes.UpdatedAt}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Excerpt != nil {
		set["excerpt"] = *changes.Excerpt
	}
	if changes.Content != nil {
		set["content"] = *changes.Content
	}
	if changes.Date != nil {
		set["date"] = *changes.Date
	}
	if changes.Published != nil {
		set["published"] = *changes.Published
	}
	if changes.Author != nil && !changes.ClearAuthor {
		set["author"] = *changes.Author
	}
	update := bson.M{"$set": set}
	if changes.ClearAuthor {
		update["$unset"] = bson.M{"author": ""}
	}

	var a model.NewsArticle
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update news: %w", err)
	}
	return &a, nil
}

func (r *MongoNewsRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoContentRepository stores the singleton document in site_content,
// keyed by type = "main".
type MongoContentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoContentRepository(db *mongo.Database, timeout time.Duration) *MongoContentRepository {
	return &MongoContentRepository{coll: db.Collection(CollectionContent), timeout: timeout}
}

var _ ContentRepository = (*MongoContentRepository)(nil)

func (r *MongoContentRepository) Get(ctx context.Context) (*model.ContentDocument, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc model.ContentDocument
	if err := r.coll.FindOne(ctx, bson.M{"type": model.ContentType}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get site content: %w", err)
	}
	return &doc, nil
}

func (r *MongoContentRepository) Insert(ctx context.Context, doc *model.ContentDocument) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	d := *doc
	d.Type = model.ContentType
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert site content: %w", err)
	}
	return nil
}

// Replace keeps created_at of an existing document.
func (r *MongoContentRepository) Replace(ctx context.Context, doc *model.ContentDocument) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = doc.UpdatedAt
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"type": model.ContentType},
		bson.M{
			"$set":         bson.M{"data": doc.Data, "updated_at": doc.UpdatedAt},
			"$setOnInsert": bson.M{"created_at": createdAt},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace site content: %w", err)
	}
	return nil
}

func (r *MongoContentRepository) Delete(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"type": model.ContentType}); err != nil {
		return fmt.Errorf("delete site content: %w", err)
	}
	return nil
}
