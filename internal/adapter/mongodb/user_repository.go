package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type UserRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Email          *string            `bson:"email,omitempty"`
	TelegramID     *int64             `bson:"telegram_id,omitempty"`
	PasswordHash   string             `bson:"password_hash,omitempty"`
	Username       string             `bson:"username"`
	FirstName      string             `bson:"first_name,omitempty"`
	LastName       string             `bson:"last_name,omitempty"`
	PhotoURL       string             `bson:"photo_url,omitempty"`
	Friends        []string           `bson:"friends"`
	FriendRequests []string           `bson:"friend_requests"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection), now: utcMillis}
}

func (r *UserRepository) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	now := r.now()
	doc := userDocument{
		ID:             primitive.NewObjectID(),
		Email:          input.Email,
		TelegramID:     input.TelegramID,
		PasswordHash:   input.PasswordHash,
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhotoURL:       input.PhotoURL,
		Friends:        []string{},
		FriendRequests: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) UpsertTelegramUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	if input.TelegramID == nil {
		return domain.User{}, errors.New("upsert telegram user: telegram id is required")
	}

	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"username":   input.Username,
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"photo_url":  input.PhotoURL,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"friends":         bson.A{},
			"friend_requests": bson.A{},
			"created_at":      now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"telegram_id": *input.TelegramID}, update, opts).Decode(&doc)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert telegram user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) SearchUsersByEmail(ctx context.Context, query, excludeID string, limit int) ([]domain.User, error) {
	filter := bson.M{
		"email": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}},
	}
	if oid, ok := objectID(excludeID); ok {
		filter["_id"] = bson.M{"$ne": oid}
	}

	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// ListUsersByIDs keeps the order of ids and skips unknown ones.
func (r *UserRepository) ListUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []domain.User{}, nil
	}

	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(found))
	for _, user := range found {
		byID[user.ID] = user
	}
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *UserRepository) SaveRelations(ctx context.Context, user domain.User) error {
	oid, ok := objectID(user.ID)
	if !ok {
		return domain.ErrUserNotFound
	}

	friends := user.Friends
	if friends == nil {
		friends = []string{}
	}
	requests := user.FriendRequests
	if requests == nil {
		requests = []string{}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"friends":         friends,
		"friend_requests": requests,
		"updated_at":      r.now(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (d userDocument) toDomain() domain.User {
	user := domain.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		TelegramID:     d.TelegramID,
		PasswordHash:   d.PasswordHash,
		Username:       d.Username,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		PhotoURL:       d.PhotoURL,
		Friends:        d.Friends,
		FriendRequests: d.FriendRequests,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
	if user.Friends == nil {
		user.Friends = []string{}
	}
	if user.FriendRequests == nil {
		user.FriendRequests = []string{}
	}
	return user
}
