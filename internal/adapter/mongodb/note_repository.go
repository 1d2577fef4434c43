package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type NoteRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	OwnerID   string             `bson:"owner_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Tags      []string           `bson:"tags,omitempty"`
	Color     *string            `bson:"color,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{collection: db.Collection(notesCollection), now: utcMillis}
}

func (r *NoteRepository) ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, creationOrder)
	if err != nil {
		return nil, err
	}
	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, doc.toDomain())
	}
	return notes, nil
}

func (r *NoteRepository) CreateNote(ctx context.Context, input domain.CreateNoteInput) (domain.Note, error) {
	now := r.now()
	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Tags:      input.Tags,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) GetNote(ctx context.Context, id, ownerID string) (domain.Note, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Note{}, domain.ErrNoteNotFound
	}

	var doc noteDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Note{}, domain.ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) UpdateNote(ctx context.Context, id, ownerID string, input domain.UpdateNoteInput) (domain.Note, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Note{}, domain.ErrNoteNotFound
	}

	var doc noteDocument
	filter := bson.M{"_id": oid, "owner_id": ownerID}
	if err := r.collection.FindOneAndUpdate(ctx, filter, noteUpdate(input, r.now()), returnUpdated).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Note{}, domain.ErrNoteNotFound
		}
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, id, ownerID string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrNoteNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func noteUpdate(input domain.UpdateNoteInput, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	unset := bson.M{}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}
	setOrUnset(set, unset, "color", input.ColorSet, input.Color)
	if input.TagsSet {
		if len(input.Tags) == 0 {
			unset["tags"] = ""
		} else {
			set["tags"] = input.Tags
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func (d noteDocument) toDomain() domain.Note {
	return domain.Note{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      d.Tags,
		Color:     d.Color,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}
