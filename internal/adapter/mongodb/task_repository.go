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

type TaskRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

type taskDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	OwnerID           string             `bson:"owner_id"`
	Title             string             `bson:"title"`
	Description       *string            `bson:"description,omitempty"`
	Status            string             `bson:"status"`
	Priority          string             `bson:"priority"`
	DueDate           *time.Time         `bson:"due_date,omitempty"`
	DocumentationLink *string            `bson:"documentation_link,omitempty"`
	Tags              []string           `bson:"tags,omitempty"`
	SharedWithPromo   bool               `bson:"shared_with_promo"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection(tasksCollection), now: utcMillis}
}

func (r *TaskRepository) ListTasks(ctx context.Context, ownerID string, includeShared bool) ([]domain.Task, error) {
	filter := bson.M{"owner_id": ownerID}
	if includeShared {
		filter = bson.M{"$or": bson.A{
			bson.M{"owner_id": ownerID},
			bson.M{"shared_with_promo": true},
		}}
	}

	cursor, err := r.collection.Find(ctx, filter, creationOrder)
	if err != nil {
		return nil, err
	}
	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := r.now()
	doc := taskDocument{
		ID:                primitive.NewObjectID(),
		OwnerID:           input.OwnerID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            string(input.Status),
		Priority:          string(input.Priority),
		DueDate:           input.DueDate,
		DocumentationLink: input.DocumentationLink,
		Tags:              input.Tags,
		SharedWithPromo:   input.SharedWithPromo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TaskRepository) GetOwnedTask(ctx context.Context, id, ownerID string) (domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.update(ctx, bson.M{"_id": oid}, input)
}

func (r *TaskRepository) UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.update(ctx, bson.M{"_id": oid, "owner_id": ownerID}, input)
}

func (r *TaskRepository) DeleteOwnedTask(ctx context.Context, id, ownerID string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) findOne(ctx context.Context, filter bson.M) (domain.Task, error) {
	var doc taskDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) update(ctx context.Context, filter bson.M, input domain.UpdateTaskInput) (domain.Task, error) {
	var doc taskDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, taskUpdate(input, r.now()), returnUpdated).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

// taskUpdate turns a partial update into $set/$unset operators. Cleared
// nullable fields are removed from the document.
func taskUpdate(input domain.UpdateTaskInput, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	unset := bson.M{}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Status != nil {
		set["status"] = string(*input.Status)
	}
	if input.Priority != nil {
		set["priority"] = string(*input.Priority)
	}
	if input.SharedWithPromo != nil {
		set["shared_with_promo"] = *input.SharedWithPromo
	}
	setOrUnset(set, unset, "description", input.DescriptionSet, input.Description)
	setOrUnset(set, unset, "due_date", input.DueDateSet, input.DueDate)
	setOrUnset(set, unset, "documentation_link", input.DocumentationLinkSet, input.DocumentationLink)
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

func setOrUnset[T any](set, unset bson.M, field string, present bool, value *T) {
	if !present {
		return
	}
	if value == nil {
		unset[field] = ""
		return
	}
	set[field] = *value
}

func (d taskDocument) toDomain() domain.Task {
	task := domain.Task{
		ID:                d.ID.Hex(),
		OwnerID:           d.OwnerID,
		Title:             d.Title,
		Description:       d.Description,
		Status:            domain.TaskStatus(d.Status),
		Priority:          domain.TaskPriority(d.Priority),
		DocumentationLink: d.DocumentationLink,
		Tags:              d.Tags,
		SharedWithPromo:   d.SharedWithPromo,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		task.DueDate = &due
	}
	return task
}
