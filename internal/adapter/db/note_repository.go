package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

const noteColumns = `id, owner_id, title, content, tags, color, created_at, updated_at`

const insertNoteQuery = `
INSERT INTO notes (` + noteColumns + `)
VALUES (:id, :owner_id, :title, :content, :tags, :color, :created_at, :updated_at);
`

const updateNoteQuery = `
UPDATE notes SET
  title = :title,
  content = :content,
  tags = :tags,
  color = :color,
  updated_at = :updated_at
WHERE id = :id AND owner_id = :owner_id;
`

type NoteRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type noteRow struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	Tags      jsonTags       `db:"tags"`
	Color     sql.NullString `db:"color"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db, now: utcMillis}
}

func (r *NoteRepository) ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error) {
	var rows []noteRow
	query := "SELECT " + noteColumns + " FROM notes WHERE owner_id = ? ORDER BY created_at, id"
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, mapNoteRowToDomainNote(row))
	}
	return notes, nil
}

func (r *NoteRepository) CreateNote(ctx context.Context, input domain.CreateNoteInput) (domain.Note, error) {
	now := r.now()
	note := domain.Note{
		ID:        uuid.NewString(),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Tags:      input.Tags,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertNoteQuery, mapDomainNoteToRow(note)); err != nil {
		return domain.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) GetNote(ctx context.Context, id, ownerID string) (domain.Note, error) {
	return r.get(ctx, r.db, "WHERE id = ? AND owner_id = ?", id, ownerID)
}

func (r *NoteRepository) UpdateNote(ctx context.Context, id, ownerID string, input domain.UpdateNoteInput) (domain.Note, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Note{}, err
	}
	defer func() { _ = tx.Rollback() }()

	note, err := r.get(ctx, tx, "WHERE id = ? AND owner_id = ? FOR UPDATE", id, ownerID)
	if err != nil {
		return domain.Note{}, err
	}

	input.Apply(&note)
	note.UpdatedAt = r.now()

	if _, err := tx.NamedExecContext(ctx, updateNoteQuery, mapDomainNoteToRow(note)); err != nil {
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, id, ownerID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) get(ctx context.Context, q sqlx.QueryerContext, predicate string, args ...any) (domain.Note, error) {
	var row noteRow
	if err := sqlx.GetContext(ctx, q, &row, "SELECT "+noteColumns+" FROM notes "+predicate, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Note{}, domain.ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return mapNoteRowToDomainNote(row), nil
}

func mapNoteRowToDomainNote(row noteRow) domain.Note {
	note := domain.Note{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Title:     row.Title,
		Content:   row.Content,
		Tags:      []string(row.Tags),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Color.Valid {
		value := row.Color.String
		note.Color = &value
	}
	return note
}

func mapDomainNoteToRow(note domain.Note) noteRow {
	row := noteRow{
		ID:        note.ID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      jsonTags(note.Tags),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if note.Color != nil {
		row.Color = sql.NullString{String: *note.Color, Valid: true}
	}
	return row
}
