package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

const mysqlDuplicateEntry = 1062

const userColumns = `id, email, telegram_id, password_hash, username, first_name, last_name,
  photo_url, created_at, updated_at`

const insertUserQuery = `
INSERT INTO users (` + userColumns + `)
VALUES (:id, :email, :telegram_id, :password_hash, :username, :first_name, :last_name,
  :photo_url, :created_at, :updated_at);
`

const refreshTelegramUserQuery = `
UPDATE users SET
  username = ?,
  first_name = ?,
  last_name = ?,
  photo_url = ?,
  updated_at = ?
WHERE telegram_id = ?;
`

const searchUsersQuery = `
SELECT ` + userColumns + `
FROM users
WHERE email LIKE ? ESCAPE '\\' AND id <> ?
ORDER BY email
LIMIT ?;
`

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type userRow struct {
	ID           string         `db:"id"`
	Email        sql.NullString `db:"email"`
	TelegramID   sql.NullInt64  `db:"telegram_id"`
	PasswordHash string         `db:"password_hash"`
	Username     string         `db:"username"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	PhotoURL     string         `db:"photo_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type relationRow struct {
	UserID  string `db:"user_id"`
	OtherID string `db:"other_id"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: utcMillis}
}

func (r *UserRepository) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	now := r.now()
	user := domain.User{
		ID:             uuid.NewString(),
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

	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, mapDomainUserToRow(user)); err != nil {
		if isDuplicateEntry(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, "WHERE id = ?", id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, "WHERE email = ?", email)
}

func (r *UserRepository) UpsertTelegramUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	if input.TelegramID == nil {
		return domain.User{}, errors.New("upsert telegram user: telegram id is required")
	}

	existing, err := r.getOne(ctx, "WHERE telegram_id = ?", *input.TelegramID)
	if err == nil {
		_, err = r.db.ExecContext(ctx, refreshTelegramUserQuery,
			input.Username, input.FirstName, input.LastName, input.PhotoURL, r.now(), *input.TelegramID)
		if err != nil {
			return domain.User{}, err
		}
		return r.getOne(ctx, "WHERE id = ?", existing.ID)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	user, err := r.CreateUser(ctx, input)
	if errors.Is(err, domain.ErrEmailTaken) {
		// lost a race with a concurrent first sign-in of the same account
		return r.getOne(ctx, "WHERE telegram_id = ?", *input.TelegramID)
	}
	return user, err
}

func (r *UserRepository) SearchUsersByEmail(ctx context.Context, query, excludeID string, limit int) ([]domain.User, error) {
	var rows []userRow
	pattern := "%" + escapeLike(query) + "%"
	if err := r.db.SelectContext(ctx, &rows, searchUsersQuery, pattern, excludeID, limit); err != nil {
		return nil, err
	}
	return r.withRelations(ctx, rows)
}

// ListUsersByIDs keeps the order of ids and skips unknown ones.
func (r *UserRepository) ListUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	query, args, err := sqlx.In("SELECT "+userColumns+" FROM users WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	found, err := r.withRelations(ctx, rows)
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

// SaveRelations replaces both relation lists of one user in a single transaction.
func (r *UserRepository) SaveRelations(ctx context.Context, user domain.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var locked string
	if err := tx.GetContext(ctx, &locked, "SELECT id FROM users WHERE id = ? FOR UPDATE", user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE users SET updated_at = ? WHERE id = ?", r.now(), user.ID); err != nil {
		return err
	}

	if err := replaceRelations(ctx, tx, "user_friends", "friend_id", user.ID, user.Friends); err != nil {
		return err
	}
	if err := replaceRelations(ctx, tx, "user_friend_requests", "sender_id", user.ID, user.FriendRequests); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceRelations(ctx context.Context, tx *sqlx.Tx, table, column, userID string, ids []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids)*3)
	for position, id := range ids {
		placeholders = append(placeholders, "(?, ?, ?)")
		args = append(args, userID, id, position)
	}
	query := fmt.Sprintf("INSERT INTO %s (user_id, %s, position) VALUES %s",
		table, column, strings.Join(placeholders, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("fill %s: %w", table, err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, predicate string, args ...any) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, "SELECT "+userColumns+" FROM users "+predicate, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	users, err := r.withRelations(ctx, []userRow{row})
	if err != nil {
		return domain.User{}, err
	}
	return users[0], nil
}

func (r *UserRepository) withRelations(ctx context.Context, rows []userRow) ([]domain.User, error) {
	users := make([]domain.User, 0, len(rows))
	if len(rows) == 0 {
		return users, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	friends, err := r.loadRelations(ctx, "user_friends", "friend_id", ids)
	if err != nil {
		return nil, err
	}
	requests, err := r.loadRelations(ctx, "user_friend_requests", "sender_id", ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		user := mapUserRowToDomainUser(row)
		user.Friends = append(user.Friends, friends[row.ID]...)
		user.FriendRequests = append(user.FriendRequests, requests[row.ID]...)
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) loadRelations(ctx context.Context, table, column string, userIDs []string) (map[string][]string, error) {
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT user_id, %s AS other_id FROM %s WHERE user_id IN (?) ORDER BY user_id, position", column, table),
		userIDs,
	)
	if err != nil {
		return nil, err
	}

	var rows []relationRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	relations := make(map[string][]string, len(userIDs))
	for _, row := range rows {
		relations[row.UserID] = append(relations[row.UserID], row.OtherID)
	}
	return relations, nil
}

func mapUserRowToDomainUser(row userRow) domain.User {
	user := domain.User{
		ID:             row.ID,
		PasswordHash:   row.PasswordHash,
		Username:       row.Username,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		PhotoURL:       row.PhotoURL,
		Friends:        []string{},
		FriendRequests: []string{},
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Email.Valid {
		email := row.Email.String
		user.Email = &email
	}
	if row.TelegramID.Valid {
		telegramID := row.TelegramID.Int64
		user.TelegramID = &telegramID
	}
	return user
}

func mapDomainUserToRow(user domain.User) userRow {
	row := userRow{
		ID:           user.ID,
		PasswordHash: user.PasswordHash,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PhotoURL:     user.PhotoURL,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.Email != nil {
		row.Email = sql.NullString{String: *user.Email, Valid: true}
	}
	if user.TelegramID != nil {
		row.TelegramID = sql.NullInt64{Int64: *user.TelegramID, Valid: true}
	}
	return row
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
