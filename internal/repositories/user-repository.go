package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	db "calibration-tracker/internal/infrastructure/bd"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/types"
)

const userTable = "users"

var userColumns = []string{"u.id", "u.username", "u.email", "u.password", "u.role", "u.created_at", "u.updated_at"}

var userMap = map[string]string{
	"id":        "u.id",
	"username":  "u.username",
	"email":     "u.email",
	"role":      "u.role",
	"createdAt": "u.created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID uint64) (bool, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	psql    sq.StatementBuilderType
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{
		storage: storage,
		logger:  logger,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "ошибка сканирования пользователя")
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	countBuilder := r.psql.Select("COUNT(u.id)").From(userTable + " AS u")
	countBuilder = db.ApplySearch(countBuilder, filter.Search, "u.username", "u.email")
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, userMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "ошибка подсчёта пользователей")
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	builder := r.psql.Select(userColumns...).From(userTable + " AS u")
	builder = db.ApplySearch(builder, filter.Search, "u.username", "u.email")
	if !db.HasSort(filter, userMap) {
		builder = builder.OrderBy("u.id DESC")
	}
	builder = db.ApplyListParams(builder, filter, userMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.logger.Debug("SQL", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapPgError(err, "ошибка получения пользователей")
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.User, error) {
	query, args, err := r.psql.Select(userColumns...).From(userTable + " AS u").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Expr("LOWER(u.email) = LOWER(?)", email))
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID uint64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE (LOWER(email) = LOWER($1) OR username = $2) AND id <> $3)`, userTable)

	var exists bool
	if err := r.storage.QueryRow(ctx, query, email, username, excludeID).Scan(&exists); err != nil {
		return false, mapPgError(err, "ошибка проверки уникальности пользователя")
	}
	return exists, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query, args, err := r.psql.Insert(userTable).
		Columns("username", "email", "password", "role").
		Values(user.Username, user.Email, user.Password, string(user.Role)).
		Suffix("RETURNING id, username, email, password, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query, args, err := r.psql.Update(userTable).
		Set("username", user.Username).
		Set("email", user.Email).
		Set("password", user.Password).
		Set("role", string(user.Role)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING id, username, email, password, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, userTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err, "ошибка удаления пользователя")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
