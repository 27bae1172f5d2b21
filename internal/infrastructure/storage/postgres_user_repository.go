package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

const schema = `
CREATE TABLE IF NOT EXISTS bot_users (
	user_id    BIGINT PRIMARY KEY,
	chat_id    BIGINT NOT NULL,
	state      TEXT NOT NULL,
	car_type   TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresUserRepository хранит сессии чата в PostgreSQL,
// чтобы выбранная модель автомобиля переживала перезапуск бота.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// OpenPostgresUserRepository подключается к базе и создаёт таблицу при необходимости.
func OpenPostgresUserRepository(ctx context.Context, url string) (*PostgresUserRepository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresUserRepository{pool: pool}, nil
}

// Close закрывает пул соединений
func (r *PostgresUserRepository) Close() {
	r.pool.Close()
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *PostgresUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, chat_id, state, car_type
		FROM bot_users
		WHERE user_id = $1
	`, userID)

	var (
		u     entity.User
		state string
	)
	err := row.Scan(&u.ID, &u.ChatID, &state, &u.CarType)
	if errors.Is(err, pgx.ErrNoRows) {
		user := entity.NewUser(userID, chatID)
		if err := r.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	u.State = entity.UserState(state)
	return &u, nil
}

// Save сохраняет состояние пользователя
func (r *PostgresUserRepository) Save(ctx context.Context, user *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bot_users (user_id, chat_id, state, car_type, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE
		SET chat_id = EXCLUDED.chat_id,
		    state = EXCLUDED.state,
		    car_type = EXCLUDED.car_type,
		    updated_at = now()
	`, user.ID, user.ChatID, string(user.State), user.CarType)
	if err != nil {
		return fmt.Errorf("save user %d: %w", user.ID, err)
	}
	return nil
}

// UpdateState обновляет состояние пользователя
func (r *PostgresUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE bot_users SET state = $2, updated_at = now() WHERE user_id = $1
	`, userID, string(state))
	if err != nil {
		return fmt.Errorf("update state %d: %w", userID, err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*PostgresUserRepository)(nil)
