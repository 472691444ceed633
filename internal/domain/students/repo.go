package students

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("students: not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `id, telegram_id, username, first_name, last_name, minimum_attendance, extended_stats, created_at, updated_at`

func scan(row pgx.Row) (*Student, error) {
	var s Student
	if err := row.Scan(&s.ID, &s.TelegramID, &s.Username, &s.FirstName, &s.LastName,
		&s.MinimumAttendance, &s.ExtendedStats, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*Student, error) {
	s, err := scan(r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM students WHERE telegram_id = $1`, tgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// UpsertFromTelegram обновляет профиль; настройки посещаемости при повторном /start не трогаем.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, minimum int, extended bool) (*Student, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO students (telegram_id, username, first_name, last_name, minimum_attendance, extended_stats)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			updated_at = now()
		RETURNING `+selectCols, tg.ID, tg.Username, tg.FirstName, tg.LastName, minimum, extended))
}

func (r *Repo) SetMinimumAttendance(ctx context.Context, id int64, minimum int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET minimum_attendance=$2, updated_at=now() WHERE id=$1`, id, minimum)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetExtendedStats(ctx context.Context, id int64, extended bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET extended_stats=$2, updated_at=now() WHERE id=$1`, id, extended)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
