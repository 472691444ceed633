package subjects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("subjects: not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectCols = `name, code, last_updated, lab_present, lab_total, theory_present, theory_total`

func scanSubject(row pgx.Row) (Subject, error) {
	var name, code string
	var lastUpdated int64
	var labP, labT, theoryP, theoryT int
	if err := row.Scan(&name, &code, &lastUpdated, &labP, &labT, &theoryP, &theoryT); err != nil {
		return Subject{}, err
	}
	return New(name, code, lastUpdated, labP, labT, theoryP, theoryT), nil
}

// Upsert сохраняет снимок по (student_id, code); повторная загрузка перезаписывает счётчики.
func (r *Repo) Upsert(ctx context.Context, studentID int64, s Subject) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subjects (student_id, name, code, last_updated, lab_present, lab_total, theory_present, theory_total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (student_id, code) DO UPDATE SET
		  name=EXCLUDED.name,
		  last_updated=EXCLUDED.last_updated,
		  lab_present=EXCLUDED.lab_present,
		  lab_total=EXCLUDED.lab_total,
		  theory_present=EXCLUDED.theory_present,
		  theory_total=EXCLUDED.theory_total
	`, studentID, s.Name(), s.Code(), s.LastUpdated(), s.LabPresent(), s.LabTotal(), s.TheoryPresent(), s.TheoryTotal())
	return err
}

func (r *Repo) List(ctx context.Context, studentID int64) ([]Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectCols+` FROM subjects WHERE student_id=$1 ORDER BY code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, studentID int64, code string) (Subject, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectCols+` FROM subjects WHERE student_id=$1 AND code=$2`, studentID, code)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Subject{}, ErrNotFound
		}
		return Subject{}, err
	}
	return s, nil
}

func (r *Repo) Delete(ctx context.Context, studentID int64, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE student_id=$1 AND code=$2`, studentID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
