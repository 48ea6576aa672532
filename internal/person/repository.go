package person

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound occurs when no person exists for the requested identifier.
var ErrNotFound = errors.New("person not found")

// Repository persists person records.
type Repository interface {
	Create(ctx context.Context, p Person) error
	Get(ctx context.Context, id string) (Person, error)
	List(ctx context.Context) ([]Person, error)
	Update(ctx context.Context, p Person) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores persons in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a person record.
func (r *PostgresRepository) Create(ctx context.Context, p Person) error {
	personID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO persons (id, title, first_name, last_name, dob, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		personID, p.Title, p.FirstName, p.LastName, p.DOB, p.CreatedAt.UTC())
	return err
}

// Get fetches a person by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Person, error) {
	personID, err := uuid.Parse(id)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, title, first_name, last_name, dob, created_at
        FROM persons WHERE id = $1`, personID)

	var (
		p         Person
		idVal     uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&idVal, &p.Title, &p.FirstName, &p.LastName, &p.DOB, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Person{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Person{}, err
	}
	p.ID = idVal.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

// List returns all persons ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Person, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, first_name, last_name, dob, created_at
        FROM persons ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []Person
	for rows.Next() {
		var (
			p         Person
			idVal     uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&idVal, &p.Title, &p.FirstName, &p.LastName, &p.DOB, &createdAt); err != nil {
			return nil, err
		}
		p.ID = idVal.String()
		p.CreatedAt = createdAt.UTC()
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// Update rewrites the mutable fields of a person record.
func (r *PostgresRepository) Update(ctx context.Context, p Person) error {
	personID, err := uuid.Parse(p.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	cmd, err := r.db.Exec(ctx, `UPDATE persons SET title = $2, first_name = $3, last_name = $4, dob = $5
        WHERE id = $1`, personID, p.Title, p.FirstName, p.LastName, p.DOB)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

// Delete removes a person record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	personID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM persons WHERE id = $1`, personID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
