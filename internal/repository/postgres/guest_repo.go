package postgres

import (
	"context"
	"database/sql"
	"errors"

	"guestlist/internal/domain"
)

type guestRepository struct {
	db Querier
}

func NewGuestRepository(db Querier) domain.GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (event_id, name, contact, party_size, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, g.EventID, g.Name, g.Contact, g.PartySize, g.Note, g.CreatedAt).Scan(&g.ID)
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `
		SELECT id, event_id, name, contact, party_size, note, created_at
		FROM guests
		WHERE id = $1
	`
	g := &domain.Guest{}
	var contactNull, noteNull sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.EventID, &g.Name, &contactNull, &g.PartySize, &noteNull, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if contactNull.Valid {
		g.Contact = &contactNull.String
	}
	if noteNull.Valid {
		g.Note = &noteNull.String
	}
	return g, nil
}

func (r *guestRepository) ListByEventID(ctx context.Context, eventID string, limit, offset int) ([]*domain.Guest, error) {
	query := `
		SELECT id, event_id, name, contact, party_size, note, created_at
		FROM guests
		WHERE event_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var contactNull, noteNull sql.NullString
		if err := rows.Scan(&g.ID, &g.EventID, &g.Name, &contactNull, &g.PartySize, &noteNull, &g.CreatedAt); err != nil {
			return nil, err
		}
		if contactNull.Valid {
			g.Contact = &contactNull.String
		}
		if noteNull.Valid {
			g.Note = &noteNull.String
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM guests WHERE event_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *guestRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM guests WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
