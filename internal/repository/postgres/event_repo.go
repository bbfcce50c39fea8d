package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestlist/internal/domain"
)

type eventRepository struct {
	db Querier
}

func NewEventRepository(db Querier) domain.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = "id, owner_id, link_token, name, date, venue, description, created_at, updated_at"

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var dateNull sql.NullTime
	var venueNull, descNull sql.NullString
	err := row.Scan(&e.ID, &e.OwnerID, &e.LinkToken, &e.Name, &dateNull, &venueNull, &descNull, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyNulls(e, dateNull, venueNull, descNull)
	return e, nil
}

func applyNulls(e *domain.Event, dateNull sql.NullTime, venueNull, descNull sql.NullString) {
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	if venueNull.Valid {
		e.Venue = &venueNull.String
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, link_token, name, date, venue, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, e.OwnerID, e.LinkToken, e.Name, e.Date, e.Venue, e.Description, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	return scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByLinkToken(ctx context.Context, linkToken string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE link_token = $1`, eventColumns)
	return scanEvent(r.db.QueryRowContext(ctx, query, strings.TrimSpace(linkToken)))
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, eventColumns)
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var dateNull sql.NullTime
		var venueNull, descNull sql.NullString
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.LinkToken, &e.Name, &dateNull, &venueNull, &descNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		applyNulls(e, dateNull, venueNull, descNull)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, date *time.Time, venue, description *string) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *date)
		n++
	}
	if venue != nil {
		setClauses = append(setClauses, fmt.Sprintf("venue = $%d", n))
		args = append(args, *venue)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	return scanEvent(r.db.QueryRowContext(ctx, query, args...))
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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
