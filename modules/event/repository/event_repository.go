package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventRepository handles event database operations, including the
// event_categories junction. Writes that touch both tables run in a single
// transaction.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event, categoryIDs []uuid.UUID) (*entity.EventWithSeats, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EventWithSeats, error)
	Update(ctx context.Context, event *entity.Event, categoryIDs []uuid.UUID) (*entity.EventWithSeats, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublic(ctx context.Context) ([]entity.EventWithSeats, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.EventWithSeats, error)
	Search(ctx context.Context, query string, tags []string) ([]entity.EventWithSeats, error)
	GetCategoriesForEvent(ctx context.Context, eventID uuid.UUID) ([]entity.CategoryRef, error)
	GetCategoriesForEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]entity.CategoryRef, error)
}

// eventColumns selects the event row plus the aggregated seat count over
// "going" RSVPs. The alias e must be in scope.
const eventColumns = `
	e.id, e.title, e.description, e.wishlist, e.starts_at, e.ends_at,
	e.capacity, e.is_public, e.address_line1, e.address_line2,
	e.organizer_id, e.created_at, e.updated_at,
	COALESCE((
		SELECT SUM(1 + r.guests_count)
		FROM rsvps r
		WHERE r.event_id = e.id AND r.status = 'going'
	), 0) AS seats_taken`

func (r *EventRepository) Create(ctx context.Context, event *entity.Event, categoryIDs []uuid.UUID) (*entity.EventWithSeats, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (title, description, wishlist, starts_at, ends_at,
			capacity, is_public, address_line1, address_line2, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var eventID uuid.UUID
	err = tx.GetContext(ctx, &eventID, query,
		event.Title, event.Description, event.Wishlist, event.StartsAt, event.EndsAt,
		event.Capacity, event.IsPublic, event.AddressLine1, event.AddressLine2, event.OrganizerID)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	if err := insertCategories(ctx, tx, eventID, categoryIDs); err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return r.GetByID(ctx, eventID)
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EventWithSeats, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	var event entity.EventWithSeats
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

// Update replaces the editable columns and the category set in one
// transaction.
func (r *EventRepository) Update(ctx context.Context, event *entity.Event, categoryIDs []uuid.UUID) (*entity.EventWithSeats, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:Update", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE events SET
			title = $2, description = $3, wishlist = $4, starts_at = $5,
			ends_at = $6, capacity = $7, is_public = $8,
			address_line1 = $9, address_line2 = $10, updated_at = now()
		WHERE id = $1`

	if _, err = tx.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Wishlist, event.StartsAt,
		event.EndsAt, event.Capacity, event.IsPublic, event.AddressLine1, event.AddressLine2); err != nil {
		logger.Error("EventRepository:Update", err)
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_categories WHERE event_id = $1`, event.ID); err != nil {
		logger.Error("EventRepository:Update", err)
		return nil, err
	}

	if err := insertCategories(ctx, tx, event.ID, categoryIDs); err != nil {
		logger.Error("EventRepository:Update", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:Update", err)
		return nil, err
	}

	return r.GetByID(ctx, event.ID)
}

// Delete removes the event row; rsvps, comments, ratings and the category
// junction follow via ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:Delete", err)
		return err
	}
	return nil
}

func (r *EventRepository) ListPublic(ctx context.Context) ([]entity.EventWithSeats, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.is_public ORDER BY e.starts_at`

	var events []entity.EventWithSeats
	err := r.DB.SelectContext(ctx, &events, query)
	if err != nil {
		logger.Error("EventRepository:ListPublic", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.EventWithSeats, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.organizer_id = $1 ORDER BY e.starts_at`

	var events []entity.EventWithSeats
	err := r.DB.SelectContext(ctx, &events, query, organizerID)
	if err != nil {
		logger.Error("EventRepository:ListByOrganizer", err)
		return nil, err
	}

	return events, nil
}

// buildSearchQuery assembles the filtered listing: one %substring% pattern
// applied with ILIKE across the textual columns, then one category-name
// clause per tag so every tag must match (AND-intersection). With no query
// and no tags it degenerates to the public listing.
func buildSearchQuery(query string, tags []string) (string, []any) {
	sqlQuery := `SELECT ` + eventColumns + ` FROM events e WHERE e.is_public`
	args := []any{}

	if query != "" {
		args = append(args, "%"+query+"%")
		n := len(args)
		sqlQuery += fmt.Sprintf(` AND (e.title ILIKE $%d OR e.description ILIKE $%d OR e.wishlist ILIKE $%d
			OR e.address_line1 ILIKE $%d OR e.address_line2 ILIKE $%d)`, n, n, n, n, n)
	}

	for _, tag := range tags {
		args = append(args, tag)
		sqlQuery += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM event_categories ec
			JOIN categories c ON c.id = ec.category_id
			WHERE ec.event_id = e.id AND c.name ILIKE $%d)`, len(args))
	}

	sqlQuery += ` ORDER BY e.starts_at`
	return sqlQuery, args
}

// Search matches a case-insensitive substring over the textual columns and
// intersects every tag against the event's own category names. An empty
// query with no tags returns all public events.
func (r *EventRepository) Search(ctx context.Context, query string, tags []string) ([]entity.EventWithSeats, error) {
	sqlQuery, args := buildSearchQuery(query, tags)

	var events []entity.EventWithSeats
	err := r.DB.SelectContext(ctx, &events, sqlQuery, args...)
	if err != nil {
		logger.Error("EventRepository:Search", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) GetCategoriesForEvent(ctx context.Context, eventID uuid.UUID) ([]entity.CategoryRef, error) {
	query := `
		SELECT c.id, c.slug, c.name
		FROM event_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id = $1
		ORDER BY c.name`

	var categories []entity.CategoryRef
	err := r.DB.SelectContext(ctx, &categories, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetCategoriesForEvent", err)
		return nil, err
	}

	return categories, nil
}

// GetCategoriesForEvents batches the junction lookup for listings.
func (r *EventRepository) GetCategoriesForEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]entity.CategoryRef, error) {
	result := make(map[uuid.UUID][]entity.CategoryRef, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ec.event_id, c.id, c.slug, c.name
		FROM event_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id = ANY($1)
		ORDER BY c.name`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		logger.Error("EventRepository:GetCategoriesForEvents", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID uuid.UUID
		var ref entity.CategoryRef
		if err := rows.Scan(&eventID, &ref.ID, &ref.Slug, &ref.Name); err != nil {
			logger.Error("EventRepository:GetCategoriesForEvents", err)
			return nil, err
		}
		result[eventID] = append(result[eventID], ref)
	}
	if err := rows.Err(); err != nil {
		logger.Error("EventRepository:GetCategoriesForEvents", err)
		return nil, err
	}

	return result, nil
}

func insertCategories(ctx context.Context, tx execer, eventID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_categories (event_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			eventID, categoryID)
		if err != nil {
			return err
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
