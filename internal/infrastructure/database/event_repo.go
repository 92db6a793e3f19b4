package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository stores each event as one JSONB row. Save is a synchronous
// upsert of the full record.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	return r.findOne(ctx, `SELECT data FROM events WHERE id = $1`, id)
}

func (r *EventRepository) FindByMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	if messageID == "" {
		return nil, domain.ErrEventNotFound
	}
	return r.findOne(ctx, `SELECT data FROM events WHERE message_id = $1 LIMIT 1`, messageID)
}

func (r *EventRepository) findOne(ctx context.Context, query string, arg string) (*entities.Event, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, query, arg).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return eventToDomain(data)
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*entities.Event, error) {
	return r.findMany(ctx, `SELECT data FROM events ORDER BY created_at, id`)
}

func (r *EventRepository) FindActive(ctx context.Context) ([]*entities.Event, error) {
	return r.findMany(ctx, `SELECT data FROM events WHERE status = $1 ORDER BY created_at, id`, string(entities.StatusActive))
}

func (r *EventRepository) findMany(ctx context.Context, query string, args ...any) ([]*entities.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]*entities.Event, 0, len(payloads))
	for _, data := range payloads {
		e, err := eventToDomain(data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EventRepository) Save(ctx context.Context, event *entities.Event) error {
	row, err := eventToRow(event)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO events (id, message_id, status, created_at, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			message_id = EXCLUDED.message_id,
			status     = EXCLUDED.status,
			data       = EXCLUDED.data,
			updated_at = now()`,
		row.ID, row.MessageID, row.Status, row.CreatedAt, row.Data)
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepository) NextID() string {
	return uuid.Must(uuid.NewV7()).String()
}
