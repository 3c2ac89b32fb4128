package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/propstack/pkg/database"
	"github.com/ghuser/propstack/pkg/events"
	invitedomain "github.com/ghuser/propstack/services/invite/domain"
	domainevents "github.com/ghuser/propstack/services/invite/domain/events"
	"github.com/ghuser/propstack/services/invite/domain/models"
	"github.com/ghuser/propstack/services/invite/domain/repositories"
)

const inviteColumns = "id, org_id, code, email, role, status, created_at, expires_at, redeemed_at"

// InviteRepository implements repositories.InviteRepository against PostgreSQL.
type InviteRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewInviteRepository returns an InviteRepository backed by the given
// connection pool and event bus. The bus is used to publish invite lifecycle
// events in the same transaction as the row change (outbox pattern).
func NewInviteRepository(db *database.Database, bus *events.EventBus) *InviteRepository {
	return &InviteRepository{db: db, bus: bus}
}

// Save persists a new Invite and publishes InviteCreatedEvent within the same
// transaction. The unique index on code is the final word on uniqueness: a
// code that passed CodeExists but was claimed concurrently surfaces here as
// ErrInviteAlreadyExists, and callers should resolve a fresh code and retry.
func (r *InviteRepository) Save(ctx context.Context, invite *models.Invite) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invites (`+inviteColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			invite.ID, invite.OrgID, invite.Code.String(), invite.Email,
			string(invite.Role), string(invite.Status),
			invite.CreatedAt, invite.ExpiresAt, invite.RedeemedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return invitedomain.ErrInviteAlreadyExists
			}
			return fmt.Errorf("insert invite: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, invite); err != nil {
				return fmt.Errorf("publish invite created: %w", err)
			}
		}
		return nil
	})
}

// GetByCode retrieves an invite by its code. Returns ErrInviteNotFound when
// no invite holds the code. The lookup is cross-org: redemption happens
// before the redeeming user belongs to any org.
func (r *InviteRepository) GetByCode(ctx context.Context, code models.InviteCode) (*models.Invite, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+inviteColumns+` FROM invites WHERE code = $1`,
		code.String(),
	)
	invite, err := scanInvite(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invitedomain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("query invite by code: %w", err)
	}
	return invite, nil
}

// GetByID retrieves an invite by ID scoped to the given org.
func (r *InviteRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Invite, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+inviteColumns+` FROM invites WHERE id = $1 AND org_id = $2`,
		id, orgID,
	)
	invite, err := scanInvite(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invitedomain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("query invite by id: %w", err)
	}
	return invite, nil
}

// FindByOrgID retrieves a paginated list of invites and total count for the org.
func (r *InviteRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Invite, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+inviteColumns+` FROM invites
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query invites: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var invites []*models.Invite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invites: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT count(*) FROM invites WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invites: %w", err)
	}

	return invites, total, nil
}

// UpdateStatus persists a lifecycle transition and publishes the matching
// event (redeemed, revoked) in the same transaction.
func (r *InviteRepository) UpdateStatus(ctx context.Context, invite *models.Invite) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE invites SET status = $1, redeemed_at = $2 WHERE id = $3`,
			string(invite.Status), invite.RedeemedAt, invite.ID,
		)
		if err != nil {
			return fmt.Errorf("update invite status: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return invitedomain.ErrInviteNotFound
		}

		if r.bus == nil {
			return nil
		}
		switch invite.Status {
		case models.StatusRedeemed:
			return r.publishStatus(tx, invite, domainevents.TopicInviteRedeemed)
		case models.StatusRevoked:
			return r.publishStatus(tx, invite, domainevents.TopicInviteRevoked)
		}
		return nil
	})
}

// CodeExists reports whether any invite holds the given code. This is the
// existence oracle for the uniqueness resolver — a pure lookup, no locking.
func (r *InviteRepository) CodeExists(ctx context.Context, code models.InviteCode) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invites WHERE code = $1)`,
		code.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invite code exists: %w", err)
	}
	return exists, nil
}

func (r *InviteRepository) publishCreated(tx *sql.Tx, invite *models.Invite) error {
	event := domainevents.InviteCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		InviteID:   invite.ID,
		OrgID:      invite.OrgID,
		Code:       invite.Code.String(),
		Email:      invite.Email,
		Role:       string(invite.Role),
		ExpiresAt:  invite.ExpiresAt,
		OccurredAt: invite.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicInviteCreated, event.EventID, event)
}

func (r *InviteRepository) publishStatus(tx *sql.Tx, invite *models.Invite, topic string) error {
	occurred := invite.CreatedAt
	if invite.RedeemedAt != nil {
		occurred = *invite.RedeemedAt
	}
	event := domainevents.InviteRedeemedEvent{
		EventID:    uuid.New(),
		Version:    1,
		InviteID:   invite.ID,
		OrgID:      invite.OrgID,
		Code:       invite.Code.String(),
		OccurredAt: occurred,
	}
	return r.publish(tx, topic, event.EventID, event)
}

func (r *InviteRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvite(s scanner) (*models.Invite, error) {
	var (
		invite models.Invite
		code   string
		role   string
		status string
	)
	if err := s.Scan(
		&invite.ID, &invite.OrgID, &code, &invite.Email, &role, &status,
		&invite.CreatedAt, &invite.ExpiresAt, &invite.RedeemedAt,
	); err != nil {
		return nil, err
	}
	invite.Code = models.InviteCode(code)
	invite.Role = models.Role(role)
	invite.Status = models.Status(status)
	return &invite, nil
}
