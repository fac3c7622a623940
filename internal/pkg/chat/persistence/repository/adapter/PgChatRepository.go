package adapter

import (
	"context"
	"errors"

	chat "parley/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, ownerID, title string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var conv chat.Conversation
	conv.Title = title
	conv.OwnerID = ownerID
	err = tx.QueryRow(ctx, `
		INSERT INTO conversation (title, owner_id)
		VALUES ($1, $2::uuid)
		RETURNING id::text, created_at, updated_at
	`, title, ownerID).Scan(&conv.ID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}

	var member chat.Membership
	member.ConversationID = conv.ID
	member.UserID = ownerID
	err = tx.QueryRow(ctx, `
		INSERT INTO conversation_member (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text, joined_at
	`, conv.ID, ownerID).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		return nil, translatePgError(err)
	}

	var owner chat.Profile
	err = tx.QueryRow(ctx, `
		SELECT id::text, name, avatar FROM app_user WHERE id = $1::uuid
	`, ownerID).Scan(&owner.ID, &owner.Name, &owner.Avatar)
	if err != nil {
		return nil, translatePgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	member.User = &owner
	conv.Members = []chat.Membership{member}
	return &conv, nil
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.title, c.owner_id::text, c.created_at, c.updated_at,
		       (SELECT count(*) FROM message m WHERE m.conversation_id = c.id)
		FROM conversation c
		JOIN conversation_member cm ON cm.conversation_id = c.id
		WHERE cm.user_id = $1::uuid
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	ids := make([]string, 0, 8)
	for rows.Next() {
		var c chat.Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt, &c.MessageCount); err != nil {
			return nil, err
		}
		convs = append(convs, c)
		ids = append(ids, c.ID)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if len(convs) == 0 {
		return convs, nil
	}

	// Hydrate members for all returned conversations in one query.
	mrows, err := r.pool.Query(ctx, `
		SELECT cm.id::text, cm.conversation_id::text, cm.user_id::text, cm.joined_at,
		       u.name, u.avatar
		FROM conversation_member cm
		JOIN app_user u ON u.id = cm.user_id
		WHERE cm.conversation_id = ANY($1::uuid[])
		ORDER BY cm.joined_at ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()

	byConv := make(map[string][]chat.Membership, len(convs))
	for mrows.Next() {
		var m chat.Membership
		var u chat.Profile
		if err := mrows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.JoinedAt, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}
		u.ID = m.UserID
		m.User = &u
		byConv[m.ConversationID] = append(byConv[m.ConversationID], m)
	}
	if mrows.Err() != nil {
		return nil, mrows.Err()
	}
	for i := range convs {
		convs[i].Members = byConv[convs[i].ID]
	}
	return convs, nil
}

func (r *PgChatRepository) IsMember(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_member
			WHERE conversation_id = $1::uuid AND user_id = $2::uuid
		)
	`, conversationID, userID).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) AddMember(ctx context.Context, conversationID, userID string) (*chat.Membership, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	// The unique constraint on (conversation_id, user_id) closes the
	// check-then-create race: a concurrent duplicate insert surfaces here
	// as ErrAlreadyMember instead of a second row.
	var m chat.Membership
	m.ConversationID = conversationID
	m.UserID = userID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversation_member (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (conversation_id, user_id) DO NOTHING
		RETURNING id::text, joined_at
	`, conversationID, userID).Scan(&m.ID, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrAlreadyMember
	}
	if err != nil {
		return nil, translatePgError(err)
	}

	var u chat.Profile
	err = r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, avatar FROM app_user WHERE id = $1::uuid
	`, userID).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar)
	if err != nil {
		return nil, translatePgError(err)
	}
	m.User = &u
	return &m, nil
}

func (r *PgChatRepository) ListMembers(ctx context.Context, conversationID string) ([]chat.Membership, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT cm.id::text, cm.conversation_id::text, cm.user_id::text, cm.joined_at,
		       u.name, u.email, u.avatar
		FROM conversation_member cm
		JOIN app_user u ON u.id = cm.user_id
		WHERE cm.conversation_id = $1::uuid
		ORDER BY cm.joined_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []chat.Membership
	for rows.Next() {
		var m chat.Membership
		var u chat.Profile
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.JoinedAt, &u.Name, &u.Email, &u.Avatar); err != nil {
			return nil, err
		}
		u.ID = m.UserID
		m.User = &u
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return members, nil
}

func (r *PgChatRepository) FindOrCreateGeneral(ctx context.Context, ownerID string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}

	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id::text FROM conversation WHERE title = $1`, chat.GeneralTitle,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	// First post ever: create it with the acting user as owner and member.
	// The partial unique index over title = 'General' makes concurrent
	// creators converge on one row; the loser re-reads.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO conversation (title, owner_id)
		VALUES ($1, $2::uuid)
		ON CONFLICT (title) WHERE title = 'General' DO NOTHING
		RETURNING id::text
	`, chat.GeneralTitle, ownerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.generalID(ctx)
	}
	if err != nil {
		return "", translatePgError(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO conversation_member (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (conversation_id, user_id) DO NOTHING
	`, id, ownerID)
	if err != nil {
		return "", translatePgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) generalID(ctx context.Context) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id::text FROM conversation WHERE title = $1`, chat.GeneralTitle,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO message (conversation_id, user_id, role, content)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text, created_at
	`, m.ConversationID, m.UserID, m.Role, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE conversation SET updated_at = now() WHERE id = $1::uuid`, m.ConversationID)
	if err != nil {
		return nil, err
	}

	if m.UserID != nil {
		var a chat.Author
		err = tx.QueryRow(ctx,
			`SELECT name, avatar FROM app_user WHERE id = $1::uuid`, *m.UserID,
		).Scan(&a.Name, &a.Avatar)
		if err != nil {
			return nil, translatePgError(err)
		}
		m.User = &a
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	query := `
		SELECT m.id::text, m.conversation_id::text, m.user_id::text, m.role, m.content, m.created_at,
		       u.name, u.avatar
		FROM message m
		LEFT JOIN app_user u ON u.id = m.user_id
	`
	args := []any{}
	if conversationID != "" {
		query += ` WHERE m.conversation_id = $1::uuid`
		args = append(args, conversationID)
	}
	query += ` ORDER BY m.created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		var name, avatar *string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt, &name, &avatar); err != nil {
			return nil, err
		}
		if name != nil {
			m.User = &chat.Author{Name: *name, Avatar: avatar}
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

// translatePgError maps constraint violations onto domain errors so the
// application layer never sees driver types.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return chat.ErrAlreadyMember
		case pgForeignKeyViolation:
			return chat.ErrNotFound
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.ErrNotFound
	}
	return err
}
