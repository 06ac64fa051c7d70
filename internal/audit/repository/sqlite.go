package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_logs (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	actor      TEXT NOT NULL DEFAULT '',
	kind       TEXT NOT NULL,
	action     TEXT NOT NULL,
	target_id  TEXT NOT NULL,
	succeeded  BOOLEAN NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_action_logs_created_at ON action_logs (created_at);
CREATE INDEX IF NOT EXISTS idx_action_logs_kind_target ON action_logs (kind, target_id);
`

type SQLiteRepository struct {
	DB *sqlx.DB
}

// Open connects to the sqlite database at dsn and creates the schema.
func Open(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	// sqlite serializes writers; one connection also keeps ":memory:" shared.
	db.SetMaxOpenConns(1)

	repo := NewSQLiteRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.DB.Close()
}

func (r *SQLiteRepository) LogAction(ctx context.Context, entry *model.ActionLog) error {
	query := `
        INSERT INTO action_logs (
            id, session_id, actor, kind, action, target_id, succeeded, message, created_at
        )
        VALUES (
            :id, :session_id, :actor, :kind, :action, :target_id, :succeeded, :message, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *SQLiteRepository) ListActions(ctx context.Context, f *dto.ActionFilters) ([]model.ActionLog, int, error) {
	items := []model.ActionLog{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.Action != "" {
		conditions = append(conditions, "action = :action")
		args["action"] = f.Action
	}
	if f.SessionID != "" {
		conditions = append(conditions, "session_id = :session_id")
		args["session_id"] = f.SessionID
	}
	if f.TargetID != "" {
		conditions = append(conditions, "target_id = :target_id")
		args["target_id"] = f.TargetID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM action_logs" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := "SELECT * FROM action_logs" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
