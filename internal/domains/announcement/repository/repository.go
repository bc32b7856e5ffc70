package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/internal/domains/announcement/model"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/logger"
	gRepo "myfunzone/shared/repository"
)

type Announcement interface {
	Insert(ctx context.Context, model model.Announcement) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Announcement, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetVisible(ctx context.Context, role, userID string, params gDto.QueryParams) ([]model.AnnouncementWithRead, error)
	CountVisible(ctx context.Context, role string) (int, error)
	MarkRead(ctx context.Context, read model.AnnouncementRead) error
	GetReaders(ctx context.Context, announcementID string) ([]model.Reader, error)
	GetNonReaders(ctx context.Context, announcementID, targetRole string) ([]model.Reader, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Announcement]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Announcement {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Announcement](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// visibleCondition keeps only announcements the role should see: still
// active, targeted at the role or everyone, and not past their expiry.
const visibleCondition = `
	announcements.active
	AND announcements.target_role IN (:role, :role_all)
	AND (announcements.expires_at IS NULL OR announcements.expires_at >= CURRENT_DATE)`

// GetVisible lists the announcements a user may see, pinned ones first,
// newest first within each group, with the user's own read marker joined
// in.
func (repo *repositoryImpl) GetVisible(ctx context.Context, role, userID string, params gDto.QueryParams) (res []model.AnnouncementWithRead, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".announcement.GetVisible")
	defer scope.End()

	query := fmt.Sprintf(`
		SELECT announcements.*, reads.id IS NOT NULL AS is_read
		FROM announcements
		LEFT JOIN announcement_reads AS reads
			ON reads.announcement_id = announcements.id AND reads.user_id = :user_id
		WHERE %s
		ORDER BY announcements.is_pinned DESC, announcements.created_at DESC
		LIMIT :limit OFFSET :offset`, visibleCondition)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"role":     role,
		"role_all": constant.TargetRoleAll,
		"user_id":  userID,
		"limit":    params.Limit,
		"offset":   (params.Page - 1) * params.Limit,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	res = []model.AnnouncementWithRead{}
	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) CountVisible(ctx context.Context, role string) (res int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".announcement.CountVisible")
	defer scope.End()

	query := fmt.Sprintf(`SELECT COUNT(*) FROM announcements WHERE %s`, visibleCondition)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"role":     role,
		"role_all": constant.TargetRoleAll,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	return res, nil
}

// MarkRead records that a user opened an announcement. Re-reading is a
// no-op, the unique pair constraint absorbs the conflict.
func (repo *repositoryImpl) MarkRead(ctx context.Context, read model.AnnouncementRead) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".announcement.MarkRead")
	defer scope.End()

	query := `
		INSERT INTO announcement_reads (id, announcement_id, user_id, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :announcement_id, :user_id, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (announcement_id, user_id) DO NOTHING`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, read); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to mark announcement as read: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetReaders(ctx context.Context, announcementID string) (res []model.Reader, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".announcement.GetReaders")
	defer scope.End()

	query := `
		SELECT users.id AS user_id, users.username, users.role, reads.created_at AS read_at
		FROM announcement_reads AS reads
		JOIN users ON users.id = reads.user_id
		WHERE reads.announcement_id = :announcement_id
		ORDER BY reads.created_at ASC`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"announcement_id": announcementID,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	res = []model.Reader{}
	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get readers: %w", err)
	}

	return res, nil
}

// GetNonReaders lists the active users the announcement targets who have
// not opened it.
func (repo *repositoryImpl) GetNonReaders(ctx context.Context, announcementID, targetRole string) (res []model.Reader, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".announcement.GetNonReaders")
	defer scope.End()

	query := `
		SELECT users.id AS user_id, users.username, users.role, NULL::timestamptz AS read_at
		FROM users
		WHERE users.active
			AND (:target_role = :role_all OR users.role = :target_role)
			AND NOT EXISTS (
				SELECT 1
				FROM announcement_reads
				WHERE announcement_id = :announcement_id AND user_id = users.id
			)
		ORDER BY users.username ASC`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"announcement_id": announcementID,
		"target_role":     targetRole,
		"role_all":        constant.TargetRoleAll,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	res = []model.Reader{}
	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get non-readers: %w", err)
	}

	return res, nil
}
