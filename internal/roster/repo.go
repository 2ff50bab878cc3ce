package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-backend/internal/repo"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var extendedProfileTables = map[ProfileKind]string{
	ProfileKindFetchman: models.FetchmanProfile{}.TableName(),
	ProfileKindVendor:   models.VendorProfile{}.TableName(),
	ProfileKindHost:     models.HostProfile{}.TableName(),
}

// Repository implements Store on top of GORM.
type Repository struct {
	repo.Base
}

// NewRepository constructs a roster repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FetchProfilePage returns one page of profiles ordered by a stored column, id breaking ties.
func (r *Repository) FetchProfilePage(ctx context.Context, q PageQuery) ([]models.Profile, error) {
	if q.SortField.IsDerived() || !q.SortField.IsValid() {
		return nil, fmt.Errorf("cannot order profiles by %q", q.SortField)
	}
	if q.Page < 1 || q.PageSize < 1 {
		return nil, fmt.Errorf("invalid page %d/%d", q.Page, q.PageSize)
	}

	var rows []models.Profile
	err := r.DB(ctx).
		Model(&models.Profile{}).
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.SortField.String()},
			Desc:   q.SortOrder == enums.SortOrderDesc,
		}).
		Order("id").
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountProfiles returns the number of profiles regardless of role or status.
func (r *Repository) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FetchRoles returns the user's role rows oldest first.
func (r *Repository) FetchRoles(ctx context.Context, userID uuid.UUID) ([]enums.UserRole, error) {
	var raw []string
	err := r.DB(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Pluck("role", &raw).Error
	if err != nil {
		return nil, err
	}
	roles := make([]enums.UserRole, 0, len(raw))
	for _, role := range raw {
		roles = append(roles, enums.UserRole(role))
	}
	return roles, nil
}

type extendedProfileRow struct {
	VerificationStatus string
	IsSuspended        bool
}

// FetchExtendedProfile returns nil without error when the user has no row in the kind's table.
func (r *Repository) FetchExtendedProfile(ctx context.Context, kind ProfileKind, userID uuid.UUID) (*ExtendedProfile, error) {
	table, ok := extendedProfileTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown extended profile kind %q", kind)
	}

	var row extendedProfileRow
	err := r.DB(ctx).
		Table(table).
		Select("verification_status", "is_suspended").
		Where("user_id = ?", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ExtendedProfile{
		VerificationStatus: row.VerificationStatus,
		IsSuspended:        row.IsSuspended,
	}, nil
}
