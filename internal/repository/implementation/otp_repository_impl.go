package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type OtpRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewOtpRepository(db *gorm.DB) contract.OtpRepository {
	return &OtpRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *OtpRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OtpRepositoryImpl) Upsert(ctx context.Context, record *entity.PasswordResetOTP) error {
	m := r.mapper.OtpToModel(record)
	// ON CONFLICT (email): a fresh request overwrites the previous code so
	// only one record per address can ever be active.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "expires_at", "used", "created_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*record = *r.mapper.OtpToEntity(m)
	return nil
}

func (r *OtpRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetOTP, error) {
	var m model.PasswordResetOTP
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OtpToEntity(&m), nil
}

func (r *OtpRepositoryImpl) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PasswordResetOTP{}).
		Where("id = ?", id).
		Update("used", true).Error
}

func (r *OtpRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PasswordResetOTP{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
