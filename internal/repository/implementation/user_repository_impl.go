package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userId).
		Update("password_hash", hash).Error
}

func (r *UserRepositoryImpl) TouchLastLogin(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userId).
		Update("last_login", time.Now()).Error
}

// Session implementations

func (r *UserRepositoryImpl) CreateSession(ctx context.Context, session *entity.UserSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) RevokeSession(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (r *UserRepositoryImpl) FindSession(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error) {
	var m model.UserSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}
