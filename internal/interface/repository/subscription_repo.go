package repository

import (
	"context"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSubscriptionRepository implements the SubscriptionRepository interface
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &GormSubscriptionRepository{
		db: db,
	}
}

// Subscriptionlist GORM model for database mapping
type Subscriptionlist struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Location  string         `gorm:"column:location;index"`
	Endpoint  string         `gorm:"column:endpoint;unique"`
	Label     string         `gorm:"column:label"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Subscriptionlist) TableName() string {
	return "m_subscription_list"
}

// FindAll returns every registered subscription
func (r *GormSubscriptionRepository) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	var rows []Subscriptionlist
	result := r.db.WithContext(ctx).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSubscriptions(rows), nil
}

// FindByLocation returns subscriptions registered for one location
func (r *GormSubscriptionRepository) FindByLocation(ctx context.Context, location string) ([]*entity.Subscription, error) {
	var rows []Subscriptionlist
	result := r.db.WithContext(ctx).Where("lower(location) = lower(?)", location).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSubscriptions(rows), nil
}

func toSubscriptions(rows []Subscriptionlist) []*entity.Subscription {
	subs := make([]*entity.Subscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, &entity.Subscription{
			ID:        row.ID,
			Location:  row.Location,
			Endpoint:  row.Endpoint,
			Label:     row.Label,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return subs
}
