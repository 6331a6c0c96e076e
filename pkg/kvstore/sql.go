package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/packfinderz-cart/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRow maps the cart_snapshots table created by pkg/migrate.
type snapshotRow struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey"`
	Payload    string    `gorm:"column:payload;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (snapshotRow) TableName() string { return "cart_snapshots" }

// SQL stores values in the cart_snapshots table, upserting on write.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) *SQL {
	return &SQL{client: client, now: time.Now}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var row snapshotRow
	err := s.client.DB().WithContext(ctx).
		Where("storage_key = ?", key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Payload, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	row := snapshotRow{StorageKey: key, Payload: value, UpdatedAt: s.now().UTC()}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
