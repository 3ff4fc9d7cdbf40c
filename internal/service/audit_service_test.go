package service

import (
	"context"
	"testing"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/repository"
	"pharmacy-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuditService_WritesWithinTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)
	ctx := context.Background()
	actor := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.LogUpdate(ctx, tx, &actor, entity.AuditActionOrderStatusUpdate, "order", "o-1", "pending", "shipped")
	})
	require.NoError(t, err)

	logs, total, err := repo.FindAll(ctx, db, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, entity.AuditActionOrderStatusUpdate, logs[0].Action)
	assert.Equal(t, actor, *logs[0].ActorID)
	assert.Equal(t, "shipped", logs[0].Metadata["new_value"])
	assert.Equal(t, "pending", logs[0].Metadata["old_value"])
}

func TestAuditService_RolledBackWithCaller(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)
	ctx := context.Background()

	_ = db.Transaction(func(tx *gorm.DB) error {
		if err := svc.Record(ctx, tx, nil, entity.AuditActionProductSeed, entity.JSON{"inserted": 12}); err != nil {
			return err
		}
		return assert.AnError
	})

	_, total, err := repo.FindAll(ctx, db, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
