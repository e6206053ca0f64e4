package audit

import (
	"context"
	"errors"
	"testing"

	"restaurant-panel/internal/database/dbtest"
	"restaurant-panel/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntry(t *testing.T) {
	entry := buildEntry(LogOptions{
		RestaurantID: 4,
		UserID:       4,
		EntityType:   "order",
		EntityID:     12,
		Action:       models.AuditActionStatus,
		Before:       map[string]string{"status": "placed"},
	})

	assert.Equal(t, uint(4), entry.RestaurantID)
	assert.JSONEq(t, `{"status":"placed"}`, entry.BeforeData)
	assert.Equal(t, "null", entry.AfterData)
}

func TestSnapshot_Unmarshalable(t *testing.T) {
	assert.Equal(t, "null", snapshot(make(chan int)))
}

func TestGormRecorder_WriteLog(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := NewGormRecorder(db).WriteLog(context.Background(), LogOptions{
		RestaurantID: 1,
		EntityType:   "product",
		EntityID:     3,
		Action:       models.AuditActionDelete,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecorder_WriteLogError(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnError(errors.New("disk full"))

	err := NewGormRecorder(db).WriteLog(context.Background(), LogOptions{RestaurantID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit log could not be saved")
}

func TestGormRecorder_List(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE restaurant_id = \$1 AND entity_type = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "entity_type", "entity_id", "action"}).
			AddRow(2, 1, "order", 9, "status").
			AddRow(1, 1, "order", 9, "status"))

	logs, err := NewGormRecorder(db).List(context.Background(), 1, ListFilter{EntityType: "order"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionStatus, logs[0].Action)
}
