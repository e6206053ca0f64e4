package products

import (
	"context"
	"testing"
	"time"

	"restaurant-panel/internal/database/dbtest"
	"restaurant-panel/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepository_ListSearch(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE restaurant_id = \$1 AND \(+LOWER\(name\) LIKE \$2 OR LOWER\(description\) LIKE \$3\)+`).
		WithArgs(7, "%so\\_up%", "%so\\_up%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "price_after"}).AddRow(1, 7, "So_up", 40.0))

	list, err := NewGormRepository(db).List(context.Background(), 7, " SO_UP ")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 40.0, list[0].PriceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_UpdateGuardsVersion(t *testing.T) {
	version := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	updateSQL := `UPDATE "products" SET .*"meals_count"=.* WHERE id = \$\d+ AND restaurant_id = \$\d+ AND updated_at = \$\d+`

	db, mock := dbtest.New(t)
	mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	// an accepted order moved updated_at in between: nothing matches
	mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGormRepository(db)
	p := &models.Product{ID: 3, RestaurantID: 7, Name: "Pide", MealsCount: 10, UpdatedAt: version.Add(time.Hour)}

	require.NoError(t, repo.Update(context.Background(), p, version))
	assert.ErrorIs(t, repo.Update(context.Background(), p, version), ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Delete(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1 AND restaurant_id = \$2`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGormRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 7, 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 7, 3), ErrNotFound)
}

func TestGormRepository_Count(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE restaurant_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := NewGormRepository(db).Count(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
