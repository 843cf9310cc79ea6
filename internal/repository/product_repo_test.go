package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

func newMockRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewProductRepository(db), mock
}

func productColumns() []string {
	return []string{"id", "model", "category", "quantity", "details", "selling_price", "arrival_date", "created_at"}
}

func productRow(id int, model string, category models.Category, quantity int) *sqlmock.Rows {
	arrival := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(productColumns()).
		AddRow(id, model, string(category), quantity, "details", "500.00", arrival, time.Now())
}

func TestGetByModel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM products WHERE model = $1`)).
		WithArgs("X").
		WillReturnRows(productRow(1, "X", models.CategoryLaptop, 10))

	p, err := repo.GetByModel(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, "X", p.Model)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, "2024-01-01", p.ArrivalDate.String())
	assert.Equal(t, "500.00", p.SellingPrice.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByModelNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM products WHERE model = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByModel(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllOrdersByInsertion(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(productColumns())
	arrival := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows.AddRow(1, "A", "Laptop", 3, "d", "100.00", arrival, time.Now())
	rows.AddRow(2, "B", "Smartphone", 0, "d", "200.00", arrival, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM products ORDER BY id`)).
		WillReturnRows(rows)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Model)
	assert.Equal(t, "B", products[1].Model)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products`)).
		WillReturnError(&pq.Error{Code: "23505"})

	product := &models.Product{Model: "X", Category: models.CategoryLaptop, Quantity: 1}
	err := repo.Insert(context.Background(), product)
	assert.ErrorIs(t, err, utils.ErrProductAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddQuantityReturnsNewQuantity(t *testing.T) {
	repo, mock := newMockRepo(t)
	changeDate, _ := models.ParseDate("2024-03-01")

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE products`)).
		WithArgs("X", 5, changeDate).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(15))

	quantity, err := repo.AddQuantity(context.Background(), "X", 5, changeDate)
	require.NoError(t, err)
	assert.Equal(t, 15, quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveQuantityUnmatchedRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	sellDate, _ := models.ParseDate("2024-03-01")

	// no row satisfies the stock or date conditions
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE products`)).
		WithArgs("X", 99, sellDate).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

	_, err := repo.RemoveQuantity(context.Background(), "X", 99, sellDate)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByModel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE model = $1`)).
		WithArgs("X").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByModel(context.Background(), "X")
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE model = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.DeleteByModel(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}
