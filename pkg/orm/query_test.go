package orm

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func seedWidgets(t *testing.T, q *Query, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, q.Create(&widget{Name: fmt.Sprintf("w%d", i)}))
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total      int64
		page       int
		wantPage   int
		wantPages  int
		wantOffset int
	}{
		{12, 1, 1, 3, 0},
		{12, 3, 3, 3, 10},
		{12, 0, 1, 3, 0},
		{12, -4, 1, 3, 0},
		{10, 2, 2, 2, 5},
		{0, 1, 1, 0, 0},
		{12, 9, 9, 3, 12},
		{3, math.MaxInt/5 + 2, math.MaxInt/5 + 2, 1, 3},
	}
	for _, tc := range cases {
		p := NewPagination(tc.total, tc.page, 5)
		assert.Equal(t, tc.wantPage, p.Page)
		assert.Equal(t, tc.wantPages, p.TotalPages)
		assert.Equal(t, tc.wantOffset, p.Offset())
		assert.Equal(t, 5, p.PageSize)
	}
}

func TestGetWithPagination(t *testing.T) {
	q := New(openDB(t))
	seedWidgets(t, q, 12)

	var page3 []widget
	p, err := q.Model(&widget{}).Order("id asc").GetWithPagination(&page3, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	require.Len(t, page3, 2)
	assert.Equal(t, "w11", page3[0].Name)
	assert.Equal(t, "w12", page3[1].Name)

	var beyond []widget
	_, err = q.Model(&widget{}).Order("id asc").GetWithPagination(&beyond, 9, 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestTransactionRollsBack(t *testing.T) {
	q := New(openDB(t))

	boom := errors.New("boom")
	err := q.Transaction(func(tx *Query) error {
		require.NoError(t, tx.Create(&widget{Name: "ghost"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := q.Model(&widget{}).Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteReportsRowsAffected(t *testing.T) {
	q := New(openDB(t))
	seedWidgets(t, q, 1)

	n, err := q.Delete(&widget{}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = q.Delete(&widget{}, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}
