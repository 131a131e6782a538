package carousel

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "position"}).
			AddRow("slide-1", "Summer sale", 1).
			AddRow("slide-2", "New arrivals", 2)
		mock.ExpectQuery("SELECT id, title, position FROM carousel").WillReturnRows(rows)

		items, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "slide-2", items[1].ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title, position FROM carousel").WillReturnError(errors.New("db error"))

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, ErrFailedListItems)
	})
}

func TestRepository_GetImage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT photo, photo_type FROM carousel WHERE id = \\$1").
			WithArgs("slide-1").
			WillReturnRows(sqlmock.NewRows([]string{"photo", "photo_type"}).AddRow([]byte{0xff, 0xd8}, "image/jpeg"))

		img, err := repo.GetImage(context.Background(), "slide-1")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.ContentType)
		assert.Equal(t, []byte{0xff, 0xd8}, img.Data)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT photo, photo_type FROM carousel").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetImage(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrImageNotFound)
	})

	t.Run("Empty photo", func(t *testing.T) {
		mock.ExpectQuery("SELECT photo, photo_type FROM carousel").
			WithArgs("blank").
			WillReturnRows(sqlmock.NewRows([]string{"photo", "photo_type"}).AddRow(nil, nil))

		_, err := repo.GetImage(context.Background(), "blank")
		assert.ErrorIs(t, err, ErrImageNotFound)
	})
}
