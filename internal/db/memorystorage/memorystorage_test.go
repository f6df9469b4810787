package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

func Test(t *testing.T) {
	t.Run("The base memorystorage package test", func(t *testing.T) {
		theStorage, err := New(models.User{ID: 1, Name: "Leanne Graham"})
		require.NoError(t, err, "The memorystorage.New() should not return error")

		users := theStorage.ReadAll(context.Background())
		assert.Equal(t, []models.User{{ID: 1, Name: "Leanne Graham"}}, users)

		users[0].Name = "changed by caller"
		assert.Equal(t, "Leanne Graham", theStorage.ReadAll(context.Background())[0].Name, "ReadAll should return a copy")

		err = theStorage.WriteAll(context.Background(), append(users, models.User{ID: 2}))
		assert.NoError(t, err, "The `theStorage.WriteAll()` should not return error")
		assert.Len(t, theStorage.ReadAll(context.Background()), 2)

		err = theStorage.Ping(context.Background())
		assert.NoError(t, err, "The memorystorage.Ping() should not return error")

		err = theStorage.Close()
		assert.NoError(t, err, "The memorystorage.Close() should not return error")
	})

	t.Run("empty storage reads as an empty collection", func(t *testing.T) {
		theStorage, err := New()
		require.NoError(t, err)

		assert.Equal(t, []models.User{}, theStorage.ReadAll(context.Background()))
	})
}
