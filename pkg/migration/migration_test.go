package migration

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

func TestRunRollbackStatus(t *testing.T) {
	Register("29990101000000_create_widgets_table", createWidgets{})

	db, err := database.Open(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(db, &out)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&widget{}))

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "29990101000000_create_widgets_table")
	assert.Contains(t, out.String(), "Ran")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&widget{}))

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"29990101000000_create_widgets_table"}, pending)
}
