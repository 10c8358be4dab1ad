package adminpanel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminPanel_SectionsAndRows(t *testing.T) {
	m := New("Brands", "Types")
	m.SetSize(100, 20)
	m.SetFocused(true)

	m.SetRows(0, []Row{{ID: "b1", Title: "Acer"}, {ID: "b2", Title: "Dell"}}, nil)
	assert.Contains(t, m.View(), "Acer")
	m.HandleKey("down")
	require.NotNil(t, m.Selected())
	assert.Equal(t, "b2", m.Selected().ID)

	m.NextSection()
	assert.Equal(t, "Types", m.SectionName())
	assert.Nil(t, m.Selected(), "switching empties the list")

	m.SetRows(0, []Row{{ID: "late"}}, nil)
	assert.Empty(t, m.Rows(), "rows of another section are dropped")

	m.PrevSection()
	m.PrevSection()
	assert.Equal(t, 1, m.Section(), "sections wrap around")
}

func TestAdminPanel_ShowsError(t *testing.T) {
	m := New("Brands")
	m.SetSize(100, 20)
	m.SetLoading(true)

	m.SetRows(0, nil, errors.New("forbidden"))
	assert.Contains(t, m.View(), "forbidden")

	m.SetLoading(true)
	assert.NotContains(t, m.View(), "forbidden")
}
