package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"canvaspilot.io/canvaspilot/internal/models"
	"canvaspilot.io/canvaspilot/internal/testutil"
)

// Shared fixtures for the service tests.

func seedUser(t *testing.T, db *gorm.DB, handle string) *models.User {
	t.Helper()
	u := &models.User{
		UserID:   handle,
		Username: handle,
		Email:    handle + "@example.com",
		Password: "$2a$10$fixture",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func actorFor(u *models.User) Actor {
	return Actor{ID: u.ID, Handle: u.UserID}
}

func adminActor() Actor {
	return Actor{ID: -1, Handle: "admin", Roles: []string{RoleAdmin}}
}

// seedTree creates owner -> project -> page -> object and returns all four.
func seedTree(t *testing.T, db *gorm.DB, handle string) (*models.User, *models.Project, *models.Page, *models.PageObject) {
	t.Helper()
	u := seedUser(t, db, handle)

	p := &models.Project{
		OwnerID:   u.ID,
		Title:     handle + "'s deck",
		Variables: datatypes.NewJSONType(map[string]string{}),
	}
	require.NoError(t, db.Create(p).Error)

	g := &models.Page{ProjectID: p.ID, Name: "intro"}
	require.NoError(t, db.Create(g).Error)

	o := &models.PageObject{
		PageID: g.ID,
		Type:   models.ObjectDefault,
		Width:  100, Height: 50,
		XPosition: 0, YPosition: 0,
		ZIndex: 1, Opacity: 1,
	}
	require.NoError(t, db.Create(o).Error)

	return u, p, g, o
}

func seedEvent(t *testing.T, db *gorm.DB, objectID int64, nextPageID *int64) *models.Event {
	t.Helper()
	e := &models.Event{
		ObjectID:       objectID,
		TransitionType: models.TransitionNone,
		NextPageID:     nextPageID,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func testCtx() context.Context {
	return context.Background()
}

func newDB(t *testing.T) *gorm.DB {
	return testutil.OpenGormDB(t)
}
