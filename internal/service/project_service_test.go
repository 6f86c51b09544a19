package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"canvaspilot.io/canvaspilot/internal/models"
	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
)

func TestProjectCreateAndGet(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	owner := seedUser(t, db, "alice")

	created, err := svc.Create(testCtx(), actorFor(owner), CreateProjectRequest{Title: "pitch deck"})
	require.NoError(t, err)
	require.Equal(t, "pitch deck", created.Title)
	require.Equal(t, owner.ID, created.Owner.ID)
	require.Empty(t, created.Pages)
	require.NotNil(t, created.Variables)

	got, err := svc.Get(testCtx(), actorFor(owner), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "alice", got.Owner.UserID)
}

func TestProjectAccessControl(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	_, p, _, _ := seedTree(t, db, "alice")
	stranger := seedUser(t, db, "bob")

	_, err := svc.Get(testCtx(), actorFor(stranger), p.ID)
	requireCode(t, err, apperrors.CodeNonAccessibleProject)

	// Admins bypass the ownership rule.
	_, err = svc.Get(testCtx(), adminActor(), p.ID)
	require.NoError(t, err)

	// Unknown id reports not-found before any access decision.
	_, err = svc.Get(testCtx(), actorFor(stranger), 99999)
	requireCode(t, err, apperrors.CodeProjectNotFound)
}

func TestProjectPatch(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	owner, p, _, _ := seedTree(t, db, "alice")

	title := "renamed"
	vars := map[string]string{"theme": "dark"}
	got, err := svc.Patch(testCtx(), actorFor(owner), p.ID, PatchProjectRequest{
		Title:     &title,
		Variables: &vars,
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, "dark", got.Variables["theme"])

	// Absent fields keep their stored value.
	got, err = svc.Patch(testCtx(), actorFor(owner), p.ID, PatchProjectRequest{})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, "dark", got.Variables["theme"])
}

func TestProjectDeleteCascades(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	owner, p, g, o := seedTree(t, db, "alice")
	e := seedEvent(t, db, o.ID, nil)

	require.NoError(t, svc.Delete(testCtx(), actorFor(owner), p.ID))

	// Every descendant is marked with the same deletion instant.
	var gotP models.Project
	var gotG models.Page
	var gotO models.PageObject
	var gotE models.Event
	require.NoError(t, db.First(&gotP, p.ID).Error)
	require.NoError(t, db.First(&gotG, g.ID).Error)
	require.NoError(t, db.First(&gotO, o.ID).Error)
	require.NoError(t, db.First(&gotE, e.ID).Error)

	for name, m := range map[string]models.Model{
		"project": gotP.Model, "page": gotG.Model, "object": gotO.Model, "event": gotE.Model,
	} {
		require.True(t, m.IsDeleted, "%s should be soft-deleted", name)
		require.NotNil(t, m.DeletedAt, "%s should carry a deletion stamp", name)
	}
	require.Equal(t, *gotP.DeletedAt, *gotG.DeletedAt)
	require.Equal(t, *gotP.DeletedAt, *gotO.DeletedAt)
	require.Equal(t, *gotP.DeletedAt, *gotE.DeletedAt)

	// A deleted project is indistinguishable from a missing one.
	_, err := svc.Get(testCtx(), actorFor(owner), p.ID)
	requireCode(t, err, apperrors.CodeProjectNotFound)

	// And so is deleting it again.
	err = svc.Delete(testCtx(), actorFor(owner), p.ID)
	requireCode(t, err, apperrors.CodeProjectNotFound)
}

func TestProjectDeleteKeepsEarlierStamp(t *testing.T) {
	db := newDB(t)
	pageSvc := NewPageService(db)
	projSvc := NewProjectService(db)
	owner, p, g, _ := seedTree(t, db, "alice")

	require.NoError(t, pageSvc.Delete(testCtx(), actorFor(owner), g.ID))
	var afterPageDelete models.Page
	require.NoError(t, db.First(&afterPageDelete, g.ID).Error)

	require.NoError(t, projSvc.Delete(testCtx(), actorFor(owner), p.ID))
	var afterProjectDelete models.Page
	require.NoError(t, db.First(&afterProjectDelete, g.ID).Error)

	// The page kept the stamp from its own deletion, not the project's.
	require.Equal(t, *afterPageDelete.DeletedAt, *afterProjectDelete.DeletedAt)
}

func TestProjectListSlices(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	owner := seedUser(t, db, "alice")

	for i := 0; i < 5; i++ {
		_, err := svc.Create(testCtx(), actorFor(owner), CreateProjectRequest{
			Title: fmt.Sprintf("deck %d", i),
		})
		require.NoError(t, err)
	}

	first, err := svc.List(testCtx(), 1, 3)
	require.NoError(t, err)
	require.Len(t, first.Projects, 3)
	require.True(t, first.HasNext)
	// Newest first.
	require.Equal(t, "deck 4", first.Projects[0].Title)

	second, err := svc.List(testCtx(), 2, 3)
	require.NoError(t, err)
	require.Len(t, second.Projects, 2)
	require.False(t, second.HasNext)
}

func TestProjectListMine(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	// More projects than one public-listing page, to pin down that the
	// personal listing returns everything in one response.
	for i := 0; i < defaultPageSize+5; i++ {
		_, err := svc.Create(testCtx(), actorFor(alice), CreateProjectRequest{Title: fmt.Sprintf("deck %d", i)})
		require.NoError(t, err)
	}
	_, err := svc.Create(testCtx(), actorFor(bob), CreateProjectRequest{Title: "bob's"})
	require.NoError(t, err)

	mine, err := svc.ListMine(testCtx(), actorFor(alice))
	require.NoError(t, err)
	require.Len(t, mine, defaultPageSize+5)
	require.Equal(t, fmt.Sprintf("deck %d", defaultPageSize+4), mine[0].Title, "newest first")
	for _, p := range mine {
		require.NotEqual(t, "bob's", p.Title)
	}
}

func TestProjectListSkipsDeleted(t *testing.T) {
	db := newDB(t)
	svc := NewProjectService(db)
	owner, p, _, _ := seedTree(t, db, "alice")

	require.NoError(t, svc.Delete(testCtx(), actorFor(owner), p.ID))

	all, err := svc.List(testCtx(), 1, 10)
	require.NoError(t, err)
	require.Empty(t, all.Projects)
}
