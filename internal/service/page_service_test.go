package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"canvaspilot.io/canvaspilot/internal/models"
	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
)

func TestPageCreate(t *testing.T) {
	db := newDB(t)
	svc := NewPageService(db)
	owner, p, _, _ := seedTree(t, db, "alice")

	got, err := svc.Create(testCtx(), actorFor(owner), CreatePageRequest{
		ProjectID: p.ID,
		Name:      "closing slide",
	})
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ProjectID)
	require.Equal(t, "closing slide", got.Name)
	require.Empty(t, got.Objects)
}

func TestPageCreateGuards(t *testing.T) {
	db := newDB(t)
	svc := NewPageService(db)
	_, p, _, _ := seedTree(t, db, "alice")
	stranger := seedUser(t, db, "bob")

	_, err := svc.Create(testCtx(), actorFor(stranger), CreatePageRequest{ProjectID: p.ID, Name: "x"})
	requireCode(t, err, apperrors.CodeNonAccessibleProject)

	_, err = svc.Create(testCtx(), actorFor(stranger), CreatePageRequest{ProjectID: 99999, Name: "x"})
	requireCode(t, err, apperrors.CodeProjectNotFound)
}

func TestPageGetIncludesLiveObjects(t *testing.T) {
	db := newDB(t)
	svc := NewPageService(db)
	objSvc := NewObjectService(db)
	owner, _, g, o := seedTree(t, db, "alice")
	e := seedEvent(t, db, o.ID, nil)

	got, err := svc.Get(testCtx(), actorFor(owner), g.ID)
	require.NoError(t, err)
	require.Len(t, got.Objects, 1)
	require.NotNil(t, got.Objects[0].Event)
	require.Equal(t, e.ID, got.Objects[0].Event.ID)

	// A deleted object drops out of the page detail.
	require.NoError(t, objSvc.Delete(testCtx(), actorFor(owner), o.ID))
	got, err = svc.Get(testCtx(), actorFor(owner), g.ID)
	require.NoError(t, err)
	require.Empty(t, got.Objects)
}

func TestPagePatch(t *testing.T) {
	db := newDB(t)
	svc := NewPageService(db)
	owner, _, g, _ := seedTree(t, db, "alice")

	name := "renamed"
	got, err := svc.Patch(testCtx(), actorFor(owner), g.ID, PatchPageRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)

	got, err = svc.Patch(testCtx(), actorFor(owner), g.ID, PatchPageRequest{})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)
}

func TestPageDeleteCascadesBelowOnly(t *testing.T) {
	db := newDB(t)
	svc := NewPageService(db)
	owner, p, g, o := seedTree(t, db, "alice")
	e := seedEvent(t, db, o.ID, nil)

	require.NoError(t, svc.Delete(testCtx(), actorFor(owner), g.ID))

	var gotP models.Project
	var gotG models.Page
	var gotO models.PageObject
	var gotE models.Event
	require.NoError(t, db.First(&gotP, p.ID).Error)
	require.NoError(t, db.First(&gotG, g.ID).Error)
	require.NoError(t, db.First(&gotO, o.ID).Error)
	require.NoError(t, db.First(&gotE, e.ID).Error)

	require.False(t, gotP.IsDeleted, "project must survive a page delete")
	require.True(t, gotG.IsDeleted)
	require.True(t, gotO.IsDeleted)
	require.True(t, gotE.IsDeleted)

	_, err := svc.Get(testCtx(), actorFor(owner), g.ID)
	requireCode(t, err, apperrors.CodePageNotFound)
}

func TestPageDeleteLeavesInboundLinks(t *testing.T) {
	db := newDB(t)
	pageSvc := NewPageService(db)
	owner, p, _, o := seedTree(t, db, "alice")

	target, err := pageSvc.Create(testCtx(), actorFor(owner), CreatePageRequest{ProjectID: p.ID, Name: "target"})
	require.NoError(t, err)
	e := seedEvent(t, db, o.ID, &target.ID)

	// Deleting the target page leaves the linking event alive with its
	// reference intact; the destination just no longer resolves.
	require.NoError(t, pageSvc.Delete(testCtx(), actorFor(owner), target.ID))

	var gotE models.Event
	require.NoError(t, db.First(&gotE, e.ID).Error)
	require.False(t, gotE.IsDeleted)
	require.NotNil(t, gotE.NextPageID)
	require.Equal(t, target.ID, *gotE.NextPageID)
}
