package service

import (
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// Lookup helpers shared by every domain service. Each finder resolves a
// live (undeleted) row by id and preloads enough of the parent chain for
// ownership checks. Lookup failure and soft-deleted both map to the same
// not-found error, so a deleted entity is indistinguishable from one that
// never existed.

func findUserByID(tx *gorm.DB, id int64) (*models.User, error) {
	var u models.User
	err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&u).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound(id)
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find user")
	}
	return &u, nil
}

func findProjectByID(tx *gorm.DB, id int64) (*models.Project, error) {
	var p models.Project
	err := tx.
		Preload("Owner").
		Preload("Pages", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&p).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrProjectNotFound(id)
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find project")
	}
	return &p, nil
}

func findPageByID(tx *gorm.DB, id int64) (*models.Page, error) {
	var g models.Page
	err := tx.
		Preload("Project").
		Preload("Objects", "is_deleted = ?", false).
		Preload("Objects.Events").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&g).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrPageNotFound(id)
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find page")
	}
	return &g, nil
}

func findObjectByID(tx *gorm.DB, id int64) (*models.PageObject, error) {
	var o models.PageObject
	err := tx.
		Preload("Page.Project").
		Preload("Events").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&o).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrPageObjectNotFound(id)
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find object")
	}
	return &o, nil
}

func findEventByID(tx *gorm.DB, id int64) (*models.Event, error) {
	var e models.Event
	err := tx.
		Preload("Object.Page.Project").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&e).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrEventNotFound(id)
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find event")
	}
	return &e, nil
}

// Access checks. Lookup errors fire before these, business-rule guards
// after; the order is part of the API contract.

func checkProjectAccess(p *models.Project, actor Actor) error {
	if actor.IsAdmin() || p.IsAccessibleTo(actor.ID) {
		return nil
	}
	return apperrors.ErrNonAccessibleProject(p.ID)
}

func checkPageAccess(g *models.Page, actor Actor) error {
	if actor.IsAdmin() || g.IsAccessibleTo(actor.ID) {
		return nil
	}
	return apperrors.ErrNonAccessiblePage(g.ID)
}

func checkObjectAccess(o *models.PageObject, actor Actor) error {
	if actor.IsAdmin() || o.IsAccessibleTo(actor.ID) {
		return nil
	}
	return apperrors.ErrNonAccessiblePageObject(o.ID)
}

func checkEventAccess(e *models.Event, actor Actor) error {
	if actor.IsAdmin() || e.IsAccessibleTo(actor.ID) {
		return nil
	}
	return apperrors.ErrNonAccessibleEvent(e.ID)
}

// deletionStamp is the column set applied when soft-deleting a row.
func deletionStamp(now time.Time, by string) map[string]interface{} {
	return map[string]interface{}{
		"is_deleted":  true,
		"deleted_at":  now,
		"modified_at": now,
		"modified_by": by,
	}
}
