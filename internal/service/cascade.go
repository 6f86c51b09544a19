package service

import (
	"time"

	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// Soft-delete cascades. Deleting an entity marks every live descendant with
// the same timestamp so a whole subtree shares one deletion instant and the
// retention sweeper purges it in one window. Rows already deleted are left
// untouched and keep their original stamp.
//
// The walk is top-down and explicit rather than relying on database
// triggers; hard ON DELETE CASCADE constraints only matter later, when the
// sweeper physically removes rows.

func softDeleteEvent(tx *gorm.DB, e *models.Event, now time.Time, by string) error {
	if e.IsDeleted {
		return nil
	}
	e.SoftDelete(now)
	e.ModifiedBy = by
	if err := tx.Model(e).Updates(deletionStamp(now, by)).Error; err != nil {
		return apperrors.ErrInternal(err, "soft delete event")
	}
	return nil
}

func softDeleteObject(tx *gorm.DB, o *models.PageObject, now time.Time, by string) error {
	var events []models.Event
	if err := tx.Where("object_id = ?", o.ID).Find(&events).Error; err != nil {
		return apperrors.ErrInternal(err, "load events for cascade")
	}
	for i := range events {
		if err := softDeleteEvent(tx, &events[i], now, by); err != nil {
			return err
		}
	}

	if o.IsDeleted {
		return nil
	}
	o.SoftDelete(now)
	o.ModifiedBy = by
	if err := tx.Model(o).Updates(deletionStamp(now, by)).Error; err != nil {
		return apperrors.ErrInternal(err, "soft delete object")
	}
	return nil
}

func softDeletePage(tx *gorm.DB, g *models.Page, now time.Time, by string) error {
	var objects []models.PageObject
	if err := tx.Where("page_id = ? AND is_deleted = ?", g.ID, false).Find(&objects).Error; err != nil {
		return apperrors.ErrInternal(err, "load objects for cascade")
	}
	for i := range objects {
		if err := softDeleteObject(tx, &objects[i], now, by); err != nil {
			return err
		}
	}

	if g.IsDeleted {
		return nil
	}
	g.SoftDelete(now)
	g.ModifiedBy = by
	if err := tx.Model(g).Updates(deletionStamp(now, by)).Error; err != nil {
		return apperrors.ErrInternal(err, "soft delete page")
	}
	return nil
}

func softDeleteProject(tx *gorm.DB, p *models.Project, now time.Time, by string) error {
	var pages []models.Page
	if err := tx.Where("project_id = ? AND is_deleted = ?", p.ID, false).Find(&pages).Error; err != nil {
		return apperrors.ErrInternal(err, "load pages for cascade")
	}
	for i := range pages {
		if err := softDeletePage(tx, &pages[i], now, by); err != nil {
			return err
		}
	}

	if p.IsDeleted {
		return nil
	}
	p.SoftDelete(now)
	p.ModifiedBy = by
	if err := tx.Model(p).Updates(deletionStamp(now, by)).Error; err != nil {
		return apperrors.ErrInternal(err, "soft delete project")
	}
	return nil
}

func softDeleteUser(tx *gorm.DB, u *models.User, now time.Time, by string) error {
	var projects []models.Project
	if err := tx.Where("owner_id = ? AND is_deleted = ?", u.ID, false).Find(&projects).Error; err != nil {
		return apperrors.ErrInternal(err, "load projects for cascade")
	}
	for i := range projects {
		if err := softDeleteProject(tx, &projects[i], now, by); err != nil {
			return err
		}
	}

	if u.IsDeleted {
		return nil
	}
	u.SoftDelete(now)
	u.ModifiedBy = by
	if err := tx.Model(u).Updates(deletionStamp(now, by)).Error; err != nil {
		return apperrors.ErrInternal(err, "soft delete user")
	}
	return nil
}
