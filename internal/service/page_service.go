package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// PageService implements page CRUD. A page is addressed by its own id;
// its project binding is fixed at creation.
type PageService struct {
	db *gorm.DB
}

// NewPageService creates a PageService.
func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

// Get returns a page with its live objects.
func (s *PageService) Get(ctx context.Context, actor Actor, id int64) (*PageDetail, error) {
	g, err := findPageByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := checkPageAccess(g, actor); err != nil {
		return nil, err
	}
	out := pageDetail(g)
	return &out, nil
}

// Create adds a page to a project. The project must be live and owned by
// the actor.
func (s *PageService) Create(ctx context.Context, actor Actor, req CreatePageRequest) (*PageDetail, error) {
	var out PageDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProjectByID(tx, req.ProjectID)
		if err != nil {
			return err
		}
		if err := checkProjectAccess(p, actor); err != nil {
			return err
		}

		g := models.Page{
			ProjectID: p.ID,
			Name:      req.Name,
		}
		g.CreatedBy = actor.Handle
		g.ModifiedBy = actor.Handle
		if err := tx.Create(&g).Error; err != nil {
			return apperrors.ErrInternal(err, "create page")
		}

		out = pageDetail(&g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch partially updates a page.
func (s *PageService) Patch(ctx context.Context, actor Actor, id int64, req PatchPageRequest) (*PageDetail, error) {
	var out PageDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := findPageByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkPageAccess(g, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{"modified_by": actor.Handle}
		if req.Name != nil {
			g.Name = *req.Name
			updates["name"] = *req.Name
		}
		if err := tx.Model(g).Updates(updates).Error; err != nil {
			return apperrors.ErrInternal(err, "update page")
		}

		out = pageDetail(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes a page with its objects and their events. Events
// elsewhere in the project that navigate to this page keep their reference;
// the target simply stops resolving.
func (s *PageService) Delete(ctx context.Context, actor Actor, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := findPageByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkPageAccess(g, actor); err != nil {
			return err
		}
		return softDeletePage(tx, g, time.Now().UTC(), actor.Handle)
	})
}
