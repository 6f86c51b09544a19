package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// ObjectService implements page-object CRUD and the per-project listing.
type ObjectService struct {
	db *gorm.DB
}

// NewObjectService creates an ObjectService.
func NewObjectService(db *gorm.DB) *ObjectService {
	return &ObjectService{db: db}
}

// Get returns a single object with its active event.
func (s *ObjectService) Get(ctx context.Context, actor Actor, id int64) (*ObjectDetail, error) {
	o, err := findObjectByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := checkObjectAccess(o, actor); err != nil {
		return nil, err
	}
	out := objectDetail(o)
	return &out, nil
}

// ListInProject returns every live object of a project whose whole parent
// chain is live. The join filters the chain in SQL; the per-row ownership
// check afterwards repeats the rule on the loaded rows.
func (s *ObjectService) ListInProject(ctx context.Context, actor Actor, projectID int64) ([]ObjectDetail, error) {
	db := s.db.WithContext(ctx)

	p, err := findProjectByID(db, projectID)
	if err != nil {
		return nil, err
	}
	if err := checkProjectAccess(p, actor); err != nil {
		return nil, err
	}

	var objects []models.PageObject
	err = db.
		Preload("Page.Project").
		Preload("Events").
		Joins("JOIN pages ON pages.id = page_objects.page_id").
		Joins("JOIN projects ON projects.id = pages.project_id").
		Joins("JOIN users ON users.id = projects.owner_id").
		Where("pages.project_id = ?", projectID).
		Where("page_objects.is_deleted = ?", false).
		Where("pages.is_deleted = ?", false).
		Where("projects.is_deleted = ?", false).
		Where("users.is_deleted = ?", false).
		Order("page_objects.id").
		Find(&objects).Error
	if err != nil {
		return nil, apperrors.ErrInternal(err, "list objects in project")
	}

	out := make([]ObjectDetail, 0, len(objects))
	for i := range objects {
		o := &objects[i]
		if !actor.IsAdmin() && !o.IsAccessibleTo(actor.ID) {
			continue
		}
		out = append(out, objectDetail(o))
	}
	return out, nil
}

// Create places a new object on a page. Geometry comes from the request;
// opacity defaults to fully opaque when absent.
func (s *ObjectService) Create(ctx context.Context, actor Actor, req CreateObjectRequest) (*ObjectDetail, error) {
	if !req.Type.Valid() {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown object type", string(req.Type))
	}

	var out ObjectDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := findPageByID(tx, req.PageID)
		if err != nil {
			return err
		}
		if err := checkPageAccess(g, actor); err != nil {
			return err
		}

		o := models.PageObject{
			PageID:          g.ID,
			Type:            req.Type,
			Width:           *req.Width,
			Height:          *req.Height,
			XPosition:       *req.XPosition,
			YPosition:       *req.YPosition,
			ZIndex:          *req.ZIndex,
			Opacity:         1,
			TextContent:     req.TextContent,
			FontSize:        req.FontSize,
			LineHeight:      req.LineHeight,
			LetterSpacing:   req.LetterSpacing,
			BackgroundColor: req.BackgroundColor,
			StrokeWidth:     req.StrokeWidth,
			StrokeColor:     req.StrokeColor,
			ImageSource:     req.ImageSource,
			IsReversed:      req.IsReversed,
			RotateDegree:    req.RotateDegree,
		}
		if req.Opacity != nil {
			o.Opacity = *req.Opacity
		}
		o.CreatedBy = actor.Handle
		o.ModifiedBy = actor.Handle
		if err := tx.Create(&o).Error; err != nil {
			return apperrors.ErrInternal(err, "create object")
		}

		out = objectDetail(&o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch partially updates an object; every field is optional and only
// non-nil ones overwrite.
func (s *ObjectService) Patch(ctx context.Context, actor Actor, id int64, req PatchObjectRequest) (*ObjectDetail, error) {
	if req.Type != nil && !req.Type.Valid() {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown object type", string(*req.Type))
	}

	var out ObjectDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findObjectByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkObjectAccess(o, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{"modified_by": actor.Handle}
		applyObjectPatch(o, req, updates)
		if err := tx.Model(o).Updates(updates).Error; err != nil {
			return apperrors.ErrInternal(err, "update object")
		}

		out = objectDetail(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes an object and its events.
func (s *ObjectService) Delete(ctx context.Context, actor Actor, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findObjectByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkObjectAccess(o, actor); err != nil {
			return err
		}
		return softDeleteObject(tx, o, time.Now().UTC(), actor.Handle)
	})
}

func applyObjectPatch(o *models.PageObject, req PatchObjectRequest, updates map[string]interface{}) {
	if req.Type != nil {
		o.Type = *req.Type
		updates["type"] = *req.Type
	}
	if req.Width != nil {
		o.Width = *req.Width
		updates["width"] = *req.Width
	}
	if req.Height != nil {
		o.Height = *req.Height
		updates["height"] = *req.Height
	}
	if req.XPosition != nil {
		o.XPosition = *req.XPosition
		updates["x_position"] = *req.XPosition
	}
	if req.YPosition != nil {
		o.YPosition = *req.YPosition
		updates["y_position"] = *req.YPosition
	}
	if req.ZIndex != nil {
		o.ZIndex = *req.ZIndex
		updates["z_index"] = *req.ZIndex
	}
	if req.Opacity != nil {
		o.Opacity = *req.Opacity
		updates["opacity"] = *req.Opacity
	}
	if req.TextContent != nil {
		o.TextContent = req.TextContent
		updates["text_content"] = *req.TextContent
	}
	if req.FontSize != nil {
		o.FontSize = req.FontSize
		updates["font_size"] = *req.FontSize
	}
	if req.LineHeight != nil {
		o.LineHeight = req.LineHeight
		updates["line_height"] = *req.LineHeight
	}
	if req.LetterSpacing != nil {
		o.LetterSpacing = req.LetterSpacing
		updates["letter_spacing"] = *req.LetterSpacing
	}
	if req.BackgroundColor != nil {
		o.BackgroundColor = req.BackgroundColor
		updates["background_color"] = *req.BackgroundColor
	}
	if req.StrokeWidth != nil {
		o.StrokeWidth = req.StrokeWidth
		updates["stroke_width"] = *req.StrokeWidth
	}
	if req.StrokeColor != nil {
		o.StrokeColor = req.StrokeColor
		updates["stroke_color"] = *req.StrokeColor
	}
	if req.ImageSource != nil {
		o.ImageSource = req.ImageSource
		updates["image_source"] = *req.ImageSource
	}
	if req.IsReversed != nil {
		o.IsReversed = req.IsReversed
		updates["is_reversed"] = *req.IsReversed
	}
	if req.RotateDegree != nil {
		o.RotateDegree = req.RotateDegree
		updates["rotate_degree"] = *req.RotateDegree
	}
}
