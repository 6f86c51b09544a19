package service

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProjectService implements project CRUD and the slice-paginated listings.
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService creates a ProjectService.
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Get returns a project with its owner and live pages. Admins may read any
// project; everyone else only their own.
func (s *ProjectService) Get(ctx context.Context, actor Actor, id int64) (*ProjectDetail, error) {
	p, err := findProjectByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := checkProjectAccess(p, actor); err != nil {
		return nil, err
	}
	out := projectDetail(p)
	return &out, nil
}

// List returns one slice of all live projects, newest first. It fetches
// size+1 rows and reports HasNext instead of counting the table.
func (s *ProjectService) List(ctx context.Context, page, size int) (*ProjectSlice, error) {
	page, size = normalizePagination(page, size)

	var rows []models.Project
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id DESC").
		Offset((page - 1) * size).
		Limit(size + 1).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.ErrInternal(err, "list projects")
	}
	return sliceOf(rows, size), nil
}

// ListMine returns every live project the actor owns, newest first. The
// personal listing is bounded by ownership, so it is not paginated.
func (s *ProjectService) ListMine(ctx context.Context, actor Actor) ([]ProjectSummary, error) {
	var rows []models.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", actor.ID, false).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.ErrInternal(err, "list own projects")
	}
	out := make([]ProjectSummary, 0, len(rows))
	for i := range rows {
		out = append(out, projectSummary(&rows[i]))
	}
	return out, nil
}

// Create creates an empty project owned by the actor.
func (s *ProjectService) Create(ctx context.Context, actor Actor, req CreateProjectRequest) (*ProjectDetail, error) {
	var out ProjectDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := findUserByID(tx, actor.ID)
		if err != nil {
			return err
		}

		p := models.Project{
			OwnerID:   owner.ID,
			Title:     req.Title,
			Variables: datatypes.NewJSONType(map[string]string{}),
		}
		p.CreatedBy = actor.Handle
		p.ModifiedBy = actor.Handle
		if err := tx.Create(&p).Error; err != nil {
			return apperrors.ErrInternal(err, "create project")
		}

		p.Owner = owner
		out = projectDetail(&p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch partially updates a project; absent fields keep their stored value.
func (s *ProjectService) Patch(ctx context.Context, actor Actor, id int64, req PatchProjectRequest) (*ProjectDetail, error) {
	var out ProjectDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProjectByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkProjectAccess(p, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{"modified_by": actor.Handle}
		if req.Title != nil {
			p.Title = *req.Title
			updates["title"] = *req.Title
		}
		if req.Variables != nil {
			p.Variables = datatypes.NewJSONType(*req.Variables)
			updates["variables"] = p.Variables
		}
		if err := tx.Model(p).Updates(updates).Error; err != nil {
			return apperrors.ErrInternal(err, "update project")
		}

		out = projectDetail(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes a project and every live descendant with one shared
// timestamp.
func (s *ProjectService) Delete(ctx context.Context, actor Actor, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProjectByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkProjectAccess(p, actor); err != nil {
			return err
		}
		return softDeleteProject(tx, p, time.Now().UTC(), actor.Handle)
	})
}

func normalizePagination(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func sliceOf(rows []models.Project, size int) *ProjectSlice {
	hasNext := len(rows) > size
	if hasNext {
		rows = rows[:size]
	}
	out := &ProjectSlice{
		Projects: make([]ProjectSummary, 0, len(rows)),
		HasNext:  hasNext,
	}
	for i := range rows {
		out.Projects = append(out.Projects, projectSummary(&rows[i]))
	}
	return out
}
