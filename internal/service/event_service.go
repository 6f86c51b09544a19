package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// EventService implements navigation-event CRUD. An object carries at most
// one live event; the guard runs inside the mutation transaction, so two
// racing creates on the same object can still both pass it. Callers that
// need the invariant hard should serialize writes per object.
type EventService struct {
	db *gorm.DB
}

// NewEventService creates an EventService.
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, actor Actor, id int64) (*EventSummary, error) {
	e, err := findEventByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := checkEventAccess(e, actor); err != nil {
		return nil, err
	}
	out := eventSummary(e)
	return &out, nil
}

// Create attaches an event to an object. Guard order: object lookup, object
// access, single-active-event, then next-page lookup, access and
// same-project check.
func (s *EventService) Create(ctx context.Context, actor Actor, req CreateEventRequest) (*EventSummary, error) {
	if !req.TransitionType.Valid() {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown transition type", string(req.TransitionType))
	}

	var out EventSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findObjectByID(tx, req.ObjectID)
		if err != nil {
			return err
		}
		if err := checkObjectAccess(o, actor); err != nil {
			return err
		}
		if o.ActiveEvent() != nil {
			return apperrors.ErrMultipleEventAllocation(o.ID)
		}

		if req.NextPageID != nil {
			if err := s.checkNextPage(tx, actor, o, *req.NextPageID); err != nil {
				return err
			}
		}

		e := models.Event{
			ObjectID:       o.ID,
			TransitionType: req.TransitionType,
			NextPageID:     req.NextPageID,
		}
		e.CreatedBy = actor.Handle
		e.ModifiedBy = actor.Handle
		if err := tx.Create(&e).Error; err != nil {
			return apperrors.ErrInternal(err, "create event")
		}

		out = eventSummary(&e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch partially updates an event. A new next page goes through the same
// lookup, access and same-project guards as on create.
func (s *EventService) Patch(ctx context.Context, actor Actor, id int64, req PatchEventRequest) (*EventSummary, error) {
	if req.TransitionType != nil && !req.TransitionType.Valid() {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown transition type", string(*req.TransitionType))
	}

	var out EventSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := findEventByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkEventAccess(e, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{"modified_by": actor.Handle}
		if req.TransitionType != nil {
			e.TransitionType = *req.TransitionType
			updates["transition_type"] = *req.TransitionType
		}
		if req.NextPageID != nil {
			if err := s.checkNextPage(tx, actor, e.Object, *req.NextPageID); err != nil {
				return err
			}
			e.NextPageID = req.NextPageID
			updates["next_page_id"] = *req.NextPageID
		}
		if err := tx.Model(e).Updates(updates).Error; err != nil {
			return apperrors.ErrInternal(err, "update event")
		}

		out = eventSummary(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes an event, freeing its object for a new one.
func (s *EventService) Delete(ctx context.Context, actor Actor, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := findEventByID(tx, id)
		if err != nil {
			return err
		}
		if err := checkEventAccess(e, actor); err != nil {
			return err
		}
		return softDeleteEvent(tx, e, time.Now().UTC(), actor.Handle)
	})
}

// checkNextPage validates a navigation target: the page must be live,
// accessible, and belong to the same project as the owning object.
func (s *EventService) checkNextPage(tx *gorm.DB, actor Actor, o *models.PageObject, nextPageID int64) error {
	next, err := findPageByID(tx, nextPageID)
	if err != nil {
		return err
	}
	if err := checkPageAccess(next, actor); err != nil {
		return err
	}
	if o.Page == nil || next.ProjectID != o.Page.ProjectID {
		return apperrors.ErrLinkNonRelatedPage(next.ID)
	}
	return nil
}
