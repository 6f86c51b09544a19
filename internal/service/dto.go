package service

import (
	"canvaspilot.io/canvaspilot/internal/models"
)

// Request DTOs. Both transports bind their payloads into these; pointer
// fields mean "absent leaves the stored value untouched".

// SignupRequest registers a new account.
type SignupRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates by handle and password.
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateProjectRequest creates a project owned by the caller.
type CreateProjectRequest struct {
	Title string `json:"title" binding:"required"`
}

// PatchProjectRequest partially updates a project.
type PatchProjectRequest struct {
	Title     *string            `json:"title,omitempty"`
	Variables *map[string]string `json:"variables,omitempty"`
}

// CreatePageRequest creates a page under a project.
type CreatePageRequest struct {
	ProjectID int64  `json:"projectId" binding:"required,gt=0"`
	Name      string `json:"name" binding:"required"`
}

// PatchPageRequest partially updates a page.
type PatchPageRequest struct {
	Name *string `json:"name,omitempty"`
}

// CreateObjectRequest creates an object on a page. Geometry fields are
// required (pointers so zero values bind); style fields are optional.
type CreateObjectRequest struct {
	PageID int64             `json:"pageId" binding:"required,gt=0"`
	Type   models.ObjectType `json:"type" binding:"required"`

	Width     *float64 `json:"width" binding:"required"`
	Height    *float64 `json:"height" binding:"required"`
	XPosition *float64 `json:"xPosition" binding:"required"`
	YPosition *float64 `json:"yPosition" binding:"required"`
	ZIndex    *int     `json:"zIndex" binding:"required"`
	Opacity   *float64 `json:"opacity,omitempty"`

	TextContent     *string  `json:"textContent,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	LetterSpacing   *float64 `json:"letterSpacing,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	StrokeWidth     *float64 `json:"strokeWidth,omitempty"`
	StrokeColor     *string  `json:"strokeColor,omitempty"`
	ImageSource     *string  `json:"imageSource,omitempty"`
	IsReversed      *bool    `json:"isReversed,omitempty"`
	RotateDegree    *float64 `json:"rotateDegree,omitempty"`
}

// PatchObjectRequest partially updates an object; only non-nil fields
// overwrite.
type PatchObjectRequest struct {
	Type *models.ObjectType `json:"type,omitempty"`

	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	XPosition *float64 `json:"xPosition,omitempty"`
	YPosition *float64 `json:"yPosition,omitempty"`
	ZIndex    *int     `json:"zIndex,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`

	TextContent     *string  `json:"textContent,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	LetterSpacing   *float64 `json:"letterSpacing,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	StrokeWidth     *float64 `json:"strokeWidth,omitempty"`
	StrokeColor     *string  `json:"strokeColor,omitempty"`
	ImageSource     *string  `json:"imageSource,omitempty"`
	IsReversed      *bool    `json:"isReversed,omitempty"`
	RotateDegree    *float64 `json:"rotateDegree,omitempty"`
}

// CreateEventRequest attaches a navigation event to an object.
type CreateEventRequest struct {
	ObjectID       int64                 `json:"objectId" binding:"required,gt=0"`
	TransitionType models.TransitionType `json:"transitionType" binding:"required"`
	NextPageID     *int64                `json:"nextPageId,omitempty"`
}

// PatchEventRequest partially updates an event.
type PatchEventRequest struct {
	TransitionType *models.TransitionType `json:"transitionType,omitempty"`
	NextPageID     *int64                 `json:"nextPageId,omitempty"`
}

// View DTOs.

// UserSummary is the public identity of an account.
type UserSummary struct {
	ID       int64  `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// EventSummary is the wire view of an event.
type EventSummary struct {
	ID             int64                 `json:"id"`
	ObjectID       int64                 `json:"objectId"`
	TransitionType models.TransitionType `json:"transitionType"`
	NextPageID     *int64                `json:"nextPageId,omitempty"`
}

// ObjectDetail is the wire view of an object, including the active event
// when one exists.
type ObjectDetail struct {
	ID     int64             `json:"id"`
	PageID int64             `json:"pageId"`
	Type   models.ObjectType `json:"type"`

	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	XPosition float64 `json:"xPosition"`
	YPosition float64 `json:"yPosition"`
	ZIndex    int     `json:"zIndex"`
	Opacity   float64 `json:"opacity"`

	TextContent     *string  `json:"textContent,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	LetterSpacing   *float64 `json:"letterSpacing,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	StrokeWidth     *float64 `json:"strokeWidth,omitempty"`
	StrokeColor     *string  `json:"strokeColor,omitempty"`
	ImageSource     *string  `json:"imageSource,omitempty"`
	IsReversed      *bool    `json:"isReversed,omitempty"`
	RotateDegree    *float64 `json:"rotateDegree,omitempty"`

	Event *EventSummary `json:"event,omitempty"`
}

// PageSummary is the list-item view of a page.
type PageSummary struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Name      string `json:"name"`
}

// PageDetail is the wire view of a page with its live objects.
type PageDetail struct {
	ID        int64          `json:"id"`
	ProjectID int64          `json:"projectId"`
	Name      string         `json:"name"`
	Objects   []ObjectDetail `json:"objects"`
}

// ProjectSummary is the list-item view of a project.
type ProjectSummary struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Title   string `json:"title"`
}

// ProjectDetail is the wire view of a project with owner and live pages.
type ProjectDetail struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Variables map[string]string `json:"variables"`
	Owner     UserSummary       `json:"owner"`
	Pages     []PageSummary     `json:"pages"`
}

// ProjectSlice is a slice-paginated project listing: HasNext signals more
// rows past this slice, no total count is computed.
type ProjectSlice struct {
	Projects []ProjectSummary `json:"projects"`
	HasNext  bool             `json:"hasNext"`
}

func userSummary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, UserID: u.UserID, Username: u.Username}
}

func eventSummary(e *models.Event) EventSummary {
	return EventSummary{
		ID:             e.ID,
		ObjectID:       e.ObjectID,
		TransitionType: e.TransitionType,
		NextPageID:     e.NextPageID,
	}
}

func objectDetail(o *models.PageObject) ObjectDetail {
	d := ObjectDetail{
		ID:              o.ID,
		PageID:          o.PageID,
		Type:            o.Type,
		Width:           o.Width,
		Height:          o.Height,
		XPosition:       o.XPosition,
		YPosition:       o.YPosition,
		ZIndex:          o.ZIndex,
		Opacity:         o.Opacity,
		TextContent:     o.TextContent,
		FontSize:        o.FontSize,
		LineHeight:      o.LineHeight,
		LetterSpacing:   o.LetterSpacing,
		BackgroundColor: o.BackgroundColor,
		StrokeWidth:     o.StrokeWidth,
		StrokeColor:     o.StrokeColor,
		ImageSource:     o.ImageSource,
		IsReversed:      o.IsReversed,
		RotateDegree:    o.RotateDegree,
	}
	if active := o.ActiveEvent(); active != nil {
		ev := eventSummary(active)
		d.Event = &ev
	}
	return d
}

func pageSummary(g *models.Page) PageSummary {
	return PageSummary{ID: g.ID, ProjectID: g.ProjectID, Name: g.Name}
}

func pageDetail(g *models.Page) PageDetail {
	d := PageDetail{
		ID:        g.ID,
		ProjectID: g.ProjectID,
		Name:      g.Name,
		Objects:   make([]ObjectDetail, 0, len(g.Objects)),
	}
	for i := range g.Objects {
		d.Objects = append(d.Objects, objectDetail(&g.Objects[i]))
	}
	return d
}

func projectSummary(p *models.Project) ProjectSummary {
	return ProjectSummary{ID: p.ID, OwnerID: p.OwnerID, Title: p.Title}
}

func projectDetail(p *models.Project) ProjectDetail {
	d := ProjectDetail{
		ID:        p.ID,
		Title:     p.Title,
		Variables: p.Variables.Data(),
		Pages:     make([]PageSummary, 0, len(p.Pages)),
	}
	if d.Variables == nil {
		d.Variables = map[string]string{}
	}
	if p.Owner != nil {
		d.Owner = userSummary(p.Owner)
	}
	for i := range p.Pages {
		d.Pages = append(d.Pages, pageSummary(&p.Pages[i]))
	}
	return d
}
