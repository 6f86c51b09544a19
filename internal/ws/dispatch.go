package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"canvaspilot.io/canvaspilot/internal/api/middleware"
	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
	"canvaspilot.io/canvaspilot/internal/service"
)

// Frame types.
const (
	FrameSubscribe   = "SUBSCRIBE"
	FrameUnsubscribe = "UNSUBSCRIBE"
	FrameSend        = "SEND"
	FrameError       = "ERROR"
	FrameMessage     = "MESSAGE"
)

// Frame is the inbound command envelope. Every frame carries its own
// bearer token; a connection has no session identity.
//
// Subscribe destinations look like /topic/project/42, command destinations
// like /app/project/42/create.object.
type Frame struct {
	Type          string          `json:"type"`
	Destination   string          `json:"destination"`
	Authorization string          `json:"authorization"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// OutboundFrame is what room subscribers receive for every applied
// mutation. Actor is the public identity of whoever made the change.
type OutboundFrame struct {
	Type        string              `json:"type"`
	Destination string              `json:"destination"`
	Action      string              `json:"action"`
	Actor       service.UserSummary `json:"actor"`
	Body        interface{}         `json:"body,omitempty"`
}

// ErrorFrame goes to the offending sender only, never to the room.
type ErrorFrame struct {
	Type         string `json:"type"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Detail       string `json:"detail"`
}

// Dispatcher routes inbound frames to the domain services and broadcasts
// applied mutations to project rooms.
type Dispatcher struct {
	hub        *Hub
	signingKey []byte

	users    *service.UserService
	projects *service.ProjectService
	pages    *service.PageService
	objects  *service.ObjectService
	events   *service.EventService
}

// DispatcherDeps holds Dispatcher dependencies.
type DispatcherDeps struct {
	Hub        *Hub
	SigningKey []byte

	Users    *service.UserService
	Projects *service.ProjectService
	Pages    *service.PageService
	Objects  *service.ObjectService
	Events   *service.EventService
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		hub:        deps.Hub,
		signingKey: deps.SigningKey,
		users:      deps.Users,
		projects:   deps.Projects,
		pages:      deps.Pages,
		objects:    deps.Objects,
		events:     deps.Events,
	}
}

// Dispatch handles one raw inbound frame. All failures are answered on the
// sender's socket; the room never sees them.
func (d *Dispatcher) Dispatch(c *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		d.sendError(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "malformed frame", err.Error()))
		return
	}

	actor, err := d.authenticate(frame.Authorization)
	if err != nil {
		d.sendError(c, err)
		return
	}
	c.setHandle(actor.Handle)

	ctx := context.Background()

	switch frame.Type {
	case FrameSubscribe:
		err = d.subscribe(ctx, c, actor, frame.Destination)
	case FrameUnsubscribe:
		err = d.unsubscribe(c, frame.Destination)
	case FrameSend:
		err = d.command(ctx, actor, frame)
	default:
		err = apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown frame type", frame.Type)
	}
	if err != nil {
		d.sendError(c, err)
	}
}

func (d *Dispatcher) authenticate(authorization string) (service.Actor, error) {
	token, err := middleware.BearerToken(authorization)
	if err != nil {
		return service.Actor{}, err
	}
	claims, err := middleware.ParseToken(d.signingKey, token)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: claims.AccountID, Handle: claims.Handle, Roles: claims.Roles}, nil
}

// subscribe joins a /topic/project/{id} room after an access check, so a
// stranger cannot watch someone else's edits.
func (d *Dispatcher) subscribe(ctx context.Context, c *Client, actor service.Actor, destination string) error {
	projectID, err := topicProjectID(destination)
	if err != nil {
		return err
	}
	if _, err := d.projects.Get(ctx, actor, projectID); err != nil {
		return err
	}
	d.hub.Subscribe(c, projectID)
	return nil
}

func (d *Dispatcher) unsubscribe(c *Client, destination string) error {
	projectID, err := topicProjectID(destination)
	if err != nil {
		return err
	}
	d.hub.Unsubscribe(c, projectID)
	return nil
}

// command applies one mutation and, on success, broadcasts the result to
// the project room.
func (d *Dispatcher) command(ctx context.Context, actor service.Actor, frame Frame) error {
	projectID, action, err := commandDestination(frame.Destination)
	if err != nil {
		return err
	}

	body, err := d.apply(ctx, actor, projectID, action, frame.Payload)
	if err != nil {
		return err
	}

	who, err := d.users.Get(ctx, actor.ID)
	if err != nil {
		// Admin tokens have no backing row; fall back to the claims.
		who = &service.UserSummary{ID: actor.ID, UserID: actor.Handle, Username: actor.Handle}
	}

	out := OutboundFrame{
		Type:        FrameMessage,
		Destination: fmt.Sprintf("/topic/project/%d", projectID),
		Action:      action,
		Actor:       *who,
		Body:        body,
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return apperrors.ErrInternal(err, "marshal broadcast")
	}
	d.hub.Broadcast(projectID, payload)
	return nil
}

func (d *Dispatcher) apply(ctx context.Context, actor service.Actor, projectID int64, action string, payload json.RawMessage) (interface{}, error) {
	switch action {
	case "modify.project":
		var req service.PatchProjectRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.projects.Patch(ctx, actor, projectID, req)

	case "create.page":
		var req service.CreatePageRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		req.ProjectID = projectID
		return d.pages.Create(ctx, actor, req)

	case "modify.page":
		var req idPatch[service.PatchPageRequest]
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.pages.Patch(ctx, actor, req.ID, req.Patch)

	case "delete.page":
		var req idOnly
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return deletedBody(req.ID), d.pages.Delete(ctx, actor, req.ID)

	case "create.object":
		var req service.CreateObjectRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.objects.Create(ctx, actor, req)

	case "modify.object":
		var req idPatch[service.PatchObjectRequest]
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.objects.Patch(ctx, actor, req.ID, req.Patch)

	case "delete.object":
		var req idOnly
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return deletedBody(req.ID), d.objects.Delete(ctx, actor, req.ID)

	case "create.event":
		var req service.CreateEventRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.events.Create(ctx, actor, req)

	case "modify.event":
		var req idPatch[service.PatchEventRequest]
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return d.events.Patch(ctx, actor, req.ID, req.Patch)

	case "delete.event":
		var req idOnly
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return deletedBody(req.ID), d.events.Delete(ctx, actor, req.ID)
	}

	return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown command", action)
}

// idPatch wraps a patch payload with the target id.
type idPatch[T any] struct {
	ID    int64 `json:"id"`
	Patch T     `json:"patch"`
}

type idOnly struct {
	ID int64 `json:"id"`
}

func deletedBody(id int64) map[string]int64 {
	return map[string]int64{"id": id}
}

func unmarshalPayload(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return apperrors.BadRequest(apperrors.CodeInvalidRequest, "missing payload", "")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return apperrors.BadRequest(apperrors.CodeInvalidRequest, "malformed payload", err.Error())
	}
	return nil
}

func (d *Dispatcher) sendError(c *Client, err error) {
	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		appErr = apperrors.ErrInternal(err, "dispatch")
	}
	payload, marshalErr := json.Marshal(ErrorFrame{
		Type:         FrameError,
		ErrorCode:    appErr.Code,
		ErrorMessage: appErr.Message,
		Detail:       appErr.Detail,
	})
	if marshalErr != nil {
		return
	}
	c.trySend(payload)
}

// topicProjectID parses /topic/project/{id}.
func topicProjectID(destination string) (int64, error) {
	const prefix = "/topic/project/"
	if !strings.HasPrefix(destination, prefix) {
		return 0, apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown destination", destination)
	}
	id, err := strconv.ParseInt(destination[len(prefix):], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrConstraintViolation("destination project id must be a positive integer")
	}
	return id, nil
}

// commandDestination parses /app/project/{id}/{action}.
func commandDestination(destination string) (int64, string, error) {
	const prefix = "/app/project/"
	if !strings.HasPrefix(destination, prefix) {
		return 0, "", apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown destination", destination)
	}
	rest := destination[len(prefix):]
	idx := strings.IndexByte(rest, '/')
	if idx <= 0 || idx == len(rest)-1 {
		return 0, "", apperrors.BadRequest(apperrors.CodeInvalidRequest, "unknown destination", destination)
	}
	id, err := strconv.ParseInt(rest[:idx], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", apperrors.ErrConstraintViolation("destination project id must be a positive integer")
	}
	return id, rest[idx+1:], nil
}
