package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jinzhu/copier"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/seatgrid"
	"github.com/iliyamo/cinema-admin-console/internal/service"
)

// RoomHandler serves the room list, the room form and the room detail page
// with its layout editor and showtime scheduling.
type RoomHandler struct {
	Rooms   *repository.RoomRepo
	Service *service.RoomService
	now     func() time.Time
}

func NewRoomHandler(rooms *repository.RoomRepo, svc *service.RoomService) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Service: svc, now: time.Now}
}

type roomListPage struct {
	page
	Rooms []model.Room
}

type roomFormPage struct {
	page
	Action string
	Input  roomInput
	Errors fieldErrors
}

type gridView struct {
	Cells  [][]seatgrid.Cell
	Action string // toggle endpoint; empty in view mode
	Inline bool   // cells are buttons inside the page's form, posting row and col in the query
}

type roomDetailPage struct {
	page
	Detail     *service.RoomDetail
	Configured int
	Day        string
	Grid       gridView
}

type layoutPage struct {
	page
	Session    *service.LayoutSession
	Configured int
	Grid       gridView
	Base       string
}

// List handles GET /rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return backendError(err, "rooms")
	}
	return c.Render(http.StatusOK, "rooms", roomListPage{page: newPage(c, "Rooms"), Rooms: rooms})
}

// New handles GET /rooms/new.
func (h *RoomHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, "room_form", roomFormPage{page: newPage(c, "New room"), Action: "/rooms"})
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	in, errs := bindRoom(c)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "room_form", roomFormPage{page: newPage(c, "New room"), Action: "/rooms", Input: in, Errors: errs})
	}
	var form model.RoomForm
	if err := copier.Copy(&form, &in); err != nil {
		return err
	}
	room, err := h.Rooms.Create(c.Request().Context(), form)
	if err != nil {
		return backendError(err, "room")
	}
	return redirectNotice(c, fmt.Sprintf("/rooms/%d", room.ID), "Room created.")
}

// Edit handles GET /rooms/:id/edit.
func (h *RoomHandler) Edit(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	room, err := h.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return backendError(err, "room")
	}
	var in roomInput
	if err := copier.Copy(&in, room); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "room_form", roomFormPage{
		page:   newPage(c, "Edit "+room.Name),
		Action: fmt.Sprintf("/rooms/%d", id),
		Input:  in,
	})
}

// Update handles POST /rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	in, errs := bindRoom(c)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "room_form", roomFormPage{
			page: newPage(c, "Edit room"), Action: fmt.Sprintf("/rooms/%d", id), Input: in, Errors: errs,
		})
	}
	var form model.RoomForm
	if err := copier.Copy(&form, &in); err != nil {
		return err
	}
	if _, err := h.Rooms.Update(c.Request().Context(), id, form); err != nil {
		return backendError(err, "room")
	}
	return redirectNotice(c, fmt.Sprintf("/rooms/%d", id), "Room updated.")
}

// Delete handles POST /rooms/:id/delete.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return backendError(err, "room")
	}
	return redirectNotice(c, "/rooms", "Room deleted.")
}

func bindRoom(c echo.Context) (roomInput, fieldErrors) {
	var in roomInput
	if err := c.Bind(&in); err != nil {
		return in, fieldErrors{"form": "Capacity and break time must be whole numbers."}
	}
	in.trim()
	return in, check(&in)
}

// Show handles GET /rooms/:id?date=YYYY-MM-DD.
func (h *RoomHandler) Show(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	day := service.ParseDay(c.QueryParam("date"), h.Service.Location(), h.now())
	d, err := h.Service.Detail(c.Request().Context(), id, day)
	if err != nil {
		return backendError(err, "room")
	}
	p := newPage(c, d.Room.Name)
	if msg := c.QueryParam("error"); msg != "" {
		p.Error = msg
	}
	return c.Render(http.StatusOK, "room_detail", roomDetailPage{
		page:       p,
		Detail:     d,
		Configured: len(d.Grid.Active()),
		Day:        d.Day.Format(service.DayLayout),
		Grid:       gridView{Cells: d.Grid.Cells()},
	})
}

// BeginEdit handles POST /rooms/:id/layout.
func (h *RoomHandler) BeginEdit(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sess, err := h.Service.BeginEdit(c.Request().Context(), id)
	if err != nil {
		return backendError(err, "room")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/rooms/%d/layout/%s", id, sess.ID))
}

func (h *RoomHandler) layoutSession(c echo.Context) (*service.LayoutSession, error) {
	sid := c.Param("sid")
	if !validSessionID(sid) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "editing session not found")
	}
	sess, err := h.Service.EditSession(c.Request().Context(), sid)
	if err != nil {
		return nil, backendError(err, "editing session")
	}
	return sess, nil
}

func (h *RoomHandler) renderLayout(c echo.Context, status int, sess *service.LayoutSession, msg string) error {
	base := fmt.Sprintf("/rooms/%d/layout/%s", sess.Room.ID, sess.ID)
	p := newPage(c, "Edit seats of "+sess.Room.Name)
	p.Error = msg
	return c.Render(status, "room_layout", layoutPage{
		page:       p,
		Session:    sess,
		Configured: len(sess.Grid.Active()),
		Grid:       gridView{Cells: sess.Grid.Cells(), Action: base + "/toggle"},
		Base:       base,
	})
}

// Layout handles GET /rooms/:id/layout/:sid.
func (h *RoomHandler) Layout(c echo.Context) error {
	sess, err := h.layoutSession(c)
	if err != nil {
		return err
	}
	return h.renderLayout(c, http.StatusOK, sess, "")
}

// ToggleSeat handles POST /rooms/:id/layout/:sid/toggle.
func (h *RoomHandler) ToggleSeat(c echo.Context) error {
	sess, err := h.layoutSession(c)
	if err != nil {
		return err
	}
	sess, out, err := h.Service.ToggleSeat(c.Request().Context(), sess.ID, formInt(c, "row"), formInt(c, "col"))
	if err != nil {
		return backendError(err, "editing session")
	}
	msg := ""
	if out == seatgrid.Full {
		msg = fmt.Sprintf("The room already has its %d seats configured.", sess.Room.Capacity)
	}
	return h.renderLayout(c, http.StatusOK, sess, msg)
}

// SaveLayout handles POST /rooms/:id/layout/:sid/save.
func (h *RoomHandler) SaveLayout(c echo.Context) error {
	sess, err := h.layoutSession(c)
	if err != nil {
		return err
	}
	if _, err := h.Service.SaveLayout(c.Request().Context(), sess.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return backendError(err, "room")
		}
		return h.renderLayout(c, http.StatusBadGateway, sess, "Saving failed. Please try again.")
	}
	return redirectNotice(c, fmt.Sprintf("/rooms/%d", sess.Room.ID), "Seat layout saved.")
}

// CancelEdit handles POST /rooms/:id/layout/:sid/cancel.
func (h *RoomHandler) CancelEdit(c echo.Context) error {
	sess, err := h.layoutSession(c)
	if err != nil {
		return err
	}
	if err := h.Service.CancelEdit(c.Request().Context(), sess.ID); err != nil {
		return backendError(err, "editing session")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/rooms/%d", sess.Room.ID))
}

// AddShowtime handles POST /rooms/:id/showtimes with movie_id and date.
func (h *RoomHandler) AddShowtime(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	movieID := int64(formInt(c, "movie_id"))
	if movieID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid movie_id")
	}
	day := service.ParseDay(c.FormValue("date"), h.Service.Location(), h.now())
	back := fmt.Sprintf("/rooms/%d?date=%s", id, day.Format(service.DayLayout))

	st, err := h.Service.AddShowtime(c.Request().Context(), id, movieID, day)
	if errors.Is(err, service.ErrScheduleFull) {
		return c.Redirect(http.StatusSeeOther, back+"&error="+urlEscape("No room left on this day: the last showtime ends after 22:00."))
	}
	if err != nil {
		return backendError(err, "room or movie")
	}
	return redirectNotice(c, back, "Showtime added at "+st.StartTime.In(h.Service.Location()).Format("15:04")+".")
}
