package handler

import (
	"fmt"
	"net/http"

	"github.com/jinzhu/copier"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/service"
)

// MovieHandler serves the movie list, the movie form and the movie page
// with its showtimes.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Service *service.MovieService
}

func NewMovieHandler(movies *repository.MovieRepo, svc *service.MovieService) *MovieHandler {
	return &MovieHandler{Movies: movies, Service: svc}
}

type movieListPage struct {
	page
	Movies []model.Movie
}

type movieFormPage struct {
	page
	Action          string
	Input           movieInput
	Errors          fieldErrors
	Classifications []model.Option
	Formats         []model.Option
}

type movieDetailPage struct {
	page
	Detail *service.MovieDetail
}

func (h *MovieHandler) form(c echo.Context, title, action string, in movieInput, errs fieldErrors) movieFormPage {
	return movieFormPage{
		page:            newPage(c, title),
		Action:          action,
		Input:           in,
		Errors:          errs,
		Classifications: model.Classifications,
		Formats:         model.Formats,
	}
}

// List handles GET /movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return backendError(err, "movies")
	}
	return c.Render(http.StatusOK, "movies", movieListPage{page: newPage(c, "Movies"), Movies: movies})
}

// New handles GET /movies/new.
func (h *MovieHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, "movie_form", h.form(c, "New movie", "/movies", movieInput{}, nil))
}

// Create handles POST /movies.
func (h *MovieHandler) Create(c echo.Context) error {
	in, errs := bindMovie(c)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "movie_form", h.form(c, "New movie", "/movies", in, errs))
	}
	var form model.MovieForm
	if err := copier.Copy(&form, &in); err != nil {
		return err
	}
	m, err := h.Movies.Create(c.Request().Context(), form)
	if err != nil {
		return backendError(err, "movie")
	}
	return redirectNotice(c, fmt.Sprintf("/movies/%d", m.ID), "Movie created.")
}

// Edit handles GET /movies/:id/edit.
func (h *MovieHandler) Edit(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Movies.Get(c.Request().Context(), id)
	if err != nil {
		return backendError(err, "movie")
	}
	var in movieInput
	if err := copier.Copy(&in, m); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "movie_form", h.form(c, "Edit "+m.Title, fmt.Sprintf("/movies/%d", id), in, nil))
}

// Update handles POST /movies/:id.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/movies/%d", id)
	in, errs := bindMovie(c)
	if errs != nil {
		return c.Render(http.StatusUnprocessableEntity, "movie_form", h.form(c, "Edit movie", action, in, errs))
	}
	var form model.MovieForm
	if err := copier.Copy(&form, &in); err != nil {
		return err
	}
	if _, err := h.Movies.Update(c.Request().Context(), id, form); err != nil {
		return backendError(err, "movie")
	}
	return redirectNotice(c, action, "Movie updated.")
}

// Delete handles POST /movies/:id/delete.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return backendError(err, "movie")
	}
	return redirectNotice(c, "/movies", "Movie deleted.")
}

func bindMovie(c echo.Context) (movieInput, fieldErrors) {
	var in movieInput
	if err := c.Bind(&in); err != nil {
		return in, fieldErrors{"form": "Duration must be a whole number of minutes."}
	}
	in.trim()
	return in, check(&in)
}

// Show handles GET /movies/:id.
func (h *MovieHandler) Show(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.Service.Detail(c.Request().Context(), id)
	if err != nil {
		return backendError(err, "movie")
	}
	return c.Render(http.StatusOK, "movie_detail", movieDetailPage{page: newPage(c, d.Movie.Title), Detail: d})
}
