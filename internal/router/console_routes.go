package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/handler"
)

// RegisterDashboard registers the home page and the reservation actions.
func RegisterDashboard(g *echo.Group, h *handler.DashboardHandler) {
	g.GET("/home", h.Home)
	g.POST("/reservations/:id/confirm", h.Confirm)
	g.POST("/reservations/:id/cancel", h.Cancel)
	g.GET("/reservations/:id/confirmation", h.Confirmation)
}

// RegisterRooms registers room management.  Browsers only send GET and POST,
// so updates and deletes are POSTs to dedicated paths.
func RegisterRooms(g *echo.Group, h *handler.RoomHandler) {
	g.GET("/rooms", h.List)
	g.GET("/rooms/new", h.New)
	g.POST("/rooms", h.Create)
	g.GET("/rooms/:id", h.Show)
	g.GET("/rooms/:id/edit", h.Edit)
	g.POST("/rooms/:id", h.Update)
	g.POST("/rooms/:id/delete", h.Delete)

	// ---- Seat layout editor ----
	g.POST("/rooms/:id/layout", h.BeginEdit)
	g.GET("/rooms/:id/layout/:sid", h.Layout)
	g.POST("/rooms/:id/layout/:sid/toggle", h.ToggleSeat)
	g.POST("/rooms/:id/layout/:sid/save", h.SaveLayout)
	g.POST("/rooms/:id/layout/:sid/cancel", h.CancelEdit)

	// ---- Showtimes ----
	g.POST("/rooms/:id/showtimes", h.AddShowtime)
}

// RegisterMovies registers movie management and the movie page.
func RegisterMovies(g *echo.Group, h *handler.MovieHandler) {
	g.GET("/movies", h.List)
	g.GET("/movies/new", h.New)
	g.POST("/movies", h.Create)
	g.GET("/movies/:id", h.Show)
	g.GET("/movies/:id/edit", h.Edit)
	g.POST("/movies/:id", h.Update)
	g.POST("/movies/:id/delete", h.Delete)
}

// RegisterCheckout registers the reservation flow.  The first route opens a
// checkout for a showtime and redirects to its page.
func RegisterCheckout(g *echo.Group, h *handler.CheckoutHandler) {
	g.GET("/reservation/:movieId/:roomId/:showtimeId", h.Start)
	g.GET("/checkout/:sid", h.Show)
	g.POST("/checkout/:sid/quantity", h.Quantity)
	g.POST("/checkout/:sid/toggle", h.Toggle)
	g.POST("/checkout/:sid/submit", h.Submit)
}
