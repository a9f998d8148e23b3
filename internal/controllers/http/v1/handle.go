package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"weather-widget/internal/location"
	"weather-widget/internal/presentation"
	"weather-widget/internal/services/lookup"
)

const (
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
	locatedCookie   = "widget_located"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: city"`
}

// handleIndex asks the browser for its position on the first page view of a session.
func (r *routes) handleIndex(c *fiber.Ctx) error {
	autoLocate := c.Cookies(locatedCookie) == ""
	if autoLocate {
		c.Cookie(&fiber.Cookie{
			Name:        locatedCookie,
			Value:       "1",
			Path:        "/",
			HTTPOnly:    true,
			SameSite:    fiber.CookieSameSiteLaxMode,
			SessionOnly: true,
		})
	}
	return r.render(c, r.controller.State(), "", autoLocate)
}

func (r *routes) handleSearchForm(c *fiber.Ctx) error {
	city := c.FormValue("city")
	state := r.controller.Search(c.UserContext(), city)
	return r.render(c, state, city, false)
}

func (r *routes) render(c *fiber.Ctx, state lookup.State, city string, autoLocate bool) error {
	theme := presentation.ParseTheme(c.Query("theme"), c.Get(colorSchemeHint))

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set("Accept-CH", colorSchemeHint)
	c.Vary(colorSchemeHint)

	if err := r.renderer.Render(c, presentation.NewView(state, r.loc), theme, city, autoLocate); err != nil {
		r.l.Error(err, map[string]any{"kind": state.Kind().String()})
		return c.Status(fiber.StatusInternalServerError).SendString("Erreur d'affichage")
	}
	return nil
}

// GetState godoc
// @Summary Get the lookup state
// @Description Returns the current state of the widget: idle, loading, error or ready
// @Tags Lookup
// @Produce json
// @Success 200 {object} lookup.Snapshot "Current state"
// @Router /api/v1/state [get]
func (r *routes) handleState(c *fiber.Ctx) error {
	return c.JSON(r.controller.State())
}

// Search godoc
// @Summary Look up the weather of a city
// @Description Fetches current conditions and the forecast of a city, then returns the resulting state
// @Tags Lookup
// @Produce json
// @Param city query string true "City name" example(Paris)
// @Success 200 {object} lookup.Snapshot "Resulting state, ready or error"
// @Failure 400 {object} ErrorResponse "Missing city"
// @Router /api/v1/search [post]
//
//	curl -X POST "http://localhost:8080/api/v1/search?city=Paris"
func (r *routes) handleSearch(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		city = c.FormValue("city")
	}
	if strings.TrimSpace(city) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: city",
		})
	}

	return c.JSON(r.controller.Search(c.UserContext(), city))
}

// Locate godoc
// @Summary Look up the weather at the browser position
// @Description Reports the outcome of the browser geolocation, coordinates or an error code, and runs a lookup
// @Tags Lookup
// @Produce json
// @Param lat query number false "Latitude (-90 to 90)" example(48.8566)
// @Param lon query number false "Longitude (-180 to 180)" example(2.3522)
// @Param error query string false "Geolocation failure" Enums(denied, unavailable, failed)
// @Success 200 {object} lookup.Snapshot "Resulting state, ready or error"
// @Router /api/v1/locate [post]
func (r *routes) handleLocate(c *fiber.Ctx) error {
	resolver := location.NewReported(c.Query("lat"), c.Query("lon"), c.Query("error"))
	return c.JSON(r.controller.Locate(c.UserContext(), resolver))
}
