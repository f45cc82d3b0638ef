package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avolkova/inkwell/internal/server/models"
	"github.com/avolkova/inkwell/internal/server/services"
	"github.com/labstack/echo/v4"
)

// --- request/response shapes ---

type passcodeRequest struct {
	Passcode string `json:"passcode"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type statusResponse struct {
	Authenticated bool `json:"authenticated"`
	HasPasscode   bool `json:"hasPasscode"`
}

type createEntryRequest struct {
	EntryType         string `json:"entryType"`
	BodyMarkdown      string `json:"bodyMarkdown"`
	AngerReason       string `json:"angerReason"`
	GratitudePromptID string `json:"gratitudePromptId"`
	CreativePromptID  string `json:"creativePromptId"`
}

type generateRequest struct {
	PersonaIDs []string `json:"personaIds"`
	SeedText   string   `json:"seedText"`
}

type entryJSON struct {
	ID                  string    `json:"id"`
	EntryType           string    `json:"entryType"`
	Title               string    `json:"title"`
	BodyMarkdown        string    `json:"bodyMarkdown"`
	AngerReason         *string   `json:"angerReason,omitempty"`
	GratitudePromptID   *string   `json:"gratitudePromptId,omitempty"`
	GratitudePromptText *string   `json:"gratitudePromptText,omitempty"`
	CreativePromptID    *string   `json:"creativePromptId,omitempty"`
	CreativePromptText  *string   `json:"creativePromptText,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type personaJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

type generatedPromptJSON struct {
	ID         string                   `json:"id"`
	Text       string                   `json:"text"`
	Personas   []models.PersonaSnapshot `json:"personas"`
	FromOllama bool                     `json:"fromOllama"`
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func toEntryJSON(e *models.Entry) entryJSON {
	return entryJSON{
		ID:                  e.ID,
		EntryType:           string(e.Type),
		Title:               e.Title,
		BodyMarkdown:        e.BodyMarkdown,
		AngerReason:         e.AngerReason,
		GratitudePromptID:   e.GratitudePromptID,
		GratitudePromptText: e.GratitudePromptText,
		CreativePromptID:    e.CreativePromptID,
		CreativePromptText:  e.CreativePromptText,
		CreatedAt:           e.CreatedAt,
	}
}

// --- handlers ---

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAuthStatus(c echo.Context) error {
	st := s.sessions.Status(c.Request().Context(), sessionToken(c))
	return c.JSON(http.StatusOK, statusResponse{
		Authenticated: st.Authenticated,
		HasPasscode:   st.HasPasscode,
	})
}

func (s *Server) handleAuthSet(c echo.Context) error {
	var req passcodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := s.sessions.SetPasscode(c.Request().Context(), req.Passcode)
	if err != nil {
		return httpError(err)
	}

	s.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleAuthVerify(c echo.Context) error {
	var req passcodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := s.sessions.VerifyPasscode(c.Request().Context(), req.Passcode)
	if err != nil {
		return httpError(err)
	}

	s.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleAuthLogout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleListEntries(c echo.Context) error {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 0)

	result, err := s.entries.List(c.Request().Context(), currentUserID(c), page, pageSize)
	if err != nil {
		return httpError(err)
	}

	items := make([]entryJSON, 0, len(result.Entries))
	for _, e := range result.Entries {
		items = append(items, toEntryJSON(e))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"entries": items,
		"meta":    listMeta{Page: result.Page, PageSize: result.PageSize, Total: result.Total},
	})
}

func (s *Server) handleCreateEntry(c echo.Context) error {
	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := s.entries.Create(c.Request().Context(), currentUserID(c), services.CreateEntryInput{
		EntryType:         req.EntryType,
		BodyMarkdown:      req.BodyMarkdown,
		AngerReason:       req.AngerReason,
		GratitudePromptID: req.GratitudePromptID,
		CreativePromptID:  req.CreativePromptID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"entry": toEntryJSON(entry)})
}

func (s *Server) handleGetEntry(c echo.Context) error {
	entry, err := s.entries.GetByID(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"entry": toEntryJSON(entry)})
}

func (s *Server) handleRandomGratitudePrompt(c echo.Context) error {
	prompt, err := s.catalog.RandomGratitudePrompt(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"prompt": map[string]string{"id": prompt.ID, "text": prompt.Text},
	})
}

func (s *Server) handleListPersonas(c echo.Context) error {
	result, err := s.catalog.ListActivePersonas(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	items := make([]personaJSON, 0, len(result))
	for _, p := range result {
		items = append(items, personaJSON{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			DisplayOrder: p.DisplayOrder,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"personas": items})
}

// handleGenerateCreative returns 201 when the text came from the generation
// service and 202 when the deterministic fallback was used. Both carry a
// usable, stored prompt; the fallback is not an error.
func (s *Server) handleGenerateCreative(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.generator.Generate(c.Request().Context(), req.PersonaIDs, req.SeedText)
	if err != nil {
		return httpError(err)
	}

	status := http.StatusCreated
	if !result.FromOllama {
		status = http.StatusAccepted
	}

	return c.JSON(status, map[string]any{
		"prompt": generatedPromptJSON{
			ID:         result.ID,
			Text:       result.Text,
			Personas:   result.Personas,
			FromOllama: result.FromOllama,
		},
	})
}

type toggleRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) handleToggleGratitudePrompt(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "active field is required")
	}

	if err := s.catalog.SetGratitudePromptActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleTogglePersona(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "active field is required")
	}

	if err := s.catalog.SetPersonaActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
