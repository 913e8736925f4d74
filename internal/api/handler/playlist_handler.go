package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/ports"
)

type PlaylistHandler struct {
	service ports.PlaylistService
}

func NewPlaylistHandler(service ports.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func bindPlaylistQuery(c echo.Context) (ports.ListPlaylistsFilter, error) {
	var q listPlaylistsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return ports.ListPlaylistsFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	return ports.ListPlaylistsFilter{
		Owner: q.Owner,
		Tag:   q.Tag,
		Name:  q.Name,
		Limit: q.Limit,
		Skip:  q.Skip,
	}, nil
}

// Create handles POST /playlists. The owner is the caller and the creation
// counts towards the owner's number_of_playlists_created.
//
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      playlistRequest  true  "Playlist"
// @Success      201   {object}  domain.Playlist
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /playlists [post]
func (h *PlaylistHandler) Create(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req playlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	playlist, err := h.service.Create(c.Request().Context(), profile, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, playlist)
}

// Count handles GET /playlists/count.
//
// @Summary      Count playlists
// @Tags         playlists
// @Produce      json
// @Param        owner  query     string  false  "Owner id"
// @Param        tag    query     string  false  "Tag"
// @Param        name   query     string  false  "Name substring"
// @Success      200    {object}  countResponse
// @Router       /playlists/count [get]
func (h *PlaylistHandler) Count(c echo.Context) error {
	filter, err := bindPlaylistQuery(c)
	if err != nil {
		return err
	}
	n, err := h.service.Count(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

// List handles GET /playlists.
//
// @Summary      List playlists
// @Tags         playlists
// @Produce      json
// @Param        owner  query     string  false  "Owner id"
// @Param        tag    query     string  false  "Tag"
// @Param        name   query     string  false  "Name substring"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Param        skip   query     int     false  "Offset"
// @Success      200    {array}   domain.Playlist
// @Router       /playlists [get]
func (h *PlaylistHandler) List(c echo.Context) error {
	filter, err := bindPlaylistQuery(c)
	if err != nil {
		return err
	}
	playlists, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playlists)
}

// Get handles GET /playlists/:id.
//
// @Summary      Get a playlist
// @Tags         playlists
// @Produce      json
// @Param        id   path      string  true  "Playlist id"
// @Success      200  {object}  domain.Playlist
// @Failure      404  {object}  errorResponse
// @Router       /playlists/{id} [get]
func (h *PlaylistHandler) Get(c echo.Context) error {
	playlist, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playlist)
}

// Update handles PATCH /playlists/:id.
//
// @Summary      Update a playlist
// @Tags         playlists
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Playlist id"
// @Param        body  body  playlistPatchRequest  true  "Fields to change"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /playlists/{id} [patch]
func (h *PlaylistHandler) Update(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req playlistPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), profile, c.Param("id"), req.toPatch()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Replace handles PUT /playlists/:id.
//
// @Summary      Replace a playlist
// @Tags         playlists
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Playlist id"
// @Param        body  body  playlistRequest  true  "Playlist"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /playlists/{id} [put]
func (h *PlaylistHandler) Replace(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req playlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Replace(c.Request().Context(), profile, c.Param("id"), req.toDomain()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /playlists/:id.
//
// @Summary      Delete a playlist
// @Tags         playlists
// @Security     BearerAuth
// @Param        id  path  string  true  "Playlist id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /playlists/{id} [delete]
func (h *PlaylistHandler) Delete(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), profile, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
