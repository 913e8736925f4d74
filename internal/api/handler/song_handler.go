package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/ports"
)

type SongHandler struct {
	service ports.SongService
}

func NewSongHandler(service ports.SongService) *SongHandler {
	return &SongHandler{service: service}
}

func bindSongQuery(c echo.Context) (ports.ListSongsFilter, error) {
	var q listSongsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return ports.ListSongsFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	return ports.ListSongsFilter{
		Owner: q.Owner,
		Genre: q.Genre,
		Album: q.Album,
		Title: q.Title,
		Limit: q.Limit,
		Skip:  q.Skip,
	}, nil
}

// Create handles POST /songs. The owner is the caller.
//
// @Summary      Create a song
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      songRequest  true  "Song"
// @Success      201   {object}  domain.Song
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /songs [post]
func (h *SongHandler) Create(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req songRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	song, err := h.service.Create(c.Request().Context(), profile, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, song)
}

// Count handles GET /songs/count.
//
// @Summary      Count songs
// @Tags         songs
// @Produce      json
// @Param        owner  query     string  false  "Owner id"
// @Param        genre  query     string  false  "Genre"
// @Param        album  query     string  false  "Album"
// @Param        title  query     string  false  "Title substring"
// @Success      200    {object}  countResponse
// @Router       /songs/count [get]
func (h *SongHandler) Count(c echo.Context) error {
	filter, err := bindSongQuery(c)
	if err != nil {
		return err
	}
	n, err := h.service.Count(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

// List handles GET /songs.
//
// @Summary      List songs
// @Tags         songs
// @Produce      json
// @Param        owner  query     string  false  "Owner id"
// @Param        genre  query     string  false  "Genre"
// @Param        album  query     string  false  "Album"
// @Param        title  query     string  false  "Title substring"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Param        skip   query     int     false  "Offset"
// @Success      200    {array}   domain.Song
// @Router       /songs [get]
func (h *SongHandler) List(c echo.Context) error {
	filter, err := bindSongQuery(c)
	if err != nil {
		return err
	}
	songs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, songs)
}

// Get handles GET /songs/:id.
//
// @Summary      Get a song
// @Tags         songs
// @Produce      json
// @Param        id   path      string  true  "Song id"
// @Success      200  {object}  domain.Song
// @Failure      404  {object}  errorResponse
// @Router       /songs/{id} [get]
func (h *SongHandler) Get(c echo.Context) error {
	song, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, song)
}

// Update handles PATCH /songs/:id.
//
// @Summary      Update a song
// @Tags         songs
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Song id"
// @Param        body  body  songPatchRequest  true  "Fields to change"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /songs/{id} [patch]
func (h *SongHandler) Update(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req songPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), profile, c.Param("id"), req.toPatch()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Replace handles PUT /songs/:id.
//
// @Summary      Replace a song
// @Tags         songs
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Song id"
// @Param        body  body  songRequest  true  "Song"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /songs/{id} [put]
func (h *SongHandler) Replace(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	var req songRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Replace(c.Request().Context(), profile, c.Param("id"), req.toDomain()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /songs/:id.
//
// @Summary      Delete a song
// @Tags         songs
// @Security     BearerAuth
// @Param        id  path  string  true  "Song id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /songs/{id} [delete]
func (h *SongHandler) Delete(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), profile, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
