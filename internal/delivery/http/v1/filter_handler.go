package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
)

type FilterHandler struct {
	filterUC domain.FilterUsecase
}

func NewFilterHandler(protected *gin.RouterGroup, filterUC domain.FilterUsecase) {
	handler := &FilterHandler{filterUC: filterUC}

	filters := protected.Group("/filter")
	{
		filters.POST("", handler.Create)
		filters.GET("", handler.List)
		filters.POST("/apply", handler.Apply)
		filters.GET("/:id", handler.Get)
		filters.PUT("/:id", handler.Update)
		filters.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Save a filter
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        filter  body      domain.SavedFilterInput  true  "Filter"
// @Success      201     {object}  response.Response{data=domain.SavedFilter}
// @Failure      400     {object}  response.Response
// @Router       /filter [post]
// @Security     BearerAuth
func (h *FilterHandler) Create(c *gin.Context) {
	var req domain.SavedFilterInput
	if !bindJSON(c, &req) {
		return
	}
	saved, err := h.filterUC.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Filtre enregistré", saved)
}

// List godoc
// @Summary      List my saved filters
// @Tags         filter
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SavedFilter}
// @Router       /filter [get]
// @Security     BearerAuth
func (h *FilterHandler) List(c *gin.Context) {
	filters, err := h.filterUC.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filtres", filters)
}

// Get godoc
// @Summary      Get a saved filter
// @Tags         filter
// @Produce      json
// @Param        id   path      string  true  "Filter ID"
// @Success      200  {object}  response.Response{data=domain.SavedFilter}
// @Failure      404  {object}  response.Response
// @Router       /filter/{id} [get]
// @Security     BearerAuth
func (h *FilterHandler) Get(c *gin.Context) {
	saved, err := h.filterUC.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filtre", saved)
}

// Update godoc
// @Summary      Update a saved filter
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "Filter ID"
// @Param        filter  body      domain.SavedFilterInput  true  "Filter"
// @Success      200     {object}  response.Response{data=domain.SavedFilter}
// @Failure      404     {object}  response.Response
// @Router       /filter/{id} [put]
// @Security     BearerAuth
func (h *FilterHandler) Update(c *gin.Context) {
	var req domain.SavedFilterInput
	if !bindJSON(c, &req) {
		return
	}
	saved, err := h.filterUC.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filtre mis à jour", saved)
}

// Delete godoc
// @Summary      Delete a saved filter
// @Tags         filter
// @Produce      json
// @Param        id   path      string  true  "Filter ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /filter/{id} [delete]
// @Security     BearerAuth
func (h *FilterHandler) Delete(c *gin.Context) {
	if err := h.filterUC.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filtre supprimé", nil)
}

// Apply godoc
// @Summary      Search profiles
// @Description  Pages hold 20 profiles; offset is the page index.
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        query  body      domain.ProfileQuery  true  "Criteria"
// @Success      200    {object}  response.Response{data=domain.ProfileQueryResult}
// @Failure      400    {object}  response.Response
// @Router       /filter/apply [post]
// @Security     BearerAuth
func (h *FilterHandler) Apply(c *gin.Context) {
	var req domain.ProfileQuery
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.filterUC.Apply(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profils", result)
}
