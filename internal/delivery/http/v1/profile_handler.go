package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/security"
)

type ProfileHandler struct {
	profileUC      domain.ProfileUsecase
	notificationUC domain.NotificationUsecase
}

func NewProfileHandler(protected, admin *gin.RouterGroup, profileUC domain.ProfileUsecase, notificationUC domain.NotificationUsecase) {
	handler := &ProfileHandler{profileUC: profileUC, notificationUC: notificationUC}

	profiles := protected.Group("/profile")
	{
		profiles.POST("", handler.Create)
		profiles.GET("", handler.GetMine)
		profiles.PUT("", handler.UpdateMine)
		profiles.DELETE("", handler.DeleteMine)
		profiles.GET("/search", handler.Search)
		profiles.GET("/:id/preview", handler.Preview)
		profiles.POST("/:id/image", handler.UploadImage)
	}

	adminProfiles := admin.Group("/profile")
	{
		adminProfiles.GET("/archived", handler.ListArchived)
		adminProfiles.PUT("/:id/archive", handler.Archive)
		adminProfiles.PUT("/:id/restore", handler.Restore)
		adminProfiles.DELETE("/:id/permanent", handler.DeletePermanently)
		adminProfiles.POST("/send-cvs", handler.SendCVs)
		adminProfiles.POST("/notify-update", handler.NotifyUpdate)
		adminProfiles.POST("/notify-update-collection", handler.NotifyCollection)
	}
}

// Create godoc
// @Summary      Create my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileInput  true  "Profile"
// @Success      201      {object}  response.Response{data=domain.Profile}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /profile [post]
// @Security     BearerAuth
func (h *ProfileHandler) Create(c *gin.Context) {
	var req domain.ProfileInput
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profileUC.Create(c.Request.Context(), middleware.ActorFrom(c).ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profil créé", profile)
}

// GetMine godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileDetails}
// @Failure      404  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMine(c *gin.Context) {
	profile, err := h.profileUC.GetMine(c.Request.Context(), middleware.ActorFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil", profile)
}

// UpdateMine godoc
// @Summary      Update my profile
// @Description  Fields left out keep their value. Skill lists that are sent replace the stored sets.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileInput  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.Profile}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	var req domain.ProfileInput
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profileUC.UpdateMine(c.Request.Context(), middleware.ActorFrom(c).ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil mis à jour", profile)
}

// DeleteMine godoc
// @Summary      Delete my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeleteMine(c *gin.Context) {
	if err := h.profileUC.DeleteMine(c.Request.Context(), middleware.ActorFrom(c).ID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil supprimé", nil)
}

// Search godoc
// @Summary      Search profiles by owner name
// @Tags         profile
// @Produce      json
// @Param        search  query     string  false  "Name fragment"
// @Success      200     {object}  response.Response{data=[]domain.ProfileSearchItem}
// @Router       /profile/search [get]
// @Security     BearerAuth
func (h *ProfileHandler) Search(c *gin.Context) {
	items, err := h.profileUC.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profils", items)
}

// Preview godoc
// @Summary      Preview a profile
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.ProfileDetails}
// @Failure      404  {object}  response.Response
// @Router       /profile/{id}/preview [get]
// @Security     BearerAuth
func (h *ProfileHandler) Preview(c *gin.Context) {
	profile, err := h.profileUC.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil", profile)
}

// UploadImage godoc
// @Summary      Upload a profile picture
// @Description  JPEG or PNG up to 5 MB, scaled to fit 512x512.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Profile ID"
// @Param        image  formData  file    true  "Picture"
// @Success      200    {object}  response.Response{data=domain.Profile}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      503    {object}  response.Response
// @Router       /profile/{id}/image [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("Le champ image est requis"))
		return
	}
	if fileHeader.Size > security.MaxImageBytes {
		c.Error(apperror.BadRequest(security.ErrImageTooLarge.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Impossible de lire le fichier"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, security.MaxImageBytes+1))
	if err != nil {
		c.Error(apperror.BadRequest("Impossible de lire le fichier"))
		return
	}

	profile, err := h.profileUC.UploadImage(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), fileHeader.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Image mise à jour", profile)
}

// ListArchived godoc
// @Summary      List archived profiles
// @Tags         profile
// @Produce      json
// @Param        search  query     string  false  "Name or email fragment"
// @Success      200     {object}  response.Response{data=[]domain.ProfileListItem}
// @Router       /profile/archived [get]
// @Security     BearerAuth
func (h *ProfileHandler) ListArchived(c *gin.Context) {
	items, err := h.profileUC.ListArchived(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profils archivés", items)
}

// Archive godoc
// @Summary      Archive a profile owner
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{id}/archive [put]
// @Security     BearerAuth
func (h *ProfileHandler) Archive(c *gin.Context) {
	if err := h.profileUC.Archive(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil archivé", nil)
}

// Restore godoc
// @Summary      Restore an archived profile owner
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{id}/restore [put]
// @Security     BearerAuth
func (h *ProfileHandler) Restore(c *gin.Context) {
	if err := h.profileUC.Restore(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil restauré", nil)
}

// DeletePermanently godoc
// @Summary      Delete a profile and its owner
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{id}/permanent [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeletePermanently(c *gin.Context) {
	if err := h.profileUC.DeletePermanently(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Utilisateur supprimé définitivement", nil)
}

// SendCVs godoc
// @Summary      Email CVs as a ZIP
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SendCVsInput  true  "Recipients and profiles"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profile/send-cvs [post]
// @Security     BearerAuth
func (h *ProfileHandler) SendCVs(c *gin.Context) {
	var req domain.SendCVsInput
	if !bindJSON(c, &req) {
		return
	}
	count, err := h.notificationUC.SendCVs(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CVs envoyés", gin.H{"profilesCount": count})
}

// NotifyUpdate godoc
// @Summary      Ask a user to update their CV
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        recipient  body      domain.Recipient  true  "Recipient"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /profile/notify-update [post]
// @Security     BearerAuth
func (h *ProfileHandler) NotifyUpdate(c *gin.Context) {
	var req domain.Recipient
	if !bindJSON(c, &req) {
		return
	}
	if err := h.notificationUC.NotifyUpdate(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email envoyé", nil)
}

// NotifyCollection godoc
// @Summary      Ask several users to update their CV
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.NotifyCollectionInput  true  "Recipients"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /profile/notify-update-collection [post]
// @Security     BearerAuth
func (h *ProfileHandler) NotifyCollection(c *gin.Context) {
	var req domain.NotifyCollectionInput
	if !bindJSON(c, &req) {
		return
	}
	if err := h.notificationUC.NotifyCollection(c.Request.Context(), req.Users); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Emails envoyés", gin.H{"count": len(req.Users)})
}
