// internal/handlers/design.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

type DesignHandler struct {
	designService   *services.DesignService
	socialService   *services.SocialService
	downloadService *services.DownloadService
	storageService  *services.StorageService
}

func NewDesignHandler(designService *services.DesignService, socialService *services.SocialService, downloadService *services.DownloadService, storageService *services.StorageService) *DesignHandler {
	return &DesignHandler{
		designService:   designService,
		socialService:   socialService,
		downloadService: downloadService,
		storageService:  storageService,
	}
}

// GET /designs
func (h *DesignHandler) SearchDesigns(c *gin.Context) {
	params := services.DesignSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		if creatorID, err := uuid.Parse(creatorIDStr); err == nil {
			params.CreatorID = &creatorID
		}
	}
	if priceMin := c.Query("price_min"); priceMin != "" {
		if v, err := strconv.ParseFloat(priceMin, 64); err == nil {
			params.PriceMin = &v
		}
	}
	if priceMax := c.Query("price_max"); priceMax != "" {
		if v, err := strconv.ParseFloat(priceMax, 64); err == nil {
			params.PriceMax = &v
		}
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		params.Tags = tags
	}

	designs, total, err := h.designService.Search(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to search designs")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(designs, total, params.PaginationParams))
}

// GET /designs/popular
func (h *DesignHandler) GetPopularDesigns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	designs, err := h.designService.GetPopular(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load popular designs")
		return
	}

	utils.SuccessResponse(c, gin.H{"designs": designs})
}

// GET /designs/:id
func (h *DesignHandler) GetDesign(c *gin.Context) {
	designID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design ID", nil)
		return
	}

	viewerID := actorFromContext(c)
	design, err := h.designService.Get(designID, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrDesignNotFound) {
			utils.NotFoundResponse(c, "Design")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load design")
		return
	}

	utils.SuccessResponse(c, gin.H{"design": design})
}

// POST /designs
func (h *DesignHandler) CreateDesign(c *gin.Context) {
	creatorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req services.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	design, err := h.designService.Create(creatorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			utils.ForbiddenResponse(c, "Only artists can publish designs")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create design")
		return
	}

	utils.CreatedResponse(c, gin.H{"design": design})
}

// PUT /designs/:id
func (h *DesignHandler) UpdateDesign(c *gin.Context) {
	creatorID, ok := requireActor(c)
	if !ok {
		return
	}

	designID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design ID", nil)
		return
	}

	var req services.UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	design, err := h.designService.Update(designID, creatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignNotFound):
			utils.NotFoundResponse(c, "Design")
		case errors.Is(err, services.ErrNotOwner):
			utils.ForbiddenResponse(c, "You do not own this design")
		default:
			utils.InternalErrorResponse(c, "Failed to update design")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"design": design})
}

// DELETE /designs/:id
func (h *DesignHandler) DeleteDesign(c *gin.Context) {
	creatorID, ok := requireActor(c)
	if !ok {
		return
	}

	designID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design ID", nil)
		return
	}

	if err := h.designService.Delete(designID, creatorID); err != nil {
		switch {
		case errors.Is(err, services.ErrDesignNotFound):
			utils.NotFoundResponse(c, "Design")
		case errors.Is(err, services.ErrNotOwner):
			utils.ForbiddenResponse(c, "You do not own this design")
		default:
			utils.ConflictResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Design deleted"})
}

// POST /designs/:id/like
func (h *DesignHandler) ToggleLike(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	designID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design ID", nil)
		return
	}

	state, err := h.socialService.ToggleLike(actorID, designID)
	if err != nil {
		if errors.Is(err, services.ErrDesignNotFound) {
			utils.NotFoundResponse(c, "Design")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update like")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"liked":      state.Liked,
		"like_count": state.LikeCount,
	})
}

// GET /designs/:id/download
//
// Entitlement is re-checked on every call and the signed URL expires after
// five minutes, so the redirect target is never worth bookmarking.
func (h *DesignHandler) DownloadDesign(c *gin.Context) {
	designID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design ID", nil)
		return
	}

	actorID := actorFromContext(c)
	url, err := h.downloadService.IssueDownload(actorID, designID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			utils.UnauthorizedResponse(c, "")
		case errors.Is(err, services.ErrForbidden):
			utils.ForbiddenResponse(c, "Purchase this design to download it")
		case errors.Is(err, services.ErrDesignNotFound), errors.Is(err, services.ErrNoAsset):
			utils.NotFoundResponse(c, "Design asset")
		case errors.Is(err, services.ErrSigningFailed):
			utils.InternalErrorResponse(c, "Could not sign download URL")
		default:
			utils.InternalErrorResponse(c, "Failed to issue download")
		}
		return
	}

	c.Redirect(http.StatusFound, url)
}

// POST /uploads
func (h *DesignHandler) UploadFile(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}

	userType, _ := utils.GetUserTypeFromContext(c)
	if userType != string(models.UserTypeArtist) && userType != string(models.UserTypeAdmin) {
		utils.ForbiddenResponse(c, "Only artists can upload files")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	category := c.DefaultPostForm("category", "assets")
	options := h.storageService.GetDefaultUploadOptions(category)

	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"file": result})
}

// requireActor resolves the authenticated caller or writes a 401.
func requireActor(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

// actorFromContext returns the caller's ID when present, nil otherwise.
// Used on routes behind OptionalAuth.
func actorFromContext(c *gin.Context) *uuid.UUID {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}
