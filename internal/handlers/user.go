// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

type UserHandler struct {
	userService   *services.UserService
	socialService *services.SocialService
}

func NewUserHandler(userService *services.UserService, socialService *services.SocialService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		socialService: socialService,
	}
}

// GET /users/:id
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	viewerID := actorFromContext(c)
	profile, err := h.userService.GetPublicProfile(userID, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load profile")
		return
	}

	utils.SuccessResponse(c, gin.H{"profile": profile})
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireActor(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update profile")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	state, err := h.socialService.ToggleFollow(actorID, artistID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfTarget):
			utils.BadRequestResponse(c, "You cannot follow yourself", nil)
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User")
		default:
			utils.InternalErrorResponse(c, "Failed to update follow")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"following":      state.Following,
		"follower_count": state.FollowerCount,
	})
}

// GET /users/:id/followers
func (h *UserHandler) GetFollowers(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	followers, total, err := h.userService.GetFollowers(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load followers")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(followers, total, params))
}
