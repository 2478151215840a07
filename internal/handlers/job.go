// internal/handlers/job.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// GET /jobs
func (h *JobHandler) SearchJobs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobService.Search(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to search jobs")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(jobs, total, params))
}

// GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job ID", nil)
		return
	}

	job, err := h.jobService.Get(jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			utils.NotFoundResponse(c, "Job")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load job")
		return
	}

	utils.SuccessResponse(c, gin.H{"job": job})
}

// POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	posterID, ok := requireActor(c)
	if !ok {
		return
	}

	var req services.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	job, err := h.jobService.Create(posterID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to create job")
		return
	}

	utils.CreatedResponse(c, gin.H{"job": job})
}

// PUT /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	posterID, ok := requireActor(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job ID", nil)
		return
	}

	var req services.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	job, err := h.jobService.Update(jobID, posterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			utils.NotFoundResponse(c, "Job")
		case errors.Is(err, services.ErrNotOwner):
			utils.ForbiddenResponse(c, "You do not own this job post")
		default:
			utils.InternalErrorResponse(c, "Failed to update job")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"job": job})
}

// DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	posterID, ok := requireActor(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job ID", nil)
		return
	}

	if err := h.jobService.Delete(jobID, posterID); err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			utils.NotFoundResponse(c, "Job")
		case errors.Is(err, services.ErrNotOwner):
			utils.ForbiddenResponse(c, "You do not own this job post")
		default:
			utils.InternalErrorResponse(c, "Failed to delete job")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Job deleted"})
}
