package handlers

import (
	"net/http"
	"strconv"

	"gatekeeper/models"
	"gatekeeper/service"

	"github.com/gin-gonic/gin"
)

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, CategoryValidation, "invalid post id")
		return 0, false
	}
	return uint(id), true
}

// SubmitPost accepts a new content submission and acknowledges it with 202.
func SubmitPost(c *gin.Context) {
	var req models.PostCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CategoryValidation, "invalid request body: "+err.Error())
		return
	}

	post, err := service.GlobalServices.Post.Submit(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusAccepted, post.Receipt())
}

// ApprovePost approves a pending post. Reviewers reach this from the
// notification action link, so the confirmation negotiates HTML vs JSON.
func ApprovePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := service.GlobalServices.Post.Approve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondDecision(c, decisionResult{Post: post, Action: "approved"})
}

// RejectPost rejects a pending post. Mirrors ApprovePost without the callback.
func RejectPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := service.GlobalServices.Post.Reject(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondDecision(c, decisionResult{Post: post, Action: "rejected"})
}

// ConfirmPosted marks an approved post as published downstream.
func ConfirmPosted(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := service.GlobalServices.Post.ConfirmPosted(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondDataMessage(c, http.StatusOK, post, "post marked as posted")
}

// ListPosts returns posts newest-first with optional status filter and paging.
func ListPosts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, CategoryValidation, "invalid limit")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, CategoryValidation, "invalid offset")
			return
		}
		offset = parsed
	}

	page, err := service.GlobalServices.Post.List(c.Query("status"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondPage(c, page.Posts, Pagination{Total: page.Total, Limit: page.Limit, Offset: page.Offset})
}

// GetPost returns a single post
func GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := service.GlobalServices.Post.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, post)
}

// DeletePost removes a post
func DeletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := service.GlobalServices.Post.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	respondDataMessage(c, http.StatusOK, gin.H{"id": id}, "post deleted")
}

// GetPostStats returns per-status submission counts.
func GetPostStats(c *gin.Context) {
	stats, err := service.GlobalServices.Post.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
