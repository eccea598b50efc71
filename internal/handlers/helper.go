package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"github.com/SAP-F-2025/question-authoring-service/internal/services"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// parseTarget reads the draft id, the optional item_id query parameter
// and an optional If-Match version.
func parseTarget(c *gin.Context) (services.DraftTarget, bool) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return services.DraftTarget{}, false
	}
	target := services.DraftTarget{
		DraftID: id,
		ItemID:  strings.TrimSpace(c.Query("item_id")),
	}

	if ifMatch := c.GetHeader("If-Match"); ifMatch != "" {
		version, err := parseETag(ifMatch)
		if err != nil || version <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid If-Match header",
				Details: "expected a draft version",
			})
			return services.DraftTarget{}, false
		}
		target.ExpectedVersion = version
	}
	return target, true
}

func parseETag(value string) (int, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "W/")
	return strconv.Atoi(strings.Trim(value, `"`))
}

func etag(version int) string {
	return `"` + strconv.Itoa(version) + `"`
}

// respondDraft writes a draft with its version as ETag.
func respondDraft(c *gin.Context, status int, draft *services.DraftResponse) {
	c.Header("ETag", etag(draft.Version))
	c.JSON(status, draft)
}

func parseDraftFilters(c *gin.Context) repositories.DraftFilters {
	filters := repositories.DraftFilters{
		CategoryPrefix: c.Query("category"),
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}
	if t := c.Query("type"); t != "" {
		qt := models.QuestionType(t)
		filters.Type = &qt
	}
	if d := c.Query("difficulty"); d != "" {
		difficulty := models.DifficultyLevel(d)
		filters.Difficulty = &difficulty
	}
	if s := c.Query("status"); s != "" {
		status := models.DraftStatus(s)
		filters.Status = &status
	}
	return filters
}
