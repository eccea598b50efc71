package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-authoring-service/internal/services"
	"github.com/SAP-F-2025/question-authoring-service/internal/utils"
)

type HandlerManager struct {
	draftHandler    *DraftHandler
	editorHandler   *EditorHandler
	categoryHandler *CategoryHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		draftHandler:    NewDraftHandler(serviceManager.Draft(), serviceManager.Export(), logger),
		editorHandler:   NewEditorHandler(serviceManager.Editor(), logger),
		categoryHandler: NewCategoryHandler(serviceManager.Category(), logger),
	}
}

// SetupRoutes sets up all API routes. authMiddleware guards everything
// under /api/v1 except the category tree.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", hm.categoryHandler.GetCategories)

		secured := v1.Group("")
		secured.Use(authMiddleware)

		// Draft lifecycle
		drafts := secured.Group("/drafts")
		{
			drafts.POST("", hm.draftHandler.CreateDraft)
			drafts.GET("", hm.draftHandler.ListDrafts)
			drafts.GET("/stats", hm.draftHandler.GetDraftStats)
			drafts.GET("/:id", hm.draftHandler.GetDraft)
			drafts.PUT("/:id", hm.draftHandler.UpdateDraft)
			drafts.DELETE("/:id", hm.draftHandler.DeleteDraft)
			drafts.GET("/:id/preview", hm.draftHandler.PreviewDraft)
			drafts.POST("/:id/publish", hm.draftHandler.PublishDraft)
			drafts.GET("/:id/export", hm.draftHandler.ExportDraft)

			// Category selection
			drafts.GET("/:id/category", hm.categoryHandler.GetDraftCategory)
			drafts.PUT("/:id/category", hm.categoryHandler.SelectCategory)
			drafts.PUT("/:id/category/toggle", hm.categoryHandler.ToggleCategory)

			// Editor
			drafts.PUT("/:id/content", hm.editorHandler.SetContent)
			drafts.PUT("/:id/focus", hm.editorHandler.SetFocus)

			drafts.POST("/:id/blanks", hm.editorHandler.AddBlank)
			drafts.DELETE("/:id/blanks/:blank_id", hm.editorHandler.RemoveBlank)

			drafts.POST("/:id/arrangement/mix", hm.editorHandler.MixWords)
			drafts.POST("/:id/arrangement/remix", hm.editorHandler.RemixWords)

			drafts.POST("/:id/options", hm.editorHandler.AddOption)
			drafts.DELETE("/:id/options/:option_id", hm.editorHandler.DeleteOption)
			drafts.POST("/:id/options/:option_id/inputs", hm.editorHandler.AddInput)
			drafts.PUT("/:id/options/:option_id/inputs/:input_id", hm.editorHandler.SetInputText)
			drafts.DELETE("/:id/options/:option_id/inputs/:input_id", hm.editorHandler.DeleteInput)
			drafts.POST("/:id/options/:option_id/correct", hm.editorHandler.ToggleCorrect)

			drafts.PUT("/:id/group", hm.editorHandler.UpdateGroup)
			drafts.POST("/:id/group/questions", hm.editorHandler.AddGroupQuestion)
			drafts.PUT("/:id/group/questions/reorder", hm.editorHandler.ReorderGroupQuestions)
			drafts.DELETE("/:id/group/questions/:question_id", hm.editorHandler.DeleteGroupQuestion)
			drafts.PUT("/:id/group/questions/:question_id/type", hm.editorHandler.ChangeGroupQuestionType)
		}

		exports := secured.Group("/exports")
		{
			exports.GET("/drafts", hm.draftHandler.ExportDrafts)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "question-authoring-service",
	})
}
