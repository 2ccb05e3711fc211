package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrhq/pagedriver/pkg/content"
)

// Content routes run entirely off the action queue; they never touch the
// browser target.

func (s *Server) handleAnalyzeContent(c *gin.Context) {
	var req analyzeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Content is required")
		return
	}
	if len(req.Content) == 0 {
		badRequest(c, "Content is required")
		return
	}

	analysisTypes := req.AnalysisTypes
	if len(analysisTypes) == 0 {
		analysisTypes = content.DefaultAnalysisTypes
	}

	// Content is either an array of extracted records or a plain string.
	// Non-record array elements contribute only to the count.
	var analysis content.Analysis
	var value any
	if err := json.Unmarshal(req.Content, &value); err != nil {
		badRequest(c, "Content must be an array or a string")
		return
	}
	switch v := value.(type) {
	case []any:
		records := make([]content.Record, len(v))
		for i, item := range v {
			if m, ok := item.(map[string]any); ok {
				records[i] = content.Record(m)
			} else {
				records[i] = content.Record{}
			}
		}
		analysis = content.AnalyzeRecords(records, analysisTypes)
	case string:
		if v == "" {
			badRequest(c, "Content is required")
			return
		}
		analysis = content.AnalyzeText(v, analysisTypes)
	case nil:
		badRequest(c, "Content is required")
		return
	default:
		badRequest(c, "Content must be an array or a string")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": analysis,
		"message":  fmt.Sprintf("Content analyzed with %d analysis types", len(analysisTypes)),
	})
}

func (s *Server) handleGenerateVariants(c *gin.Context) {
	var req generateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Base content is required")
		return
	}
	if req.BaseContent == "" {
		badRequest(c, "Base content is required")
		return
	}

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = content.DefaultPlatforms
	}

	variants := content.GenerateVariants(req.BaseContent, platforms)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"variants": variants,
		"message":  fmt.Sprintf("Generated variants for %d platforms", len(variants)),
	})
}

func (s *Server) handleTemplateProcessor(c *gin.Context) {
	var req templateProcessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Template and data are required")
		return
	}
	if req.Template == "" || req.Data == nil {
		badRequest(c, "Template and data are required")
		return
	}

	templateType := req.TemplateType
	if templateType == "" {
		templateType = "text"
	}

	result := content.ProcessTemplate(req.Template, req.Data, templateType)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"templateType": templateType,
		"result":       result,
		"message":      "Template processing completed",
	})
}
