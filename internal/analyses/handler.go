package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobshield-backend/internal/classifier"
	"jobshield-backend/internal/extract"
	"jobshield-backend/internal/reports"
	"jobshield-backend/internal/risk"
	"jobshield-backend/internal/shared/server/respond"
	"jobshield-backend/internal/shared/storage/object"
	"jobshield-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc   *Service
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Store: store}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/analyze/document", h.analyzeDocument)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/reports/:filename", h.downloadReport)
}

// Uploaded job posting documents larger than this are rejected outright.
const maxDocumentBytes = 10 << 20

// analyzeResponse flattens the risk verdict into the response envelope
// alongside the analysis handle fields.
type analyzeResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	PDFReport  string `json:"pdf_report,omitempty"`
	risk.Result
}

func (h *Handler) analyze(c *gin.Context) {
	var input AnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if input.JobText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job text is required", nil)
		return
	}

	h.runAnalysis(c, input)
}

// analyzeDocument accepts a multipart upload (PDF, DOCX or plain text),
// extracts the posting text and runs the same pipeline as /analyze. The
// remaining input fields arrive as form values.
func (h *Handler) analyzeDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a document file is required", nil)
		return
	}
	if fileHeader.Size > maxDocumentBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document exceeds the upload size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded document", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded document", nil)
		return
	}

	jobText, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported document type; upload PDF, DOCX or plain text", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not extract text from document", nil)
		return
	}

	input := AnalysisInput{
		JobText:        jobText,
		Source:         extract.Source(c.PostForm("source")),
		CompanyName:    c.PostForm("company_name"),
		RecruiterEmail: c.PostForm("recruiter_email"),
		ContactMethod:  c.PostForm("contact_method"),
		LinkedInURL:    c.PostForm("linkedin_url"),
	}
	if v := c.PostForm("offered_salary"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			input.OfferedSalary = parsed
		}
	}

	h.runAnalysis(c, input)
}

// runAnalysis is the shared tail of the JSON and document analyze
// routes: run the pipeline, map domain errors, render the verdict.
func (h *Handler) runAnalysis(c *gin.Context, input AnalysisInput) {
	analysis, err := h.Svc.Analyze(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInputTooShort):
			respond.Error(c, http.StatusBadRequest, "validation_error", "job text is too short to analyze", nil)
		case errors.Is(err, classifier.ErrModelUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "model_unavailable", "fraud classifier model is not loaded", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze job posting", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, analyzeResponse{
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
		PDFReport:  analysis.ReportFile,
		Result:     *analysis.Result,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	resp := gin.H{
		"id":         analysis.ID,
		"status":     analysis.Status,
		"created_at": analysis.CreatedAt,
	}
	if analysis.Status == StatusCompleted && analysis.Result != nil {
		resp["result"] = analysis.Result
		if analysis.ReportFile != "" {
			resp["pdf_report"] = analysis.ReportFile
		}
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(analyses))
	for _, a := range analyses {
		item := gin.H{
			"analysis_id": a.ID,
			"status":      a.Status,
			"created_at":  a.CreatedAt,
		}
		if a.CompanyName != "" {
			item["company_name"] = a.CompanyName
		}
		if a.Status == StatusCompleted && a.Result != nil {
			item["risk_score"] = a.Result.RiskScore
			item["risk_tier"] = a.Result.RiskTier
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) downloadReport(c *gin.Context) {
	filename, err := util.SanitizeFileName(c.Param("filename"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid report filename", nil)
		return
	}

	body, err := h.Store.Open(c.Request.Context(), reports.StorageKey(filename))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
