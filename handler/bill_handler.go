package handler

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Aashish23092/carrier-bill-analyzer/dto"
	"github.com/Aashish23092/carrier-bill-analyzer/service"
	"github.com/Aashish23092/carrier-bill-analyzer/utils/billsummary"
	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	billService *service.BillService
	maxFileSize int64
}

func NewBillHandler(billService *service.BillService, maxFileSize int64) *BillHandler {
	return &BillHandler{
		billService: billService,
		maxFileSize: maxFileSize,
	}
}

// Analyze handles the POST /bills/analyze endpoint
func (h *BillHandler) Analyze(c *gin.Context) {
	log.Println("Received bill analysis request")

	analysis, ok := h.analyze(c)
	if !ok {
		return
	}

	log.Printf("Bill analysis %s completed: %d line(s)", analysis.ID, len(analysis.Lines))
	c.JSON(http.StatusOK, h.billService.BuildResponse(analysis))
}

// SummaryImage handles the POST /bills/summary.png endpoint
func (h *BillHandler) SummaryImage(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}

	img, err := h.billService.SummaryPNG(analysis)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to encode summary", err)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// ExportCSV handles the POST /bills/export.csv endpoint
func (h *BillHandler) ExportCSV(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, analysis); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to export CSV", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bill-summary.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// analyze reads the uploaded bill and runs the analysis. It writes the error
// response itself and reports false when the request cannot proceed.
func (h *BillHandler) analyze(c *gin.Context) (*service.Analysis, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", dto.ErrFileRequired)
		return nil, false
	}

	request := &dto.BillAnalyzeRequest{
		File:        header,
		Password:    c.PostForm("password"),
		MaxFileSize: h.maxFileSize,
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, statusFor(err), err.Error(), err)
		return nil, false
	}

	file, err := request.File.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return nil, false
	}

	analysis, err := h.billService.Analyze(c.Request.Context(), data, request.Password)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to analyze bill", err)
		return nil, false
	}
	return analysis, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, billsummary.ErrInsufficientPages),
		errors.Is(err, billsummary.ErrSectionNotFound),
		errors.Is(err, billsummary.ErrHeaderNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, billsummary.ErrEncodingOverflow),
		errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrFileRequired),
		errors.Is(err, dto.ErrInvalidFileType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnprocessableEntity:
		return "UNRECOGNIZED_BILL"
	case http.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	default:
		return "ANALYSIS_FAILED"
	}
}

// sendError sends a structured error response
func (h *BillHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   errorCode(statusCode),
		Message: errorMsg,
		Code:    statusCode,
	})
}
