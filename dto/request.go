package dto

import (
	"mime/multipart"
	"strings"
)

// BillAnalyzeRequest represents an uploaded bill statement
type BillAnalyzeRequest struct {
	File        *multipart.FileHeader `form:"file" binding:"required"`
	Password    string                `form:"password"`
	MaxFileSize int64                 `form:"-"`
}

// Validate performs basic validation on the request
func (r *BillAnalyzeRequest) Validate() error {
	if r.File == nil {
		return ErrFileRequired
	}
	if !strings.HasSuffix(strings.ToLower(r.File.Filename), ".pdf") {
		return ErrInvalidFileType
	}
	if r.MaxFileSize > 0 && r.File.Size > r.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}
