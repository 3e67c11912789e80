// Package server exposes the voucher pipeline over HTTP: upload an
// image, extract its fields, save the reviewed result, list and export
// history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/entity"
	"github.com/voucherscan/voucher-tracker/internal/extract"
	"github.com/voucherscan/voucher-tracker/internal/export"
	"github.com/voucherscan/voucher-tracker/internal/repository"
)

// TextDetector is the OCR collaborator: image bytes in, raw text out.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// ObjectStore is the image bucket collaborator.
type ObjectStore interface {
	Store(ctx context.Context, data []byte, contentType, name string) (string, error)
}

type VouchersService struct {
	store    ObjectStore
	detector TextDetector
	pipeline *extract.Pipeline
	repo     repository.VoucherRepository
	exporter *export.Service
	httpc    *http.Client
	logger   *zap.Logger
}

func NewVouchersService(
	store ObjectStore,
	detector TextDetector,
	pipeline *extract.Pipeline,
	repo repository.VoucherRepository,
	exporter *export.Service,
	logger *zap.Logger,
) *VouchersService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VouchersService{
		store:    store,
		detector: detector,
		pipeline: pipeline,
		repo:     repo,
		exporter: exporter,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Register mounts the voucher routes.
func (s *VouchersService) Register(r *gin.Engine) {
	v := r.Group("/vouchers")
	v.POST("/upload", s.uploadImage)
	v.POST("/extract", s.extractText)
	v.POST("/save", s.saveData)
	v.GET("", s.listVouchers)
	v.GET("/export", s.exportVouchers)
}

var allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

func (s *VouchersService) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		respondError(c, http.StatusBadRequest, "invalid file type, only .png, .jpg, .jpeg are allowed")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable upload")
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable upload")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageURL, err := s.store.Store(c.Request.Context(), data, contentType, fh.Filename)
	if err != nil {
		s.logger.Warn("upload failed", zap.String("filename", fh.Filename), zap.Error(err))
		respondError(c, http.StatusBadGateway, fmt.Sprintf("error uploading file: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "imageUrl": imageURL})
}

type extractRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

func (s *VouchersService) extractText(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "image URL is required")
		return
	}

	image, err := s.fetchImage(c.Request.Context(), req.ImageURL)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("failed to fetch image: %v", err))
		return
	}

	text, err := s.detector.DetectText(c.Request.Context(), image)
	if err != nil {
		if errors.Is(err, common.ErrNoTextDetected) {
			respondError(c, http.StatusUnprocessableEntity, "no text detected in image")
			return
		}
		s.logger.Error("ocr failed", zap.String("image_url", req.ImageURL), zap.Error(err))
		respondError(c, http.StatusBadGateway, "text detection failed")
		return
	}

	data, err := s.pipeline.Extract(text)
	if err != nil {
		if errors.Is(err, common.ErrNoTextDetected) {
			respondError(c, http.StatusUnprocessableEntity, "no text detected in image")
			return
		}
		s.logger.Error("extraction failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "extraction failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Text extracted successfully", "extractedData": data})
}

type saveRequest struct {
	ImageURL      string          `json:"imageUrl" binding:"required"`
	ExtractedData json.RawMessage `json:"extractedData" binding:"required"`
}

func (s *VouchersService) saveData(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "image URL and extracted data are required")
		return
	}

	if err := entity.ValidateVoucherJSON(req.ExtractedData); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid extracted data: %v", err))
		return
	}

	var data entity.ExtractedVoucherData
	if err := json.Unmarshal(req.ExtractedData, &data); err != nil {
		respondError(c, http.StatusBadRequest, "invalid extracted data")
		return
	}

	// Reviewer edits arrive here: never trust supplied totals.
	data.Recalculate()

	rec, err := s.repo.Insert(c.Request.Context(), req.ImageURL, &data)
	if err != nil {
		s.logger.Error("save failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "error saving data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully", "result": rec})
}

func (s *VouchersService) listVouchers(c *gin.Context) {
	recs, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.logger.Error("list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "error fetching vouchers")
		return
	}
	if recs == nil {
		recs = []*entity.VoucherRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": recs})
}

func (s *VouchersService) exportVouchers(c *gin.Context) {
	recs, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.logger.Error("list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "error fetching vouchers")
		return
	}
	book, err := s.exporter.VouchersXLSX(recs)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "error exporting vouchers")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="vouchers.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", book)
}

func (s *VouchersService) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
