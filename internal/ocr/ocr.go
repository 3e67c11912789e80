// Package ocr turns voucher images into raw text by shelling out to
// tesseract. It is the only component besides storage that performs
// external I/O; everything downstream is pure computation.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/common"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "spa"
	TessdataDir   string
	PSM           int // e.g., 6 is good for uniform block of text
	OEM           int // 1 = LSTM; leave 0 to use default
}

type DetectionResult struct {
	Text       string
	Duration   time.Duration
	Confidence float32
}

type Detector struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

func NewDetector(cfg Config, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "spa"
	}
	return &Detector{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// DetectText runs OCR over image bytes and returns the recovered text.
// No usable text at all fails with ErrNoTextDetected.
func (d *Detector) DetectText(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "voucher-*.img")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(image); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	res, err := d.DetectTextFile(ctx, tmp.Name())
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// DetectTextFile runs OCR over an image file on disk.
func (d *Detector) DetectTextFile(ctx context.Context, path string) (DetectionResult, error) {
	start := time.Now()

	args := []string{path, "stdout", "-l", d.cfg.TesseractLang}
	if d.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", d.cfg.TessdataDir)
	}
	if d.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(d.cfg.PSM))
	}
	if d.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(d.cfg.OEM))
	}

	out, errb, err := d.runner.Run(ctx, d.cfg.Tesseract, args...)
	if err != nil {
		return DetectionResult{}, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		d.logger.Warn("ocr produced no text", zap.String("path", filepath.Base(path)))
		return DetectionResult{}, common.ErrNoTextDetected
	}

	res := DetectionResult{
		Text:       text,
		Duration:   time.Since(start),
		Confidence: heuristicConfidence(text),
	}
	d.logger.Debug("ocr ok",
		zap.String("path", filepath.Base(path)),
		zap.Int("bytes", len(text)),
		zap.Float32("confidence", res.Confidence),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
