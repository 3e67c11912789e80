// runextract runs the extraction pipeline over one file and prints the
// result as JSON: an image goes through OCR first, a .txt file is
// treated as already-detected text.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/classify"
	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/extract"
	"github.com/voucherscan/voucher-tracker/internal/ocr"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	if len(os.Args) != 2 {
		log.Error("usage: runextract <voucher.png|voucher.txt>")
		os.Exit(2)
	}
	path := os.Args[1]

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var text string
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		text = string(b)
	} else {
		detector := ocr.NewDetector(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			TessdataDir:   cfg.OCR.TessdataDir,
			PSM:           cfg.OCR.PSM,
		}, logger)
		res, err := detector.DetectTextFile(ctx, path)
		if err != nil {
			log.Fatalf("ocr: %v", err)
		}
		text = res.Text
	}

	lib := patterns.NewLibrary()
	pipeline := extract.NewPipeline(lib, classify.New(lib), logger)

	data, err := pipeline.Extract(text)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
	log.Infof("completeness: %.0f%%", extract.Score(data))
}
