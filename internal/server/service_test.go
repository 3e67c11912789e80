package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voucherscan/voucher-tracker/internal/classify"
	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/entity"
	"github.com/voucherscan/voucher-tracker/internal/export"
	"github.com/voucherscan/voucher-tracker/internal/extract"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
	"github.com/voucherscan/voucher-tracker/internal/server"
)

type fakeStore struct {
	url      string
	err      error
	gotName  string
	gotType  string
	gotBytes []byte
}

func (f *fakeStore) Store(_ context.Context, data []byte, contentType, name string) (string, error) {
	f.gotBytes = data
	f.gotType = contentType
	f.gotName = name
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeDetector struct {
	text string
	err  error
}

func (f *fakeDetector) DetectText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

type fakeRepo struct {
	inserted *entity.ExtractedVoucherData
	imageURL string
	records  []*entity.VoucherRecord
	err      error
}

func (f *fakeRepo) Insert(_ context.Context, imageURL string, data *entity.ExtractedVoucherData) (*entity.VoucherRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.imageURL = imageURL
	f.inserted = data
	return &entity.VoucherRecord{
		ID:            uuid.New(),
		ImageURL:      imageURL,
		ExtractedData: *data,
		CreatedAt:     time.Now(),
		Status:        true,
	}, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]*entity.VoucherRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

var _ = Describe("VouchersService", func() {
	var (
		store    *fakeStore
		detector *fakeDetector
		repo     *fakeRepo
		router   *gin.Engine
		rec      *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		store = &fakeStore{url: "https://bucket.example/vouchers/1_v.png"}
		detector = &fakeDetector{text: "TOTAL S/ 45.50\nREF:123456"}
		repo = &fakeRepo{}

		lib := patterns.NewLibrary()
		pipeline := extract.NewPipeline(lib, classify.New(lib), nil)
		svc := server.NewVouchersService(store, detector, pipeline, repo, export.NewService(nil), nil)

		router = gin.New()
		svc.Register(router)
		rec = httptest.NewRecorder()
	})

	decode := func() map[string]any {
		var body map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	Describe("POST /vouchers/upload", func() {
		multipartUpload := func(filename string, content []byte) *http.Request {
			var buf bytes.Buffer
			w := multipart.NewWriter(&buf)
			fw, err := w.CreateFormFile("file", filename)
			Expect(err).NotTo(HaveOccurred())
			_, err = fw.Write(content)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/vouchers/upload", &buf)
			req.Header.Set("Content-Type", w.FormDataContentType())
			return req
		}

		It("stores the image and returns its URL", func() {
			router.ServeHTTP(rec, multipartUpload("voucher.png", []byte("png-bytes")))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode()).To(HaveKeyWithValue("imageUrl", store.url))
			Expect(store.gotName).To(Equal("voucher.png"))
			Expect(store.gotBytes).To(Equal([]byte("png-bytes")))
		})

		It("rejects disallowed extensions", func() {
			router.ServeHTTP(rec, multipartUpload("voucher.pdf", []byte("%PDF")))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode()).To(HaveKey("error"))
		})

		It("rejects requests without a file", func() {
			req := httptest.NewRequest(http.MethodPost, "/vouchers/upload", nil)
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps bucket failures to bad gateway", func() {
			store.err = common.ErrUploadFailed
			router.ServeHTTP(rec, multipartUpload("voucher.jpg", []byte("jpg")))

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("POST /vouchers/extract", func() {
		var imageSrv *httptest.Server

		BeforeEach(func() {
			imageSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("image-bytes"))
			}))
			DeferCleanup(imageSrv.Close)
		})

		extractReq := func(imageURL string) *http.Request {
			body, _ := json.Marshal(map[string]string{"imageUrl": imageURL})
			req := httptest.NewRequest(http.MethodPost, "/vouchers/extract", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			return req
		}

		It("runs OCR and extraction on the fetched image", func() {
			router.ServeHTTP(rec, extractReq(imageSrv.URL+"/v.png"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			body := decode()
			Expect(body).To(HaveKey("extractedData"))
			data := body["extractedData"].(map[string]any)
			Expect(data["amount"]).To(BeNumerically("~", 45.50, 0.001))
			Expect(data["transactionNumber"]).To(Equal("123456"))
			Expect(data["currency"]).To(Equal("PEN"))
		})

		It("requires an image URL", func() {
			req := httptest.NewRequest(http.MethodPost, "/vouchers/extract", bytes.NewReader([]byte(`{}`)))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 422 when the detector finds no text", func() {
			detector.err = common.ErrNoTextDetected
			router.ServeHTTP(rec, extractReq(imageSrv.URL+"/v.png"))

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("maps detector faults to bad gateway", func() {
			detector.err = common.NewAppError("OCR_FAILED", "tesseract exploded", nil)
			router.ServeHTTP(rec, extractReq(imageSrv.URL+"/v.png"))

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})

		It("rejects unfetchable image URLs", func() {
			failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			DeferCleanup(failSrv.Close)

			router.ServeHTTP(rec, extractReq(failSrv.URL+"/missing.png"))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /vouchers/save", func() {
		saveReq := func(payload string) *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/vouchers/save", bytes.NewReader([]byte(payload)))
			req.Header.Set("Content-Type", "application/json")
			return req
		}

		It("validates, recalculates and persists", func() {
			router.ServeHTTP(rec, saveReq(`{
				"imageUrl": "https://bucket.example/v.png",
				"extractedData": {
					"rawText": "TOTAL S/ 45.50",
					"currency": "PEN",
					"amount": 45.50,
					"items": [
						{"description": "Cafe", "quantity": 2, "unitPrice": 5.25, "totalPrice": 0}
					]
				}
			}`))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(repo.imageURL).To(Equal("https://bucket.example/v.png"))
			Expect(repo.inserted).NotTo(BeNil())
			Expect(repo.inserted.Items[0].TotalPrice).To(BeNumerically("~", 10.50, 0.001))
			Expect(repo.inserted.TotalAmount).NotTo(BeNil())
			Expect(*repo.inserted.TotalAmount).To(BeNumerically("~", 10.50, 0.001))
		})

		It("rejects payloads failing schema validation", func() {
			router.ServeHTTP(rec, saveReq(`{
				"imageUrl": "https://bucket.example/v.png",
				"extractedData": {"currency": "PEN"}
			}`))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(repo.inserted).To(BeNil())
		})

		It("requires both fields", func() {
			router.ServeHTTP(rec, saveReq(`{"imageUrl": "https://bucket.example/v.png"}`))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("surfaces persistence failures", func() {
			repo.err = common.ErrPersistence
			router.ServeHTTP(rec, saveReq(`{
				"imageUrl": "https://bucket.example/v.png",
				"extractedData": {"rawText": "x", "currency": "PEN"}
			}`))

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GET /vouchers", func() {
		It("returns stored records", func() {
			amount := 12.00
			repo.records = []*entity.VoucherRecord{{
				ID:            uuid.New(),
				ImageURL:      "https://bucket.example/v.png",
				ExtractedData: entity.ExtractedVoucherData{Amount: &amount, Currency: "PEN", RawText: "x"},
				CreatedAt:     time.Now(),
				Status:        true,
			}}

			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vouchers", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			body := decode()
			Expect(body["vouchers"]).To(HaveLen(1))
		})

		It("returns an empty list when there is no history", func() {
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vouchers", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"vouchers":[]`))
		})
	})

	Describe("GET /vouchers/export", func() {
		It("streams an xlsx attachment", func() {
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vouchers/export", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("vouchers.xlsx"))
			Expect(rec.Body.Len()).To(BeNumerically(">", 0))
		})
	})
})
