package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voucherscan/voucher-tracker/internal/classify"
	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/entity"
	"github.com/voucherscan/voucher-tracker/internal/patterns"
)

var _ = Describe("Pipeline", func() {
	var (
		pipeline *Pipeline
		rawText  string
		data     *entity.ExtractedVoucherData
		err      error
	)

	BeforeEach(func() {
		lib := patterns.NewLibrary()
		pipeline = NewPipeline(lib, classify.New(lib), nil)
	})

	JustBeforeEach(func() {
		data, err = pipeline.Extract(rawText)
	})

	When("extracting a complete bank transfer voucher", func() {
		BeforeEach(func() {
			rawText = "BCP BANCA MOVIL\nTOTAL S/ 45.50\nREF:123456\nDestino: Supermercado XYZ"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract the amount", func() {
			Expect(data.Amount).NotTo(BeNil())
			Expect(*data.Amount).To(Equal(45.50))
		})

		It("should extract the transaction number", func() {
			Expect(data.TransactionNumber).NotTo(BeNil())
			Expect(*data.TransactionNumber).To(Equal("123456"))
		})

		It("should extract the merchant name", func() {
			Expect(data.MerchantName).NotTo(BeNil())
			Expect(*data.MerchantName).To(Equal("Supermercado XYZ"))
		})

		It("should derive the IGV tax from the amount", func() {
			Expect(data.TaxAmount).NotTo(BeNil())
			Expect(*data.TaxAmount).To(Equal(8.19))
		})

		It("should detect soles", func() {
			Expect(data.Currency).To(Equal("PEN"))
		})

		It("should mirror the amount into totalAmount", func() {
			Expect(data.TotalAmount).NotTo(BeNil())
			Expect(*data.TotalAmount).To(Equal(45.50))
		})

		It("should seed the synthetic total item", func() {
			Expect(data.Items).To(HaveLen(1))
			Expect(data.Items[0].Description).To(Equal("Total compra"))
			Expect(data.Items[0].Quantity).To(Equal(1.0))
			Expect(data.Items[0].UnitPrice).To(Equal(45.50))
			Expect(data.Items[0].TotalPrice).To(Equal(45.50))
		})

		It("should keep the cleaned text", func() {
			Expect(data.RawText).To(ContainSubstring("TOTAL S/ 45.50"))
		})

		It("should be deterministic across runs", func() {
			again, err2 := pipeline.Extract(rawText)
			Expect(err2).NotTo(HaveOccurred())
			Expect(again).To(Equal(data))
		})
	})

	When("the date uses a Spanish month abbreviation", func() {
		BeforeEach(func() {
			rawText = "YAPE\nFECHA:09ENE25\nTOTAL S/ 12.00"
		})

		It("should normalize the month to its 2-digit number", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.TransactionDate).NotTo(BeNil())
			Expect(*data.TransactionDate).To(Equal("09/01/25"))
		})
	})

	When("the date is fully numeric", func() {
		BeforeEach(func() {
			rawText = "YAPE\nPLIN 09/01/2025\nTOTAL S/ 12.00"
		})

		It("should return the match verbatim", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.TransactionDate).NotTo(BeNil())
			Expect(*data.TransactionDate).To(Equal("09/01/2025"))
		})
	})

	When("no total pattern or keyword is present", func() {
		BeforeEach(func() {
			rawText = "BCP BANCA MOVIL\nDestino: Farmacia ABC\nFECHA:09ENE25\nREF:555"
		})

		It("should leave amount and its derived fields absent", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Amount).To(BeNil())
			Expect(data.TaxAmount).To(BeNil())
			Expect(data.TotalAmount).To(BeNil())
			Expect(data.Items).To(BeEmpty())
		})

		It("should still extract the other fields", func() {
			Expect(data.MerchantName).NotTo(BeNil())
			Expect(*data.MerchantName).To(Equal("Farmacia ABC"))
			Expect(data.TransactionDate).NotTo(BeNil())
			Expect(data.TransactionNumber).NotTo(BeNil())
			Expect(*data.TransactionNumber).To(Equal("555"))
		})
	})

	When("the voucher only carries dollar markers", func() {
		BeforeEach(func() {
			rawText = "PAYMENT RECEIPT\nCARGO $45.00\nGRACIAS"
		})

		It("should detect USD", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Currency).To(Equal("USD"))
		})
	})

	When("no currency marker is present", func() {
		BeforeEach(func() {
			rawText = "RECIBO\nFECHA 09-01-25\nGRACIAS POR SU COMPRA"
		})

		It("should default to PEN", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Currency).To(Equal("PEN"))
		})
	})

	When("the OCR text is empty", func() {
		BeforeEach(func() {
			rawText = "   \n  \n"
		})

		It("should fail with ErrNoTextDetected", func() {
			Expect(err).To(MatchError(common.ErrNoTextDetected))
			Expect(data).To(BeNil())
		})
	})

	When("the amount only appears after a total keyword", func() {
		BeforeEach(func() {
			rawText = "FARMACIA UNIVERSAL\nImporte 23,90\nGRACIAS"
		})

		It("should recover it via the token scan with a comma decimal", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Amount).NotTo(BeNil())
			Expect(*data.Amount).To(Equal(23.90))
		})
	})

	When("a line reads like a product", func() {
		BeforeEach(func() {
			rawText = "BODEGA DON JOSE\nTOTAL S/ 30.00\nproducto cantidad x2"
		})

		It("should tag it as a line item after the synthetic total", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(len(data.Items)).To(BeNumerically(">=", 2))
			Expect(data.Items[0].Description).To(Equal("Total compra"))
			Expect(data.Items[1].Description).To(Equal("producto cantidad x2"))
			Expect(data.Items[1].UnitPrice).To(Equal(30.00))
		})
	})

	When("the merchant is only named before a parenthesis", func() {
		BeforeEach(func() {
			rawText = "COMPROBANTE\nTIENDA MASS (SEDE LIMA)\nTOTAL S/ 9.90"
		})

		It("should take the text before the parenthesis", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.MerchantName).NotTo(BeNil())
			Expect(*data.MerchantName).To(Equal("TIENDA MASS"))
		})
	})

	When("only the layout hints at the merchant", func() {
		BeforeEach(func() {
			rawText = "COMPROBANTE DE PAGO\nBOTICA SAN JUAN\nTOTAL S/ 9.90"
		})

		It("should fall back to the second line", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.MerchantName).NotTo(BeNil())
			Expect(*data.MerchantName).To(Equal("BOTICA SAN JUAN"))
		})
	})
})
