package domain

// FileType represents the document formats the pipeline accepts.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// IsPDF reports whether the file type is a PDF (multi-page, needs rasterization).
func (f FileType) IsPDF() bool {
	return f == FileTypePDF
}

// PageType classifies a bill page by its content.
type PageType string

const (
	// PageTypeBillDetail is a page of itemized charges.
	PageTypeBillDetail PageType = "Bill Detail"
	// PageTypeFinalBill is a summary/grand-total page. Its items duplicate
	// charges listed on detail pages, so they are excluded from the bill total.
	PageTypeFinalBill PageType = "Final Bill"
	// PageTypePharmacy is a page of medicine line items.
	PageTypePharmacy PageType = "Pharmacy"
)

// KnownPageTypes is the closed set of page classifications the extraction
// prompt allows.
var KnownPageTypes = map[PageType]bool{
	PageTypeBillDetail: true,
	PageTypeFinalBill:  true,
	PageTypePharmacy:   true,
}

// CountsTowardTotal reports whether items on a page of this type contribute
// to total_bill_amount. Final Bill pages restate amounts from other pages
// and would double-count.
func (p PageType) CountsTowardTotal() bool {
	return p == PageTypeBillDetail || p == PageTypePharmacy
}
