package mediastore

// Category describes one upload context with its own limits. Each form
// field (news images, product hero, gallery, documents) maps to exactly
// one category; the ingestion routine itself is category-agnostic.
type Category struct {
	Name      string // folder tag, also used in public URLs
	MaxCount  int
	MaxBytes  int64
	MIMETypes map[string]bool
	Exts      map[string]bool
	ExtByMIME map[string]string
}

const megabyte = 1024 * 1024

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var imageExtByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var documentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var documentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
}

var documentExtByMIME = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
}

var NewsImages = Category{
	Name:      "news",
	MaxCount:  6,
	MaxBytes:  5 * megabyte,
	MIMETypes: imageMIMETypes,
	Exts:      imageExts,
	ExtByMIME: imageExtByMIME,
}

var ProductHero = Category{
	Name:      "product-hero",
	MaxCount:  1,
	MaxBytes:  5 * megabyte,
	MIMETypes: imageMIMETypes,
	Exts:      imageExts,
	ExtByMIME: imageExtByMIME,
}

var ProductGallery = Category{
	Name:      "product-gallery",
	MaxCount:  10,
	MaxBytes:  5 * megabyte,
	MIMETypes: imageMIMETypes,
	Exts:      imageExts,
	ExtByMIME: imageExtByMIME,
}

var ProductDocuments = Category{
	Name:      "product-documents",
	MaxCount:  8,
	MaxBytes:  10 * megabyte,
	MIMETypes: documentMIMETypes,
	Exts:      documentExts,
	ExtByMIME: documentExtByMIME,
}
