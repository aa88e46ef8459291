// Package constants provides shared constants used throughout the massfill codebase.
// This includes the column vocabulary of the marketplace bulk-listing documents,
// instruction-row offsets, output file names, and file permissions that should be
// consistent across the engine and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Offsets and limits of the template family
const (
	// DefaultInstructionRows is the number of instruction rows below the header
	// of the mass_update_* source documents and of the official template.
	DefaultInstructionRows = 5

	// MaxOptionSlots is the number of option name/image column pairs a media
	// document may carry.
	MaxOptionSlots = 30

	// MaxGalleryImages is the number of item (non-cover) images per product.
	MaxGalleryImages = 8

	// DefaultPriceFactor is the SGD to MYR conversion factor used when price
	// conversion is enabled without an explicit factor.
	DefaultPriceFactor = 3.4

	// PriceDecimals is the number of decimals kept after price conversion.
	PriceDecimals = 2
)

// Sheet names
const (
	// DefaultSourceSheet is the sheet holding data in basic/sales/media/shipment exports
	DefaultSourceSheet = "Sheet1"

	// DefaultTemplateSheet is the sheet of the official upload template
	DefaultTemplateSheet = "Template"
)

// Source document columns
const (
	ColProductID          = "et_title_product_id"
	ColProductDescription = "et_title_product_description"
	ColProductName        = "et_title_product_name"
	ColVariationID        = "et_title_variation_id"
	ColVariationName      = "et_title_variation_name"
	ColVariationSKU       = "et_title_variation_sku"
	ColVariationPrice     = "et_title_variation_price"
	ColVariationStock     = "et_title_variation_stock"
	ColProductWeight      = "et_title_product_weight"
	ColCoverImage         = "et_title_image_1"
)

// Template columns (semantic names, i.e. labels without their |n|n suffix)
const (
	TplIntegrationNo      = "et_title_variation_integration_no"
	TplVariationID        = "et_title_variation_id"
	TplProductName        = "ps_product_name"
	TplSKU                = "ps_sku_short"
	TplPrice              = "ps_price"
	TplStock              = "ps_stock"
	TplOptionName         = "et_title_option_for_variation_1"
	TplVariationType      = "et_title_variation_1"
	TplWeight             = "ps_weight"
	TplProductDescription = "ps_product_description"
	TplChannel            = "channel_id.28057"
	TplCoverImage         = "ps_item_cover_image"
)

// Output file names
const (
	// OutputWorkbook is the populated template written by a run
	OutputWorkbook = "shopee_mass_upload_output.xlsx"

	// UnmatchedReport lists sales variation keys without an image
	UnmatchedReport = "unmatched_variations.csv"

	// MediaCatalogReport dumps the pivoted media relation
	MediaCatalogReport = "media_variation_catalog.csv"

	// MarkdownReport is the optional human-readable diagnostics summary
	MarkdownReport = "diagnostics.md"

	// SummaryBase is the file name, without extension, of the run summary
	SummaryBase = "massfill_summary"
)

// Document names used in errors and logs
const (
	DocBasic    = "basic_info"
	DocSales    = "sales_info"
	DocMedia    = "media_info"
	DocShipment = "shipment_info"
	DocTemplate = "template"
)
