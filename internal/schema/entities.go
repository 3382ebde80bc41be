package schema

import "strings"

// Record is implemented by every entity the developer-panel API serves.
// Key returns the server-side identity used in request paths; ToValues
// flattens the record into the map the form and table components consume.
type Record interface {
	Key() string
	ToValues() Values
}

// EnterpriseSettings is one supplier enterprise's integration configuration.
// Keyed by enterprise_code.
type EnterpriseSettings struct {
	EnterpriseCode         string  `json:"enterprise_code"`
	EnterpriseName         string  `json:"enterprise_name"`
	Email                  string  `json:"email"`
	EnterpriseLogin        string  `json:"enterprise_login,omitempty"`
	EnterprisePassword     string  `json:"enterprise_password,omitempty"`
	TabletkiLogin          string  `json:"tabletki_login,omitempty"`
	TabletkiPassword       string  `json:"tabletki_password,omitempty"`
	DataFormat             string  `json:"data_format,omitempty"`
	FileFormat             string  `json:"file_format,omitempty"`
	DataTransferMethod     string  `json:"data_transfer_method,omitempty"`
	SingleStore            bool    `json:"single_store"`
	StoreSerial            string  `json:"store_serial,omitempty"`
	StockUploadFrequency   int     `json:"stock_upload_frequency,omitempty"`
	CatalogUploadFrequency int     `json:"catalog_upload_frequency,omitempty"`
	StockCorrection        bool    `json:"stock_correction"`
	GDriveFolderRef        string  `json:"google_drive_folder_id_ref,omitempty"`
	GDriveFolderRest       string  `json:"google_drive_folder_id_rest,omitempty"`
	BranchID               string  `json:"branch_id,omitempty"`
	DiscountRate           float64 `json:"discount_rate,omitempty"`
	// The backend serializes these as ISO timestamps without a zone; they
	// are display-only in the console, so strings are the honest type.
	LastStockUpload   string `json:"last_stock_upload,omitempty"`
	LastCatalogUpload string `json:"last_catalog_upload,omitempty"`
}

func (e EnterpriseSettings) Key() string { return e.EnterpriseCode }

func (e EnterpriseSettings) ToValues() Values {
	return Values{
		"enterprise_code":             e.EnterpriseCode,
		"enterprise_name":             e.EnterpriseName,
		"email":                       e.Email,
		"enterprise_login":            e.EnterpriseLogin,
		"enterprise_password":         e.EnterprisePassword,
		"tabletki_login":              e.TabletkiLogin,
		"tabletki_password":           e.TabletkiPassword,
		"data_format":                 e.DataFormat,
		"file_format":                 e.FileFormat,
		"data_transfer_method":        e.DataTransferMethod,
		"single_store":                e.SingleStore,
		"store_serial":                e.StoreSerial,
		"stock_upload_frequency":      e.StockUploadFrequency,
		"catalog_upload_frequency":    e.CatalogUploadFrequency,
		"stock_correction":            e.StockCorrection,
		"google_drive_folder_id_ref":  e.GDriveFolderRef,
		"google_drive_folder_id_rest": e.GDriveFolderRest,
		"branch_id":                   e.BranchID,
		"discount_rate":               e.DiscountRate,
		"last_stock_upload":           e.LastStockUpload,
		"last_catalog_upload":         e.LastCatalogUpload,
	}
}

// EnterpriseFromValues rebuilds the record from an edited value map.
func EnterpriseFromValues(v Values) EnterpriseSettings {
	return EnterpriseSettings{
		EnterpriseCode:         v.String("enterprise_code"),
		EnterpriseName:         v.String("enterprise_name"),
		Email:                  v.String("email"),
		EnterpriseLogin:        v.String("enterprise_login"),
		EnterprisePassword:     v.String("enterprise_password"),
		TabletkiLogin:          v.String("tabletki_login"),
		TabletkiPassword:       v.String("tabletki_password"),
		DataFormat:             v.String("data_format"),
		FileFormat:             v.String("file_format"),
		DataTransferMethod:     v.String("data_transfer_method"),
		SingleStore:            v.Bool("single_store"),
		StoreSerial:            v.String("store_serial"),
		StockUploadFrequency:   v.Int("stock_upload_frequency"),
		CatalogUploadFrequency: v.Int("catalog_upload_frequency"),
		StockCorrection:        v.Bool("stock_correction"),
		GDriveFolderRef:        v.String("google_drive_folder_id_ref"),
		GDriveFolderRest:       v.String("google_drive_folder_id_rest"),
		BranchID:               v.String("branch_id"),
		DiscountRate:           v.Float("discount_rate"),
		LastStockUpload:        v.String("last_stock_upload"),
		LastCatalogUpload:      v.String("last_catalog_upload"),
	}
}

// EnterpriseFields returns the form layout. formats feeds the data_format
// select; it comes from the data formats reference fetch.
func EnterpriseFields(formats []Option) []Field {
	return []Field{
		{Name: "enterprise_code", Label: "Code", Kind: KindText},
		{Name: "enterprise_name", Label: "Name", Kind: KindText},
		{Name: "email", Label: "Email", Kind: KindText},
		{Name: "enterprise_login", Label: "Enterprise login", Kind: KindText},
		{Name: "enterprise_password", Label: "Enterprise password", Kind: KindPassword},
		{Name: "tabletki_login", Label: "Tabletki login", Kind: KindText},
		{Name: "tabletki_password", Label: "Tabletki password", Kind: KindPassword},
		{Name: "data_format", Label: "Data format", Kind: KindSelect, Options: formats},
		{Name: "file_format", Label: "File format", Kind: KindText},
		{Name: "data_transfer_method", Label: "Transfer method", Kind: KindText},
		{Name: "single_store", Label: "Single store", Kind: KindCheckbox},
		{Name: "store_serial", Label: "Store serial", Kind: KindText},
		{Name: "stock_upload_frequency", Label: "Stock upload freq (min)", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 1}},
		{Name: "catalog_upload_frequency", Label: "Catalog upload freq (min)", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 1}},
		{Name: "stock_correction", Label: "Stock correction", Kind: KindCheckbox},
		{Name: "google_drive_folder_id_ref", Label: "GDrive folder (catalog)", Kind: KindText},
		{Name: "google_drive_folder_id_rest", Label: "GDrive folder (stock)", Kind: KindText},
		{Name: "branch_id", Label: "Branch ID", Kind: KindText},
		{Name: "discount_rate", Label: "Discount rate", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Max: 100, Step: 0.1}},
		{Name: "last_stock_upload", Label: "Last stock upload", Kind: KindDateTime, Disabled: true},
		{Name: "last_catalog_upload", Label: "Last catalog upload", Kind: KindDateTime, Disabled: true},
	}
}

// EnterpriseColumns is the list-view projection.
func EnterpriseColumns() []Column {
	return []Column{
		{Accessor: "enterprise_code", Header: "Code"},
		{Accessor: "enterprise_name", Header: "Name"},
		{Accessor: "email", Header: "Email"},
		{Accessor: "data_format", Header: "Format"},
		{Accessor: "branch_id", Header: "Branch"},
		{Accessor: "last_stock_upload", Header: "Last stock"},
	}
}

// DeveloperSettings is the singleton global configuration record, keyed by
// developer_login.
type DeveloperSettings struct {
	DeveloperLogin         string `json:"developer_login"`
	DeveloperPassword      string `json:"developer_password"`
	EndpointCatalog        string `json:"endpoint_catalog,omitempty"`
	EndpointStock          string `json:"endpoint_stock,omitempty"`
	EndpointOrders         string `json:"endpoint_orders,omitempty"`
	TelegramTokenDeveloper string `json:"telegram_token_developer,omitempty"`
	ErrorEmailDeveloper    string `json:"error_email_developer,omitempty"`
	GoogleDriveFileName    string `json:"google_drive_file_name,omitempty"`
	CatalogDataRetention   int    `json:"catalog_data_retention,omitempty"`
	StockDataRetention     int    `json:"stock_data_retention,omitempty"`
	Morion                 string `json:"morion,omitempty"`
	Tabletki               string `json:"tabletki,omitempty"`
	Barcode                string `json:"barcode,omitempty"`
	Optima                 string `json:"optima,omitempty"`
	Badm                   string `json:"badm,omitempty"`
	Venta                  string `json:"venta,omitempty"`
}

func (d DeveloperSettings) Key() string { return d.DeveloperLogin }

func (d DeveloperSettings) ToValues() Values {
	return Values{
		"developer_login":          d.DeveloperLogin,
		"developer_password":       d.DeveloperPassword,
		"endpoint_catalog":         d.EndpointCatalog,
		"endpoint_stock":           d.EndpointStock,
		"endpoint_orders":          d.EndpointOrders,
		"telegram_token_developer": d.TelegramTokenDeveloper,
		"error_email_developer":    d.ErrorEmailDeveloper,
		"google_drive_file_name":   d.GoogleDriveFileName,
		"catalog_data_retention":   d.CatalogDataRetention,
		"stock_data_retention":     d.StockDataRetention,
		"morion":                   d.Morion,
		"tabletki":                 d.Tabletki,
		"barcode":                  d.Barcode,
		"optima":                   d.Optima,
		"badm":                     d.Badm,
		"venta":                    d.Venta,
	}
}

func DeveloperFromValues(v Values) DeveloperSettings {
	return DeveloperSettings{
		DeveloperLogin:         v.String("developer_login"),
		DeveloperPassword:      v.String("developer_password"),
		EndpointCatalog:        v.String("endpoint_catalog"),
		EndpointStock:          v.String("endpoint_stock"),
		EndpointOrders:         v.String("endpoint_orders"),
		TelegramTokenDeveloper: v.String("telegram_token_developer"),
		ErrorEmailDeveloper:    v.String("error_email_developer"),
		GoogleDriveFileName:    v.String("google_drive_file_name"),
		CatalogDataRetention:   v.Int("catalog_data_retention"),
		StockDataRetention:     v.Int("stock_data_retention"),
		Morion:                 v.String("morion"),
		Tabletki:               v.String("tabletki"),
		Barcode:                v.String("barcode"),
		Optima:                 v.String("optima"),
		Badm:                   v.String("badm"),
		Venta:                  v.String("venta"),
	}
}

func DeveloperFields() []Field {
	return []Field{
		{Name: "developer_login", Label: "Login", Kind: KindText, Disabled: true},
		{Name: "developer_password", Label: "Password", Kind: KindPassword},
		{Name: "endpoint_catalog", Label: "Catalog endpoint", Kind: KindText},
		{Name: "endpoint_stock", Label: "Stock endpoint", Kind: KindText},
		{Name: "endpoint_orders", Label: "Orders endpoint", Kind: KindText},
		{Name: "telegram_token_developer", Label: "Telegram token", Kind: KindPassword},
		{Name: "error_email_developer", Label: "Error email", Kind: KindText},
		{Name: "google_drive_file_name", Label: "GDrive file name", Kind: KindText},
		{Name: "catalog_data_retention", Label: "Catalog retention (days)", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 1}},
		{Name: "stock_data_retention", Label: "Stock retention (days)", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 1}},
		{Name: "morion", Label: "Morion code", Kind: KindText},
		{Name: "tabletki", Label: "Tabletki code", Kind: KindText},
		{Name: "barcode", Label: "Barcode", Kind: KindText},
		{Name: "optima", Label: "Optima code", Kind: KindText},
		{Name: "badm", Label: "BADM code", Kind: KindText},
		{Name: "venta", Label: "Venta code", Kind: KindText},
	}
}

// DataFormat is a reference-list entry naming a supported supplier feed
// format. The list feeds the enterprise form's data_format select.
type DataFormat struct {
	ID         int64  `json:"id,omitempty"`
	FormatName string `json:"format_name"`
}

func (f DataFormat) Key() string { return f.FormatName }

func (f DataFormat) ToValues() Values {
	return Values{"id": f.ID, "format_name": f.FormatName}
}

func DataFormatFromValues(v Values) DataFormat {
	return DataFormat{ID: int64(v.Int("id")), FormatName: v.String("format_name")}
}

func DataFormatFields() []Field {
	return []Field{
		{Name: "format_name", Label: "Format name", Kind: KindText},
	}
}

func DataFormatColumns() []Column {
	return []Column{
		{Accessor: "id", Header: "ID"},
		{Accessor: "format_name", Header: "Format"},
	}
}

// FormatOptions projects a data-format list into select options.
func FormatOptions(formats []DataFormat) []Option {
	opts := make([]Option, len(formats))
	for i, f := range formats {
		opts[i] = Option{Value: f.FormatName, Label: f.FormatName}
	}
	return opts
}

// MappingBranch links one pharmacy branch to a marketplace store, keyed by
// branch and scoped to an enterprise.
type MappingBranch struct {
	EnterpriseCode string   `json:"enterprise_code"`
	Branch         string   `json:"branch"`
	StoreID        string   `json:"store_id"`
	GoogleFolderID string   `json:"google_folder_id,omitempty"`
	IDTelegram     []string `json:"id_telegram,omitempty"`
}

func (m MappingBranch) Key() string { return m.Branch }

func (m MappingBranch) ToValues() Values {
	return Values{
		"enterprise_code":  m.EnterpriseCode,
		"branch":           m.Branch,
		"store_id":         m.StoreID,
		"google_folder_id": m.GoogleFolderID,
		// Edited as a comma-joined scalar; split again on the way out.
		"id_telegram": DisplayString(m.IDTelegram),
	}
}

func MappingBranchFromValues(v Values) MappingBranch {
	m := MappingBranch{
		EnterpriseCode: v.String("enterprise_code"),
		Branch:         v.String("branch"),
		StoreID:        v.String("store_id"),
		GoogleFolderID: v.String("google_folder_id"),
	}
	if raw := v.String("id_telegram"); raw != "" {
		m.IDTelegram = splitCSV(raw)
	}
	return m
}

func MappingBranchFields() []Field {
	return []Field{
		{Name: "enterprise_code", Label: "Enterprise code", Kind: KindText},
		{Name: "branch", Label: "Branch", Kind: KindText},
		{Name: "store_id", Label: "Store ID", Kind: KindText},
		{Name: "google_folder_id", Label: "GDrive folder", Kind: KindText},
		{Name: "id_telegram", Label: "Telegram IDs (comma-sep)", Kind: KindText},
	}
}

func MappingBranchColumns() []Column {
	return []Column{
		{Accessor: "branch", Header: "Branch"},
		{Accessor: "enterprise_code", Header: "Enterprise"},
		{Accessor: "store_id", Header: "Store"},
		{Accessor: "id_telegram", Header: "Telegram"},
	}
}

// DropshipEnterprise is a dropshipping supplier, keyed by code.
type DropshipEnterprise struct {
	Code                  string  `json:"code"`
	Name                  string  `json:"name"`
	FeedURL               string  `json:"feed_url,omitempty"`
	GDriveFolder          string  `json:"gdrive_folder,omitempty"`
	City                  string  `json:"city"`
	IsRRP                 bool    `json:"is_rrp"`
	IsWholesale           bool    `json:"is_wholesale"`
	ProfitPercent         float64 `json:"profit_percent,omitempty"`
	RetailMarkup          float64 `json:"retail_markup,omitempty"`
	MinMarkupThreshold    float64 `json:"min_markup_threshold,omitempty"`
	IsActive              bool    `json:"is_active"`
	APIOrdersEnabled      bool    `json:"api_orders_enabled"`
	Priority              int     `json:"priority,omitempty"`
	WeekendWork           bool    `json:"weekend_work"`
	UseFeedInsteadOfDrive bool    `json:"use_feed_instead_of_gdrive"`
}

func (d DropshipEnterprise) Key() string { return d.Code }

func (d DropshipEnterprise) ToValues() Values {
	return Values{
		"code":                       d.Code,
		"name":                       d.Name,
		"feed_url":                   d.FeedURL,
		"gdrive_folder":              d.GDriveFolder,
		"city":                       d.City,
		"is_rrp":                     d.IsRRP,
		"is_wholesale":               d.IsWholesale,
		"profit_percent":             d.ProfitPercent,
		"retail_markup":              d.RetailMarkup,
		"min_markup_threshold":       d.MinMarkupThreshold,
		"is_active":                  d.IsActive,
		"api_orders_enabled":         d.APIOrdersEnabled,
		"priority":                   d.Priority,
		"weekend_work":               d.WeekendWork,
		"use_feed_instead_of_gdrive": d.UseFeedInsteadOfDrive,
	}
}

func DropshipFromValues(v Values) DropshipEnterprise {
	return DropshipEnterprise{
		Code:                  v.String("code"),
		Name:                  v.String("name"),
		FeedURL:               v.String("feed_url"),
		GDriveFolder:          v.String("gdrive_folder"),
		City:                  v.String("city"),
		IsRRP:                 v.Bool("is_rrp"),
		IsWholesale:           v.Bool("is_wholesale"),
		ProfitPercent:         v.Float("profit_percent"),
		RetailMarkup:          v.Float("retail_markup"),
		MinMarkupThreshold:    v.Float("min_markup_threshold"),
		IsActive:              v.Bool("is_active"),
		APIOrdersEnabled:      v.Bool("api_orders_enabled"),
		Priority:              v.Int("priority"),
		WeekendWork:           v.Bool("weekend_work"),
		UseFeedInsteadOfDrive: v.Bool("use_feed_instead_of_gdrive"),
	}
}

func DropshipFields() []Field {
	return []Field{
		{Name: "code", Label: "Code", Kind: KindText},
		{Name: "name", Label: "Name", Kind: KindText},
		{Name: "city", Label: "City", Kind: KindText},
		{Name: "feed_url", Label: "Feed URL", Kind: KindText},
		{Name: "gdrive_folder", Label: "GDrive folder", Kind: KindText},
		{Name: "use_feed_instead_of_gdrive", Label: "Use feed (not GDrive)", Kind: KindCheckbox},
		{Name: "is_active", Label: "Active", Kind: KindCheckbox},
		{Name: "is_rrp", Label: "Has RRP", Kind: KindCheckbox},
		{Name: "is_wholesale", Label: "Wholesale", Kind: KindCheckbox},
		{Name: "api_orders_enabled", Label: "API orders", Kind: KindCheckbox},
		{Name: "weekend_work", Label: "Weekend work", Kind: KindCheckbox},
		{Name: "profit_percent", Label: "Profit %", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Max: 100, Step: 0.1}},
		{Name: "retail_markup", Label: "Retail markup", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 0.1}},
		{Name: "min_markup_threshold", Label: "Min markup threshold", Kind: KindNumber, Constraints: &NumberConstraints{Min: 0, Step: 0.1}},
		{Name: "priority", Label: "Priority (1-10)", Kind: KindNumber, Constraints: &NumberConstraints{Min: 1, Max: 10, Step: 1}},
	}
}

func DropshipColumns() []Column {
	return []Column{
		{Accessor: "code", Header: "Code"},
		{Accessor: "name", Header: "Name"},
		{Accessor: "city", Header: "City"},
		{Accessor: "is_active", Header: "Active"},
		{Accessor: "priority", Header: "Prio"},
		{Accessor: "profit_percent", Header: "Profit %"},
	}
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
