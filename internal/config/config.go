package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Age/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Age"
	AppID             = "com.github.tartampluch.go-age"
	BinaryName        = "go-age"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "config.toml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug    = "debug"
	FlagConfig   = "config"
	FlagLang     = "lang"
	FlagDay      = "day"
	FlagMonth    = "month"
	FlagYear     = "year"
	FlagAddr     = "addr"
	FlagPort     = "port"
	FlagUser     = "user"
	FlagName     = "name"
	FlagReminder = "reminder"

	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescConfig   = "Path to the TOML settings file"
	FlagDescLang     = "Language used for messages (en, fr)"
	FlagDescDay      = "Day of the month (DD)"
	FlagDescMonth    = "Month (MM)"
	FlagDescYear     = "Year (YYYY)"
	FlagDescAddr     = "Address the HTTP server binds to"
	FlagDescPort     = "Port the HTTP server listens on"
	FlagDescUser     = "Username for HTTP Basic Auth when fetching a remote vCard"
	FlagDescName     = "Name shown in the calendar event summary"
	FlagDescReminder = "ISO8601 duration of the event reminder (e.g. -P1D), empty to disable"

	CmdUseRoot      = BinaryName
	CmdUseGUI       = "gui"
	CmdUseCalc      = "calc [DD MM YYYY]"
	CmdUseServe     = "serve"
	CmdUseContacts  = "contacts <file.vcf|url>"
	CmdUseCalendar  = "calendar [DD MM YYYY]"
	CmdUseVersion   = "version"
	CmdShortRoot    = "Compute the exact time elapsed since a date"
	CmdShortGUI     = "Open the desktop form"
	CmdShortCalc    = "Print the years, months and days elapsed since a date"
	CmdShortServe   = "Serve the browser form and JSON API"
	CmdShortContact = "List the exact age of every contact in a vCard file or URL"
	CmdShortCal     = "Export the anniversaries of a date as an iCalendar file"
	CmdShortVersion = "Show application version and exit"

	EnvPassword      = "GO_AGE_PASSWORD"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// Terminal output. The colors are only applied when stdout is a TTY.
	FormatCLIResult = "%s %s\n"
	FormatCLIField  = "%s: %s\n"
	ColorAccent     = "#A78BFA"
	ColorMuted      = "#6C7086"
	TableCellGap    = 2
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	FormWindowWidth   = 520
	ContactsWinWidth  = 640
	ContactsWinHeight = 480
	ResultTextSize    = 44
	LayoutColumns     = 3

	// Preference Keys
	PrefLanguage = "language"
	PrefLastRun  = "last_run_version"

	// Field input limits (DD / MM / YYYY).
	MaxLenDay   = 2
	MaxLenMonth = 2
	MaxLenYear  = 4

	PlaceholderDay   = "DD"
	PlaceholderMonth = "MM"
	PlaceholderYear  = "YYYY"

	// Contacts table
	ColIDName        = 0
	ColIDDate        = 1
	ColIDAge         = 2
	ColCount         = 3
	ColWidthName     = 240
	ColWidthDate     = 140
	ColWidthAge      = 240
	TablePlaceholder = "Placeholder Text Long Enough"
	SortIconAsc      = " ▲"
	SortIconDesc     = " ▼"
	FormatAgeCell    = "%d %s, %d %s, %d %s"

	// PlaceholderZero is displayed instead of a result component that is not
	// computed yet, or computed as exactly 0 when ZeroPlaceholder is enabled.
	PlaceholderZero = "--"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyLblDay       = "lbl_day"
	TKeyLblMonth     = "lbl_month"
	TKeyLblYear      = "lbl_year"
	TKeyLblLanguage  = "lbl_language"
	TKeyBtnSubmit    = "btn_submit"
	TKeyLblFooter    = "lbl_footer"
	TKeyEvtAnonymous = "event_anonymous"
	TKeyWinContacts  = "win_contacts"
	TKeyMenuFile     = "menu_file"
	TKeyMenuContacts = "menu_contacts"
	TKeyNoContacts   = "msg_no_contacts"

	// Result labels, pluralized on Count.
	TKeyLblYears  = "lbl_years"
	TKeyLblMonths = "lbl_months"
	TKeyLblDays   = "lbl_days"

	// Event summaries. Both require Name; the first also requires Age.
	TKeyEvtSummary = "event_summary"
	TKeyEvtBirth   = "event_summary_zero"
	TKeyColName      = "col_name"
	TKeyColDate      = "col_date"
	TKeyColAge       = "col_age"

	// Validation Errors (Form)
	TKeyErrRequired    = "err_required"
	TKeyErrNumber      = "err_number"
	TKeyErrDayRange    = "err_day_range"
	TKeyErrMonthRange  = "err_month_range"
	TKeyErrYearFuture  = "err_year_future"
	TKeyErrDateInvalid = "err_date_invalid"
	TKeyErrDateFuture  = "err_date_future"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort            = "18081"
	DefaultLanguage        = "en"
	DefaultZeroPlaceholder = true
	DefaultReminder        = ""

	// UIDSalt keeps generated UIDs distinct from other applications hashing the same data.
	UIDSalt = "go-age-v1-"

	// Day and month bounds checked before the whole-date round trip.
	MinDay   = 1
	MaxDay   = 31
	MinMonth = 1
	MaxMonth = 12

	// AnniversarySpan is the number of years either side of the current one
	// that receive an anniversary event.
	AnniversarySpan = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Age//Engine//EN"
	ICalCalName   = "Anniversaries"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goage"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	MaxFormBodySize     = 4 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteRoot          = "/"
	RouteHealth        = "/healthz"
	RouteMetrics       = "/metrics"
	RouteAPIDifference = "/api/v1/difference"
	RouteAPICalendar   = "/api/v1/anniversaries.ics"
	RouteUnmatched     = "unmatched"

	QueryDay   = "day"
	QueryMonth = "month"
	QueryYear  = "year"
	QueryName  = "name"
	QueryLang  = "lang"

	// Hidden form fields carrying the last result across submissions
	FormPrevYears  = "prev_years"
	FormPrevMonths = "prev_months"
	FormPrevDays   = "prev_days"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType    = "Content-Type"
	HeaderCacheControl   = "Cache-Control"
	HeaderETag           = "ETag"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderUserAgent      = "User-Agent"
	HeaderIfNoneMatch    = "If-None-Match"
	HeaderRequestID      = "X-Request-ID"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderAccept         = "Accept"
	HeaderDisposition    = "Content-Disposition"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeJSON            = "application/json"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	DispositionICS      = `attachment; filename="anniversaries.ics"`

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardOpen       = "failed to open vCard source"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrFetchStatus     = "server returned unexpected status"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrValidation      = "invalid date input"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrSettingsLoad    = "failed to parse settings file"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrTemplateRender  = "failed to render page"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrArgsCount       = "expected DD MM YYYY as three arguments or --day/--month/--year flags"
	ErrLangUnsupported = "unsupported language"
	ErrReminder        = "invalid calendar reminder duration"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgBadForm     = "Bad Request"
	HTTPMsgInternalErr = "Internal Server Error"
	HTTPMsgOK          = "ok"

	// API error codes (JSON envelope)
	APICodeValidation = "invalid_date_input"
	APIKeyDate        = "date"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "%s: %d"
	FallbackSummaryZero = "%s (birth)"
	FallbackName        = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgContactsRead  = "Contacts processed"
	MsgCalendarBuilt = "Anniversary calendar generated"
	MsgCalendarReq   = "Anniversary calendar requested"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgRequest       = "HTTP request"
	MsgSubmit        = "Form submitted"
	MsgFieldChanged  = "Field changed"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgSettingsUsed  = "Settings loaded"
	MsgLangChanged   = "Language changed"
	MsgOpenContacts  = "Opening contacts window"
	MsgContactsSort  = "Contacts sorted"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyField     = "field"
	LogKeyOutcome   = "outcome"
	LogKeyValid     = "valid"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "contacts_found"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTarget    = "target"
	LogKeyYears     = "years"
	LogKeyMonths    = "months"
	LogKeyDays      = "days"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyRequestID = "request_id"
	LogKeyDuration  = "duration_ms"
	LogKeyConfig    = "config_path"
	LogKeyCount     = "count"
	LogKeySortCol   = "sort_col"
	LogKeySortAsc   = "sort_asc"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompCLI     = "cli"
	CompI18n    = "i18n"
	CompConfig  = "config"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricsNamespace = "goage"
	MetricLabelFront = "frontend"
	MetricLabelField = "field"
	MetricLabelKind  = "outcome"

	MetricCalculations  = "calculations_total"
	MetricValidationErr = "validation_failures_total"
	MetricExports       = "calendar_exports_total"
	MetricLatency       = "http_request_duration_seconds"
	MetricLabelRoute    = "route"

	FrontendGUI  = "gui"
	FrontendCLI  = "cli"
	FrontendHTML = "html"
	FrontendAPI  = "api"
	FrontendICS  = "ics"
)
