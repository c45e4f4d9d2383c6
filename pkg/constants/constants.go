// Package constants provides shared constants for the nav-landing application.
package constants

// DateTimeLayout is the French day/month/year format expected in parameter
// documents and used for every rendered date.
const DateTimeLayout = "02/01/2006"

// Projection constants
const (
	// DecimalPlaces is the number of places NAV per share is rounded to.
	DecimalPlaces = 2

	// TaxProvisionFactor is applied to flagged positive asset variations to
	// approximate a corporate tax provision.
	TaxProvisionFactor = "0.75"

	// FirstSemesterEndMonth and FirstSemesterEndDay locate June 30.
	FirstSemesterEndMonth = 6
	FirstSemesterEndDay   = 30

	// SecondSemesterEndMonth and SecondSemesterEndDay locate December 31.
	SecondSemesterEndMonth = 12
	SecondSemesterEndDay   = 31

	// AssetPeriodIndex is the only period at which asset revaluations apply.
	AssetPeriodIndex = 1
)

// Parameter defaults
const (
	// DefaultScenarioName labels parameter sets that do not name a scenario.
	DefaultScenarioName = "Scénario de base"

	// DefaultFundName is the fund label of a fresh parameter set.
	DefaultFundName = "Nom du Fonds"

	// CurrencySymbol is appended to formatted amounts.
	CurrencySymbol = "€"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of the application config.
	EnvPrefix = "NAVLANDING"
)

// Storage defaults
const (
	// StorageDriverSQLite stores simulations in a SQLite database.
	StorageDriverSQLite = "sqlite"

	// StorageDriverFile stores simulations as JSON files in a directory.
	StorageDriverFile = "file"

	// DefaultStoragePath is the default SQLite database location.
	DefaultStoragePath = "nav-landing.db"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for parameter documents (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
