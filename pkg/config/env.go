package config

// EnvPrefix is intentionally empty: every variable carries the full CRUMB_
// name in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CRUMB_DB_DSN"
	EnvDBHost = "CRUMB_DB_HOST"
	EnvDBUser = "CRUMB_DB_USER"
	EnvDBName = "CRUMB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
