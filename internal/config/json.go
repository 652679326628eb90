package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/asnhub/asndash/internal/flagx"
	"github.com/asnhub/asndash/internal/timex"
)

// jsonConfig is the DTO used only for reading JSON configuration files.
// Interval fields use timex.Duration so both "15m" and integer nanoseconds
// are accepted. After unmarshalling, values are copied into Config.
type jsonConfig struct {
	EndpointAddr      string         `json:"endpoint_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	IdentityStorePath string         `json:"identity_store_path"`
	ReportURLTTL      timex.Duration `json:"report_url_ttl"`
	S3RootUser        string         `json:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
}

// parseJSON overlays values from the JSON file named by -c/-config onto the
// provided Config. When the flag is absent, nothing is loaded. A missing or
// malformed file panics: configuration errors should stop startup.
func parseJSON(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.IdentityStorePath = c.IdentityStorePath
	config.ReportURLTTL = time.Duration(c.ReportURLTTL.Duration)
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
