package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/flagx"
	"github.com/dmitrijs2005/taskvault/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	OAuthStateValidityDuration  timex.Duration `json:"oauth_state_validity_duration"`
	GoogleClientID              string         `json:"google_client_id"`
	GoogleClientSecret          string         `json:"google_client_secret"`
	GoogleRedirectURL           string         `json:"google_redirect_url"`
	GoogleAuthURL               string         `json:"google_auth_url"`
	GoogleTokenURL              string         `json:"google_token_url"`
	GoogleUserInfoURL           string         `json:"google_userinfo_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flag; if it is not set, no JSON file is loaded. If the file path is found,
// parseJson attempts to read and unmarshal it into a JsonConfig and copies
// the resulting values into the target Config. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
	config.OAuthStateValidityDuration = time.Duration(c.OAuthStateValidityDuration.Duration)
	config.GoogleClientID = c.GoogleClientID
	config.GoogleClientSecret = c.GoogleClientSecret
	config.GoogleRedirectURL = c.GoogleRedirectURL
	config.GoogleAuthURL = c.GoogleAuthURL
	config.GoogleTokenURL = c.GoogleTokenURL
	config.GoogleUserInfoURL = c.GoogleUserInfoURL
}
