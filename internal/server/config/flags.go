package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o int      OAuth state validity, minutes
//	-w int      bcrypt work factor
//	-i string   Google OAuth client id
//	-k string   Google OAuth client secret
//	-u string   Google OAuth redirect URL
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o", "-w", "-i", "-k", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	oauthStateValidityDuration := fs.Int("o", int(config.OAuthStateValidityDuration.Minutes()), "oauth_state_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")
	fs.StringVar(&config.GoogleClientID, "i", config.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&config.GoogleClientSecret, "k", config.GoogleClientSecret, "Google OAuth client secret")
	fs.StringVar(&config.GoogleRedirectURL, "u", config.GoogleRedirectURL, "Google OAuth redirect URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.OAuthStateValidityDuration = time.Duration(*oauthStateValidityDuration) * time.Minute
}
