package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkova/inkwell/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session validity, hours
//	-k bool     Secure flag on the session cookie
//	-o string   Ollama base URL (e.g., "http://127.0.0.1:11434")
//	-m string   Ollama model id
//	-w int      Ollama call timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-o", "-m", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityHours := fs.Int("t", int(config.SessionValidityDuration.Hours()), "session validity (in hours)")
	fs.BoolVar(&config.CookieSecure, "k", config.CookieSecure, "set the Secure flag on the session cookie")

	fs.StringVar(&config.OllamaBaseURL, "o", config.OllamaBaseURL, "Ollama base URL")
	fs.StringVar(&config.OllamaModel, "m", config.OllamaModel, "Ollama model id")
	ollamaTimeoutSeconds := fs.Int("w", int(config.OllamaTimeout.Seconds()), "Ollama call timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityHours) * time.Hour
	config.OllamaTimeout = time.Duration(*ollamaTimeoutSeconds) * time.Second
}
