package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN    string
	HTTPPort       string
	AllowedOrigins []string
}

// Load reads configuration from environment variables with reasonable
// defaults, validating everything eagerly so a bad deployment fails at
// startup instead of on the first request.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = BuildDSN(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
		)
	}

	// The hosted database hands out its CA certificate as a base64 blob in
	// the environment rather than a file on disk.
	if cert := os.Getenv("SSL_CERTIFICATE"); cert != "" {
		caPath, err := MaterializeCACert(cert)
		if err != nil {
			log.Fatalf("invalid SSL_CERTIFICATE: %v", err)
		}
		dsn = withRootCert(dsn, caPath)
	}

	origins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	cleaned := origins[:0]
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{"http://localhost:3000"}
	}

	return Config{DatabaseDSN: dsn, HTTPPort: port, AllowedOrigins: cleaned}
}

// BuildDSN assembles a postgres connection string from discrete parts,
// falling back to local development defaults for anything unset.
func BuildDSN(host, port, user, password, name string) string {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	if user == "" {
		user = "postgres"
	}
	if name == "" {
		name = "retailpos"
	}
	u := url.URL{
		Scheme: "postgresql",
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// MaterializeCACert decodes a base64-encoded PEM certificate into a temp
// file and returns its path, for use as the driver's sslrootcert.
func MaterializeCACert(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode certificate: %w", err)
	}
	f, err := os.CreateTemp("", "db-ca-*.pem")
	if err != nil {
		return "", fmt.Errorf("create certificate file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write certificate file: %w", err)
	}
	return f.Name(), nil
}

func withRootCert(dsn, caPath string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "sslmode=verify-full&sslrootcert=" + url.QueryEscape(caPath)
}
