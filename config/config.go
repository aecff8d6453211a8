// Package config reads service settings from the environment, loading a .env
// file from the working directory first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "8000"
	defaultAppEnv       = "local"
	defaultMongoURL     = "mongodb://localhost:27017"
	defaultDatabaseName = "restaurant"
	defaultQRBaseURL    = "http://localhost:9000/order"
	defaultDiningTables = "1:4,2:4,3:2,4:2,5:6,6:8"
	defaultCORSOrigins  = "http://localhost:9000"
)

var loadOnce sync.Once

// Load reads .env into the process environment. Variables that are already
// set win over the file. A missing file is not an error.
func Load() {
	loadOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load(".env")
		}
	})
}

func get(key, fallback string) string {
	Load()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(get(key, "false"))
	return b
}

// Get reads any key with a fallback.
func Get(key, fallback string) string { return get(key, fallback) }

func Port() string         { return get("PORT", defaultPort) }
func AppEnv() string       { return get("APP_ENV", defaultAppEnv) }
func MongoURL() string     { return get("MONGODB_URL", defaultMongoURL) }
func DatabaseName() string { return get("DATABASE_NAME", defaultDatabaseName) }

// RedisAddr is empty unless configured; an empty address keeps carts and the
// menu cache in process.
func RedisAddr() string     { return get("REDIS_ADDR", "") }
func RedisPassword() string { return get("REDIS_PASSWORD", "") }

// AMQPURL is empty unless configured; an empty URL disables event publishing
// to RabbitMQ.
func AMQPURL() string { return get("AMQP_URL", "") }

func CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(get("CORS_ORIGINS", defaultCORSOrigins), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func QRBaseURL() string { return get("QR_BASE_URL", defaultQRBaseURL) }

// VenueName heads every printed receipt.
func VenueName() string { return get("VENUE_NAME", "Restaurant") }

func CartTTL() time.Duration        { return getDuration("CART_TTL", 2*time.Hour) }
func MenuCacheTTL() time.Duration   { return getDuration("MENU_CACHE_TTL", 5*time.Minute) }
func RequestTimeout() time.Duration { return getDuration("REQUEST_TIMEOUT", 10*time.Second) }

func AuthEnabled() bool { return getBool("AUTH_ENABLED") }
func SecretKey() string { return get("SECRET_KEY", "change-me") }

func ReceiptDisk() string      { return get("RECEIPT_DISK", "local") }
func ReceiptLocalRoot() string { return get("RECEIPT_LOCAL_ROOT", "receipts") }

// S3 holds the receipt bucket settings.
type S3 struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
}

func S3Settings() S3 {
	return S3{
		Bucket:   get("S3_BUCKET", ""),
		Region:   get("S3_REGION", "us-east-1"),
		Key:      get("S3_KEY", ""),
		Secret:   get("S3_SECRET", ""),
		Endpoint: get("S3_ENDPOINT", ""),
	}
}

// TableSpec is one configured dining table.
type TableSpec struct {
	Number int
	Seats  int
}

// DiningTables parses DINING_TABLES, a comma separated list of number:seats.
func DiningTables() ([]TableSpec, error) {
	return ParseTables(get("DINING_TABLES", defaultDiningTables))
}

func ParseTables(raw string) ([]TableSpec, error) {
	var tables []TableSpec
	seen := map[int]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		num, seats, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("config: dining table %q: want number:seats", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: dining table %q: bad number", part)
		}
		s, err := strconv.Atoi(strings.TrimSpace(seats))
		if err != nil || s < 1 {
			return nil, fmt.Errorf("config: dining table %q: bad seat count", part)
		}
		if seen[n] {
			return nil, fmt.Errorf("config: dining table %d listed twice", n)
		}
		seen[n] = true
		tables = append(tables, TableSpec{Number: n, Seats: s})
	}
	return tables, nil
}
