package recurrence

import (
	"log/slog"
	"time"
)

// CalculatorConfig holds configuration options for the calculator
type CalculatorConfig struct {
	// Cache configuration
	CacheEnabled bool
	CacheConfig  CacheConfig

	// MaxWeekdaySearchDays bounds the forward day-by-day search used by
	// weekly weekday-set rules. A rule whose set never matches within the
	// bound terminates the series fail-closed.
	MaxWeekdaySearchDays int
}

// DefaultCalculatorConfig provides sensible defaults for production use
var DefaultCalculatorConfig = CalculatorConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,

	MaxWeekdaySearchDays: 366, // More than a year of daily probes is a broken rule
}

// HighPerformanceConfig is optimized for high-traffic scenarios
var HighPerformanceConfig = CalculatorConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute, // Longer cache TTL
		MaxEntries:      5000,             // More cache entries
		CleanupInterval: 10 * time.Minute, // Less frequent cleanup
	},

	MaxWeekdaySearchDays: 366,
}

// LowMemoryConfig is optimized for memory-constrained environments
var LowMemoryConfig = CalculatorConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute, // Shorter cache TTL
		MaxEntries:      100,             // Fewer cache entries
		CleanupInterval: 2 * time.Minute, // More frequent cleanup
	},

	MaxWeekdaySearchDays: 366,
}

// DisabledCacheConfig turns off caching entirely
var DisabledCacheConfig = CalculatorConfig{
	CacheEnabled: false,
	CacheConfig:  CacheConfig{}, // Not used

	MaxWeekdaySearchDays: 366,
}

// NewCalculatorWithConfig creates a new calculator with custom configuration
func NewCalculatorWithConfig(config CalculatorConfig, logger *slog.Logger) *Calculator {
	if config.MaxWeekdaySearchDays <= 0 {
		config.MaxWeekdaySearchDays = DefaultCalculatorConfig.MaxWeekdaySearchDays
	}
	if logger == nil {
		logger = slog.Default()
	}

	var cache *resultCache
	if config.CacheEnabled {
		cache = newResultCache(config.CacheConfig)
	}

	return &Calculator{
		cache:  cache,
		config: config,
		logger: logger,
	}
}
