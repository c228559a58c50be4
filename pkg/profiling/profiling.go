package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/roleready/roleready-api/config"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

const defaultAppName = "roleready-api"

var allProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

var profileTypesByName = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// Start begins continuous profiling when enabled and returns a stop func.
func Start(cfg config.ProfilingConfig, obs config.ObservabilityConfig, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	interval := cfg.UploadIntervalSeconds
	if interval <= 0 {
		interval = 15
	}

	types, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	appName := applicationName(cfg.AppName, obs, environment)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      time.Duration(interval) * time.Second,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling started",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(types)),
		zap.Int("upload_interval_seconds", interval))

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	if strings.TrimSpace(value) == "" {
		return allProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)

	for _, raw := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		mapped, ok := profileTypesByName[name]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", name)
		}
		for _, pt := range mapped {
			if !seen[pt] {
				seen[pt] = true
				types = append(types, pt)
			}
		}
	}

	if len(types) == 0 {
		return allProfileTypes, nil
	}
	return types, nil
}

// applicationName renders the Pyroscope name with static labels, e.g.
// roleready-api{service_name=roleready-api,namespace=roleready,...}
func applicationName(base string, obs config.ObservabilityConfig, environment string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = defaultAppName
	}

	labels := []string{
		"service_name=" + obs.ServiceName,
		"namespace=" + obs.ServiceNamespace,
		"environment=" + environment,
		"service_version=" + obs.ServiceVersion,
		"instance=" + obs.ServiceInstanceID,
	}
	return base + "{" + strings.Join(labels, ",") + "}"
}
