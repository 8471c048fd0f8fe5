package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(fc fileConfig) MetricsConfig {
	m := fc.Metrics
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, boolOr(m.Enabled, true)),
		Port:         envOrDefault(envMetricsPort, firstNonZero(m.Port, defaultMetricsPort)),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, m.OtlpEndpoint),
		ServiceName:  envOrDefault(envOtelService, firstNonZero(m.ServiceName, defaultServiceName)),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, boolOr(m.OtlpInsecure, true)),
	}
}
