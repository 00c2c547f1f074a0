package importer

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("termite.importer")
	meter  = otel.Meter("termite.importer")
)

type instruments struct {
	stageDuration metric.Float64Histogram
	stageFailures metric.Int64Counter
	runs          metric.Int64Counter
}

// newInstruments creates the import metrics. An instrument that cannot be
// created is left nil and skipped when recording.
func newInstruments(logger *slog.Logger) instruments {
	var (
		ins        instruments
		err        error
		initErrors []string
	)

	ins.stageDuration, err = meter.Float64Histogram("termite_import_stage_duration_seconds",
		metric.WithDescription("Time spent in each import stage"),
		metric.WithUnit("s"),
	)
	if err != nil {
		initErrors = append(initErrors, "stage_duration: "+err.Error())
	}

	ins.stageFailures, err = meter.Int64Counter("termite_import_stage_failure_total",
		metric.WithDescription("Number of failed import stages"),
	)
	if err != nil {
		initErrors = append(initErrors, "stage_failures: "+err.Error())
	}

	ins.runs, err = meter.Int64Counter("termite_import_runs_total",
		metric.WithDescription("Number of import runs by final state"),
	)
	if err != nil {
		initErrors = append(initErrors, "runs: "+err.Error())
	}

	if len(initErrors) > 0 {
		logger.Error("failed to initialize some import metrics",
			slog.Int("failed_count", len(initErrors)),
			slog.Any("errors", initErrors),
		)
	}
	return ins
}
