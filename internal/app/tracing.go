package app

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/cimillas/event-lodging/internal/app")
