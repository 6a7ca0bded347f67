package lacityclerk

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("scrapers/lacityclerk")
