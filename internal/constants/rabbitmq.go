package constants

// Имена очередей
const (
	QueueAnalysisTasks     = "property_analysis_tasks"
	QueueAnalyzedProFormas = "analyzed_proformas"
)

// Ключи маршрутизации
const (
	RoutingKeyAnalysisTasks     = "listings.analysis.tasks"
	RoutingKeyAnalyzedProFormas = "db.proformas.save"
)
