package models

const (
	// DefaultSessionTTL время жизни гостевой сессии в Redis (24 часа в секундах)
	DefaultSessionTTL = 24 * 60 * 60

	// DefaultMaxStayNights максимальная длительность проживания
	DefaultMaxStayNights = 30

	// DefaultExportDebounce задержка перед пересборкой отчёта (секунды)
	DefaultExportDebounce = 5
)
