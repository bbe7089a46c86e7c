package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Property    PropertyRepository
	Application ApplicationRepository
	Maintenance MaintenanceRepository
	Payment     PaymentRepository
	Report      ReportRepository
	Media       MediaRepository
	AuditLog    AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Property:    NewPropertyRepository(db),
		Application: NewApplicationRepository(db),
		Maintenance: NewMaintenanceRepository(db),
		Payment:     NewPaymentRepository(db),
		Report:      NewReportRepository(db),
		Media:       NewMediaRepository(db),
		AuditLog:    NewAuditLogRepository(db),
	}
}
