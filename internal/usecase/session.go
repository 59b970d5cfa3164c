package usecase

import (
	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/domain"
)

// Session holds one screen per record kind for a single signed-in user.
type Session struct {
	Appointments *RecordUsecase[domain.Appointment]
	Vaccinations *RecordUsecase[domain.Vaccination]
	LostFound    *RecordUsecase[domain.LostFound]
	Memorials    *RecordUsecase[domain.Memorial]
}

// Gateways bundles the upstream ports a session is built from.
type Gateways struct {
	Appointments RecordGateway[domain.Appointment]
	Vaccinations RecordGateway[domain.Vaccination]
	LostFound    RecordGateway[domain.LostFound]
	Memorials    RecordGateway[domain.Memorial]
}

func NewSession(gw Gateways, opts ...collection.Option) *Session {
	return &Session{
		Appointments: NewRecordUsecase(domain.KindAppointment, gw.Appointments, opts...),
		Vaccinations: NewRecordUsecase(domain.KindVaccination, gw.Vaccinations, opts...),
		LostFound:    NewRecordUsecase(domain.KindLostFound, gw.LostFound, opts...),
		Memorials:    NewRecordUsecase(domain.KindMemorial, gw.Memorials, opts...),
	}
}
