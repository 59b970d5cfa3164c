package domain

// Kind names one of the record domains.
type Kind string

const (
	KindAppointment Kind = "appointments"
	KindVaccination Kind = "vaccinations"
	KindLostFound   Kind = "lostfound"
	KindMemorial    Kind = "memorials"
)

// ResourcePath is the upstream collection path for the kind.
func (k Kind) ResourcePath() string {
	switch k {
	case KindAppointment:
		return "/vetappointments"
	case KindVaccination:
		return "/vaccinationrecords"
	case KindLostFound:
		return "/lostandfound"
	case KindMemorial:
		return "/memorials"
	default:
		return ""
	}
}

// Temporal kinds are shown as upcoming/past; the rest newest first.
func (k Kind) Temporal() bool {
	return k == KindAppointment || k == KindVaccination
}
