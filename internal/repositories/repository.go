package repositories

type Repository struct {
	Issue          IssueRepository
	ParkingBooking ParkingBookingRepository
	MeterReading   MeterReadingRepository
}

func New() Repository {
	return Repository{
		Issue:          NewIssueRepository(),
		ParkingBooking: NewParkingBookingRepository(),
		MeterReading:   NewMeterReadingRepository(),
	}
}
