package models

// Doctor is the practice profile attached to a user with the doctor role.
// Appointments and availability rules reference this row, not the user row.
type Doctor struct {
	BaseModel
	UserID            string  `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialization    string  `gorm:"size:100;index" json:"specialization"`
	LicenseNumber     string  `gorm:"size:50" json:"licenseNumber"`
	Bio               string  `gorm:"type:text" json:"bio"`
	YearsOfExperience int     `json:"yearsOfExperience"`
	ConsultationFee   float64 `json:"consultationFee"`
	IsVerified        bool    `gorm:"default:false;index" json:"isVerified"`
	Rating            float64 `gorm:"default:0" json:"rating"`
	TotalAppointments int     `gorm:"default:0" json:"totalAppointments"`

	User              User               `gorm:"foreignKey:UserID" json:"-"`
	AvailabilityRules []AvailabilityRule `gorm:"foreignKey:DoctorID" json:"-"`
	Appointments      []Appointment      `gorm:"foreignKey:DoctorID" json:"-"`
}

// DoctorSummary is the read-side projection embedded in appointment and
// availability responses.
type DoctorSummary struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
	Rating          float64 `json:"rating"`
}

// Summary builds a DoctorSummary. The User relation must be preloaded.
func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:              d.ID,
		FirstName:       d.User.FirstName,
		LastName:        d.User.LastName,
		Specialization:  d.Specialization,
		ConsultationFee: d.ConsultationFee,
		Rating:          d.Rating,
	}
}
