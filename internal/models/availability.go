package models

// AvailabilityRule is a recurring weekly open interval for a doctor.
// StartTime and EndTime are HH:MM clock strings; the whole rule set for a
// doctor is replaced atomically whenever the doctor saves a new schedule.
type AvailabilityRule struct {
	BaseModel
	DoctorID     string `gorm:"size:36;index:idx_doctor_day" json:"doctorId"`
	DayOfWeek    int    `gorm:"index:idx_doctor_day" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime    string `gorm:"size:5;not null" json:"startTime"`
	EndTime      string `gorm:"size:5;not null" json:"endTime"`
	SlotDuration int    `gorm:"default:30" json:"slotDuration"` // minutes, 15..120
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
