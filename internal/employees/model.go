package employees

import "time"

// Employment types recognized for ASN personnel.
const (
	TypePNS  = "PNS"
	TypePPPK = "PPPK"
)

// Employment statuses.
const (
	StatusActive      = "active"
	StatusTransferred = "transferred"
	StatusRetired     = "retired"
)

// Employee is one ASN personnel record.
type Employee struct {
	ID             string    `json:"id"`
	NIP            string    `json:"nip"` // 18-digit service number
	Name           string    `json:"name"`
	BirthPlace     string    `json:"birth_place"`
	BirthDate      time.Time `json:"birth_date"`
	Gender         string    `json:"gender"` // "M" or "F"
	Rank           string    `json:"rank"`   // golongan, e.g. "III/a"
	Position       string    `json:"position"`
	UnitID         string    `json:"unit_id"`
	EmploymentType string    `json:"employment_type"`
	Status         string    `json:"status"`
	HireDate       time.Time `json:"hire_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
