package domain

import "time"

// ModificationWindow is how long after issue a field officer may still edit a fine.
const ModificationWindow = 15 * time.Minute

const DefaultFineAmount = 1.0

type OwnerSnapshot struct {
	TaxID      string `json:"tax_id"`
	Name       string `json:"name"`
	LastName1  string `json:"last_name1"`
	LastName2  string `json:"last_name2"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Town       string `json:"town"`
	Email      string `json:"email"`
}

type VehicleSnapshot struct {
	Plate                string `json:"plate"`
	Chassis              string `json:"chassis"`
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int    `json:"year"`
	Colour               string `json:"colour"`
	Category             string `json:"category"`
	RegistrationDocument bool   `json:"registration_document"`
	Insurance            bool   `json:"insurance"`
}

type OfficerSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Fine is the canonical ticket document. Owner, Vehicle and Officer are copies
// taken when the fine was issued (or its vehicle reassigned).
type Fine struct {
	// Seq is the store-assigned insertion sequence, used to keep insertion
	// order among fines sharing a creation timestamp.
	Seq                  uint64          `json:"seq"`
	ReferenceNumber      string          `json:"reference_number"`
	Owner                OwnerSnapshot   `json:"owner"`
	Vehicle              VehicleSnapshot `json:"vehicle"`
	Officer              OfficerSnapshot `json:"officer"`
	Reason               string          `json:"reason"`
	Description          string          `json:"description"`
	Amount               float64         `json:"amount"`
	Paid                 bool            `json:"paid"`
	CreatedAt            time.Time       `json:"created_at"`
	ModificationDeadline time.Time       `json:"modification_deadline"`
}

func SnapshotOwner(o *Owner) OwnerSnapshot {
	return OwnerSnapshot{
		TaxID:      o.TaxID,
		Name:       o.Name,
		LastName1:  o.LastName1,
		LastName2:  o.LastName2,
		Address:    o.Address,
		PostalCode: o.PostalCode,
		Town:       o.Town,
		Email:      o.Email,
	}
}

func SnapshotVehicle(v *Vehicle) VehicleSnapshot {
	return VehicleSnapshot{
		Plate:                v.Plate,
		Chassis:              v.Chassis,
		Make:                 v.Make,
		Model:                v.Model,
		Year:                 v.Year,
		Colour:               v.Colour,
		Category:             v.Category,
		RegistrationDocument: v.RegistrationDocument,
		Insurance:            v.Insurance,
	}
}

// FinePatch carries the optional fields of an update. Nil means "not provided".
type FinePatch struct {
	VehiclePlate *string
	Reason       *string
	Description  *string
	Amount       *float64
	Delete       bool
}

type FineIssuedEvent struct {
	OwnerName       string
	OwnerEmail      string
	ReferenceNumber string
	CreatedAt       time.Time
	Reason          string
	Amount          float64
}
