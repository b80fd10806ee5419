package domain

import "time"

type ViewMode string

const (
	ViewOwner          ViewMode = "owner"
	ViewAdministration ViewMode = "administration"
	ViewMinimal        ViewMode = "minimal"
)

// OwnerFineView is what the fined owner sees.
type OwnerFineView struct {
	Address         string          `json:"direction"`
	PostalCode      string          `json:"zipcode"`
	OfficerID       string          `json:"police_identification"`
	Vehicle         VehicleSnapshot `json:"vehicle"`
	Reason          string          `json:"reason"`
	Paid            bool            `json:"paid"`
	CreatedAt       time.Time       `json:"createdAt"`
	ReferenceNumber string          `json:"referenceNumber"`
	Amount          float64         `json:"finesImport"`
	Description     string          `json:"description"`
}

// AdministrationFineView adds the full owner snapshot for back-office use.
type AdministrationFineView struct {
	OwnerFineView
	Owner OwnerSnapshot `json:"usuario"`
}

type MinimalFineView struct {
	Reason       string  `json:"reason"`
	Description  string  `json:"description"`
	VehiclePlate string  `json:"vehicle"`
	Amount       float64 `json:"finesImport"`
}

// FineSummary is the listing projection.
type FineSummary struct {
	OwnerTaxID           string    `json:"userId"`
	ReferenceNumber      string    `json:"fineId"`
	Paid                 bool      `json:"isPaid"`
	CreatedAt            time.Time `json:"createdAt"`
	Reason               string    `json:"reason"`
	Amount               float64   `json:"finesImport"`
	ModificationDeadline time.Time `json:"limitModTime"`
	VehiclePlate         string    `json:"linces_plate"`
	OfficerID            string    `json:"police_identification"`
}

func NewOwnerFineView(f *Fine) OwnerFineView {
	return OwnerFineView{
		Address:         f.Owner.Address,
		PostalCode:      f.Owner.PostalCode,
		OfficerID:       f.Officer.ID,
		Vehicle:         f.Vehicle,
		Reason:          f.Reason,
		Paid:            f.Paid,
		CreatedAt:       f.CreatedAt,
		ReferenceNumber: f.ReferenceNumber,
		Amount:          f.Amount,
		Description:     f.Description,
	}
}

func NewAdministrationFineView(f *Fine) AdministrationFineView {
	return AdministrationFineView{OwnerFineView: NewOwnerFineView(f), Owner: f.Owner}
}

func NewMinimalFineView(f *Fine) MinimalFineView {
	return MinimalFineView{
		Reason:       f.Reason,
		Description:  f.Description,
		VehiclePlate: f.Vehicle.Plate,
		Amount:       f.Amount,
	}
}

func NewFineSummary(f *Fine) FineSummary {
	return FineSummary{
		OwnerTaxID:           f.Owner.TaxID,
		ReferenceNumber:      f.ReferenceNumber,
		Paid:                 f.Paid,
		CreatedAt:            f.CreatedAt,
		Reason:               f.Reason,
		Amount:               f.Amount,
		ModificationDeadline: f.ModificationDeadline,
		VehiclePlate:         f.Vehicle.Plate,
		OfficerID:            f.Officer.ID,
	}
}
