package domain

type Owner struct {
	ID         string `json:"id"`
	TaxID      string `json:"dni"`
	Name       string `json:"name"`
	LastName1  string `json:"lastname1"`
	LastName2  string `json:"lastname2"`
	Address    string `json:"direction"`
	PostalCode string `json:"zipcode"`
	Town       string `json:"town"`
	Email      string `json:"email"`
	HasFines   bool   `json:"hasFines"`
	IsDeleted  bool   `json:"isDeleted"`
}

type Vehicle struct {
	ID                   string `json:"id"`
	Plate                string `json:"linces_plate"`
	Chassis              string `json:"chassis"`
	Make                 string `json:"mark"`
	Model                string `json:"model"`
	Year                 int    `json:"year"`
	Colour               string `json:"colour"`
	Category             string `json:"type_Vehicle"`
	RegistrationDocument bool   `json:"registration_document"`
	Insurance            bool   `json:"insurance"`
	Active               bool   `json:"active"`
	// OwnerTaxID is empty when the vehicle has no registered owner.
	OwnerTaxID string `json:"dniOwner"`
}

type AccountKind string

const (
	AccountKindOwner   AccountKind = "OWNER"
	AccountKindOfficer AccountKind = "OFFICER"
)

// Account is the login view of an owner or an officer.
type Account struct {
	ID           string
	Kind         AccountKind
	Username     string
	PasswordHash string
	TaxID        string
	Name         string
	Roles        []Role
}
