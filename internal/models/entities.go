package models

// Сущности платформы, которыми консоль управляет через Orchestrator.
// Формы дат — строки "2006-01-02"/"RFC3339" как их сериализует бэкенд;
// консоль их не интерпретирует, только отображает и передаёт обратно.

// Dog — карточка собаки приюта.
type Dog struct {
	ID                    int64   `json:"id"`
	MicrochipID           string  `json:"microchipID"`
	Name                  string  `json:"name"`
	Desc                  string  `json:"desc"`
	Image                 string  `json:"image"`
	IsSponsored           bool    `json:"is_sponsored"`
	VaccinationDate       string  `json:"vaccinationDate"`
	Categories            []int64 `json:"categories"`
	DOB                   string  `json:"DOB"`
	Gender                string  `json:"gender"`
	SponsorExpirationDate string  `json:"sponsorExpirationDate"`
}

// DogCategory — категория собак.
type DogCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Image string `json:"image"`
}

// Account — учётная запись сотрудника/волонтёра.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Walk — запись журнала выгула.
type Walk struct {
	ID                 int64  `json:"id"`
	DogID              int64  `json:"dogID"`
	Handler            string `json:"handler"`
	Enrichment         string `json:"enrichment"`
	Walking            string `json:"walking"`
	LeashConditioning  string `json:"leashConditioning"`
	TouchConditioning  string `json:"touchConditioning"`
	MuzzleConditioning string `json:"muzzleConditioning"`
	BehaviorIssues     string `json:"behaviorIssues"`
	MedicalIssues      string `json:"medicalIssues"`
	PoopScore          string `json:"poopScore"`
	ReactivityScore    string `json:"reactivityScore"`
	SensitivityScore   string `json:"sensitivityScore"`
	CreatedAt          string `json:"createdAt"`
}

// Payment — спонсорский платёж.
type Payment struct {
	PaymentIntent     string `json:"paymentIntent"`
	DogID             string `json:"dogID"`
	CheckoutSessionID string `json:"checkoutSessionID"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerName      string `json:"customerName"`
	AmountTotal       string `json:"amountTotal"`
	Currency          string `json:"currency"`
	CreatedAt         string `json:"createdAt"`
}
