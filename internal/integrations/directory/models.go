package directory

// Professional модель специалиста из сервиса-справочника платформы
type Professional struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	IsActive  bool   `json:"is_active"`
}

// Patient модель пациента из сервиса-справочника платформы
type Patient struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ErrorResponse модель ошибки от сервиса-справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
