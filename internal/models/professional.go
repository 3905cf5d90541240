package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// FlexInt целое, принимающее при декодировании и число, и строку с числом.
// Формы присылают числовые поля строками, JSON-полезные нагрузки — числами.
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// Address почтовый адрес анкеты.
type Address struct {
	HouseNo string `json:"houseNo"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	PinCode string `json:"pinCode"`
}

// Qualification одна ступень образования (UG или PG).
type Qualification struct {
	Qualification  string  `json:"qualification"`
	Specialization string  `json:"specialization,omitempty"`
	College        string  `json:"college"`
	YearOfPassing  FlexInt `json:"yearOfPassing"`
}

// AcademicQualifications секция академических квалификаций.
type AcademicQualifications struct {
	UG Qualification `json:"ug"`
	PG Qualification `json:"pg"`
}

// RegulatoryDetails регистрационные данные в профильном совете.
type RegulatoryDetails struct {
	AyushRegNo              string    `json:"regulatoryAyushRegNo"`
	CouncilName             string    `json:"councilName"`
	RegistrationDate        time.Time `json:"registrationDate"`
	RegulatoryValidityUntil time.Time `json:"regulatoryValidityUntil"`
}

// PracticeDetails текущая практика.
type PracticeDetails struct {
	CurrentDesignation  string   `json:"currentDesignation"`
	CurrentInstitution  string   `json:"currentInstitution"`
	WorkAddress         string   `json:"workAddress"`
	YearsExperience     FlexInt  `json:"yearsExperience"`
	SpecializationAreas []string `json:"specializationAreas"`
}

// ExperienceEntry одна запись предыдущего опыта работы.
type ExperienceEntry struct {
	Designation  string     `json:"designation"`
	Organization string     `json:"organization"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Description  string     `json:"description"`
}

// PublicationEntry одна публикация.
type PublicationEntry struct {
	Journal string  `json:"journal,omitempty"`
	Title   string  `json:"title,omitempty"`
	Year    FlexInt `json:"year,omitempty"`
	Link    string  `json:"link"`
}

// TrainingEntry одна запись об обучении или тренинге.
type TrainingEntry struct {
	TrainingName      string     `json:"trainingName"`
	TrainingOrganizer string     `json:"trainingOrganizer"`
	TrainingRole      string     `json:"trainingRole"`
	TrainingStartDate *time.Time `json:"trainingStartDate,omitempty"`
	TrainingEndDate   *time.Time `json:"trainingEndDate,omitempty"`
}

// DigitalPresence ссылки на сайты и профили.
type DigitalPresence struct {
	Website        string   `json:"digitalWebsite,omitempty"`
	Blog           string   `json:"digitalBlog,omitempty"`
	LinkedIn       string   `json:"digitalLinkedIn,omitempty"`
	ResearchGate   string   `json:"digitalResearchGate,omitempty"`
	Orcid          string   `json:"digitalOrcid,omitempty"`
	SocialPlatform []string `json:"digitalSocialPlatform,omitempty"`
	SocialHandle   []string `json:"digitalSocialHandle,omitempty"`
	SocialURL      []string `json:"digitalSocialURL,omitempty"`
}

// Consents согласия заявителя.
type Consents struct {
	InfoTrueAndCorrect   bool `json:"consent_infoTrueAndCorrect"`
	AuthorizeDataUse     bool `json:"consent_authorizeDataUse"`
	AgreeToNotifications bool `json:"consent_agreeToNotifications"`
}

// MedicalProfessional анкета медицинского специалиста.
// Принадлежит ровно одному пользователю (1:1 по UserID), создаётся не более
// одного раза; создание переводит RegisteredAs пользователя в medical_prof.
type MedicalProfessional struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Fullname            string    `json:"fullname"`
	DateOfBirth         time.Time `json:"dateOfBirth"`
	Gender              string    `json:"gender"`
	PersonalNationality string    `json:"personalNationality"`
	PersonalPhoto       string    `json:"personalPhoto"`

	PermanentAddress Address `json:"permanentAddress"`
	PhoneNumber      string  `json:"phoneNumber"`
	AltPhoneNumber   string  `json:"altPhoneNumber,omitempty"`
	EmailPrimary     string  `json:"emailPrimary"`
	EmailAlternate   string  `json:"emailAlternate,omitempty"`

	AcademicQualifications   AcademicQualifications `json:"academicQualifications"`
	PhdOrResearchDegrees     string                 `json:"academics_phdOrResearchDegrees,omitempty"`
	AdditionalCertifications string                 `json:"academics_additionalCertifications,omitempty"`

	RegulatoryDetails  RegulatoryDetails  `json:"regulatoryDetails"`
	PracticeDetails    PracticeDetails    `json:"practiceDetails"`
	PreviousExperience []ExperienceEntry  `json:"previousExperience"`
	ResearchInterests  []string           `json:"researchInterests"`
	PublicationDetails []PublicationEntry `json:"publicationDetails"`
	TrainingDetails    []TrainingEntry    `json:"trainingDetails"`

	DigitalPresence
	Consents

	CreatedAt time.Time `json:"createdAt"`
}

// NonMedicalProfessional анкета немедицинского специалиста: те же персональные,
// контактные и академические секции, но без регуляторных данных, практики,
// опыта и публикаций.
type NonMedicalProfessional struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Fullname            string    `json:"fullname"`
	DateOfBirth         time.Time `json:"dateOfBirth"`
	Gender              string    `json:"gender"`
	PersonalNationality string    `json:"personalNationality"`
	PersonalPhoto       string    `json:"personalPhoto"`

	PermanentAddress Address `json:"permanentAddress"`
	PhoneNumber      string  `json:"phoneNumber"`
	AltPhoneNumber   string  `json:"altPhoneNumber,omitempty"`
	EmailPrimary     string  `json:"emailPrimary"`
	EmailAlternate   string  `json:"emailAlternate,omitempty"`

	AcademicQualifications   AcademicQualifications `json:"academicQualifications"`
	PhdOrResearchDegrees     string                 `json:"academics_phdOrResearchDegrees,omitempty"`
	AdditionalCertifications string                 `json:"academics_additionalCertifications,omitempty"`

	TrainingDetails []TrainingEntry `json:"trainingDetails"`

	DigitalPresence
	Consents

	CreatedAt time.Time `json:"createdAt"`
}

// DecodeBody декодирует нормализованное тело формы в целевую структуру анкеты.
// Тело уже прошло валидацию, поэтому ошибки декодирования означают рассинхрон
// набора правил и модели.
func DecodeBody(body map[string]any, dst any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
