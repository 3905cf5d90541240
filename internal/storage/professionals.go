package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayushsetu/credential-registry/internal/models"
)

// Вложенные секции анкеты хранятся в колонках JSONB: их состав меняется
// вместе с формой, а запросы по ним не строятся.

// CreateMedicalProfessional сохраняет анкету медицинского специалиста.
// Повторная попытка для того же пользователя даёт ErrAlreadyExists:
// уникальный внешний ключ user_id гарантирует не более одной анкеты.
func (s *Storage) CreateMedicalProfessional(ctx context.Context, p models.MedicalProfessional) (string, error) {
	const op = "storage.CreateMedicalProfessional"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sections, err := marshalSections(map[string]any{
		"permanent_address":       p.PermanentAddress,
		"academic_qualifications": p.AcademicQualifications,
		"regulatory_details":      p.RegulatoryDetails,
		"practice_details":        p.PracticeDetails,
		"previous_experience":     p.PreviousExperience,
		"research_interests":      p.ResearchInterests,
		"publication_details":     p.PublicationDetails,
		"training_details":        p.TrainingDetails,
		"digital_presence":        p.DigitalPresence,
		"consents":                p.Consents,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO medical_professionals (user_id, fullname, date_of_birth, gender,
			      nationality, personal_photo_url, phone_number, alt_phone_number,
			      email_primary, email_alternate, phd_or_research_degrees,
			      additional_certifications, permanent_address, academic_qualifications,
			      regulatory_details, practice_details, previous_experience,
			      research_interests, publication_details, training_details,
			      digital_presence, consents)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			      $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserID, p.Fullname, p.DateOfBirth, p.Gender, p.PersonalNationality,
		p.PersonalPhoto, p.PhoneNumber, p.AltPhoneNumber, p.EmailPrimary, p.EmailAlternate,
		p.PhdOrResearchDegrees, p.AdditionalCertifications,
		sections["permanent_address"], sections["academic_qualifications"],
		sections["regulatory_details"], sections["practice_details"],
		sections["previous_experience"], sections["research_interests"],
		sections["publication_details"], sections["training_details"],
		sections["digital_presence"], sections["consents"]).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

// GetMedicalProfessionalByUserID возвращает анкету по владельцу.
func (s *Storage) GetMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.MedicalProfessional, error) {
	const op = "storage.GetMedicalProfessionalByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, fullname, date_of_birth, gender, nationality,
			      personal_photo_url, phone_number, alt_phone_number, email_primary,
			      email_alternate, phd_or_research_degrees, additional_certifications,
			      permanent_address, academic_qualifications, regulatory_details,
			      practice_details, previous_experience, research_interests,
			      publication_details, training_details, digital_presence, consents,
			      created_at
			  FROM medical_professionals WHERE user_id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	p := &models.MedicalProfessional{}
	var address, academics, regulatory, practice, experience, interests,
		publications, trainings, digital, consents []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Fullname, &p.DateOfBirth, &p.Gender,
		&p.PersonalNationality, &p.PersonalPhoto, &p.PhoneNumber, &p.AltPhoneNumber,
		&p.EmailPrimary, &p.EmailAlternate, &p.PhdOrResearchDegrees,
		&p.AdditionalCertifications, &address, &academics, &regulatory, &practice,
		&experience, &interests, &publications, &trainings, &digital, &consents,
		&p.CreatedAt); err != nil {
		return nil, translate(op, err)
	}

	if err := unmarshalSections(map[string][]byte{
		"permanent_address":       address,
		"academic_qualifications": academics,
		"regulatory_details":      regulatory,
		"practice_details":        practice,
		"previous_experience":     experience,
		"research_interests":      interests,
		"publication_details":     publications,
		"training_details":        trainings,
		"digital_presence":        digital,
		"consents":                consents,
	}, map[string]any{
		"permanent_address":       &p.PermanentAddress,
		"academic_qualifications": &p.AcademicQualifications,
		"regulatory_details":      &p.RegulatoryDetails,
		"practice_details":        &p.PracticeDetails,
		"previous_experience":     &p.PreviousExperience,
		"research_interests":      &p.ResearchInterests,
		"publication_details":     &p.PublicationDetails,
		"training_details":        &p.TrainingDetails,
		"digital_presence":        &p.DigitalPresence,
		"consents":                &p.Consents,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreateNonMedicalProfessional сохраняет анкету немедицинского специалиста.
func (s *Storage) CreateNonMedicalProfessional(ctx context.Context, p models.NonMedicalProfessional) (string, error) {
	const op = "storage.CreateNonMedicalProfessional"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sections, err := marshalSections(map[string]any{
		"permanent_address":       p.PermanentAddress,
		"academic_qualifications": p.AcademicQualifications,
		"training_details":        p.TrainingDetails,
		"digital_presence":        p.DigitalPresence,
		"consents":                p.Consents,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO non_medical_professionals (user_id, fullname, date_of_birth,
			      gender, nationality, personal_photo_url, phone_number, alt_phone_number,
			      email_primary, email_alternate, phd_or_research_degrees,
			      additional_certifications, permanent_address, academic_qualifications,
			      training_details, digital_presence, consents)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserID, p.Fullname, p.DateOfBirth, p.Gender, p.PersonalNationality,
		p.PersonalPhoto, p.PhoneNumber, p.AltPhoneNumber, p.EmailPrimary, p.EmailAlternate,
		p.PhdOrResearchDegrees, p.AdditionalCertifications,
		sections["permanent_address"], sections["academic_qualifications"],
		sections["training_details"], sections["digital_presence"],
		sections["consents"]).Scan(&newID); err != nil {
		return "", translate(op, err)
	}
	return newID, nil
}

// GetNonMedicalProfessionalByUserID возвращает анкету по владельцу.
func (s *Storage) GetNonMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.NonMedicalProfessional, error) {
	const op = "storage.GetNonMedicalProfessionalByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, fullname, date_of_birth, gender, nationality,
			      personal_photo_url, phone_number, alt_phone_number, email_primary,
			      email_alternate, phd_or_research_degrees, additional_certifications,
			      permanent_address, academic_qualifications, training_details,
			      digital_presence, consents, created_at
			  FROM non_medical_professionals WHERE user_id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	p := &models.NonMedicalProfessional{}
	var address, academics, trainings, digital, consents []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Fullname, &p.DateOfBirth, &p.Gender,
		&p.PersonalNationality, &p.PersonalPhoto, &p.PhoneNumber, &p.AltPhoneNumber,
		&p.EmailPrimary, &p.EmailAlternate, &p.PhdOrResearchDegrees,
		&p.AdditionalCertifications, &address, &academics, &trainings, &digital,
		&consents, &p.CreatedAt); err != nil {
		return nil, translate(op, err)
	}

	if err := unmarshalSections(map[string][]byte{
		"permanent_address":       address,
		"academic_qualifications": academics,
		"training_details":        trainings,
		"digital_presence":        digital,
		"consents":                consents,
	}, map[string]any{
		"permanent_address":       &p.PermanentAddress,
		"academic_qualifications": &p.AcademicQualifications,
		"training_details":        &p.TrainingDetails,
		"digital_presence":        &p.DigitalPresence,
		"consents":                &p.Consents,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func marshalSections(sections map[string]any) (map[string][]byte, error) {
	out := make(map[string][]byte, len(sections))
	for name, v := range sections {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal section %s: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}

func unmarshalSections(raw map[string][]byte, dst map[string]any) error {
	for name, data := range raw {
		if len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, dst[name]); err != nil {
			return fmt.Errorf("unmarshal section %s: %w", name, err)
		}
	}
	return nil
}
