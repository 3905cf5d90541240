// Package professional содержит логику приёма анкет профессиональной
// регистрации: нормализацию формы, проверку правил, загрузку фотографии,
// сохранение анкеты и публикацию события о подаче.
package professional

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ayushsetu/credential-registry/internal/lib/formdata"
	"github.com/ayushsetu/credential-registry/internal/lib/sl"
	"github.com/ayushsetu/credential-registry/internal/lib/validation"
	"github.com/ayushsetu/credential-registry/internal/mediastore"
	"github.com/ayushsetu/credential-registry/internal/models"
)

// ErrPhotoUpload медиа-хранилище не приняло фотографию; анкета не сохранена.
var ErrPhotoUpload = errors.New("photo upload failed")

// Store описывает контракт хранилища анкет.
type Store interface {
	CreateMedicalProfessional(ctx context.Context, p models.MedicalProfessional) (string, error)
	CreateNonMedicalProfessional(ctx context.Context, p models.NonMedicalProfessional) (string, error)
	GetMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.MedicalProfessional, error)
	GetNonMedicalProfessionalByUserID(ctx context.Context, userID string) (*models.NonMedicalProfessional, error)
	SetUserRegisteredAs(ctx context.Context, userID, registeredAs string) error
}

// Uploader загружает локальный файл во внешнее медиа-хранилище.
type Uploader interface {
	UploadFile(ctx context.Context, localPath, folder string) (*mediastore.UploadResult, error)
}

// PublishFunc публикует событие с ключом маршрутизации. Nil отключает события.
type PublishFunc func(routingKey string, event any) error

// RegistrationEvent событие о принятой анкете для воркеров уведомлений.
// EventID позволяет потребителям дедуплицировать повторные доставки.
type RegistrationEvent struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	ProfileID   string    `json:"profileId"`
	Type        string    `json:"type"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Service принимает анкеты профессиональной регистрации.
type Service struct {
	store    Store
	uploader Uploader
	publish  PublishFunc
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, uploader Uploader, publish PublishFunc, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		uploader: uploader,
		publish:  publish,
		log:      log,
	}
}

// RegisterMedical принимает анкету медицинского специалиста. Возвращает
// полный список нарушений правил; при непустом списке никакие побочные
// эффекты не выполняются. Фотография загружается только после успешной
// проверки анкеты.
func (s *Service) RegisterMedical(ctx context.Context, userID string, form url.Values, photoPath string) (*models.MedicalProfessional, []validation.FieldError, error) {
	const op = "professional.RegisterMedical"

	body := formdata.Normalize(form)
	errs := validation.MedicalProfessionalRules().Validate(body)
	if photoPath == "" {
		errs = append(errs, validation.FieldError{Field: "personalPhoto", Message: "Personal photo is required!"})
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	var p models.MedicalProfessional
	if err := models.DecodeBody(body, &p); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	p.UserID = userID

	uploaded, err := s.uploader.UploadFile(ctx, photoPath, "registry/professionals/"+userID)
	if err != nil {
		s.log.Error("failed to upload personal photo", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrPhotoUpload)
	}
	p.PersonalPhoto = uploaded.SecureURL

	profileID, err := s.store.CreateMedicalProfessional(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	p.ID = profileID

	if err := s.store.SetUserRegisteredAs(ctx, userID, models.RegisteredAsMedical); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(RegistrationEvent{
		UserID:      userID,
		ProfileID:   profileID,
		Type:        models.RegisteredAsMedical,
		SubmittedAt: time.Now().UTC(),
	})
	return &p, nil, nil
}

// RegisterNonMedical принимает анкету немедицинского специалиста.
func (s *Service) RegisterNonMedical(ctx context.Context, userID string, form url.Values, photoPath string) (*models.NonMedicalProfessional, []validation.FieldError, error) {
	const op = "professional.RegisterNonMedical"

	body := formdata.Normalize(form)
	errs := validation.NonMedicalProfessionalRules().Validate(body)
	if photoPath == "" {
		errs = append(errs, validation.FieldError{Field: "personalPhoto", Message: "Personal photo is required!"})
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	var p models.NonMedicalProfessional
	if err := models.DecodeBody(body, &p); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	p.UserID = userID

	uploaded, err := s.uploader.UploadFile(ctx, photoPath, "registry/professionals/"+userID)
	if err != nil {
		s.log.Error("failed to upload personal photo", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrPhotoUpload)
	}
	p.PersonalPhoto = uploaded.SecureURL

	profileID, err := s.store.CreateNonMedicalProfessional(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	p.ID = profileID

	if err := s.store.SetUserRegisteredAs(ctx, userID, models.RegisteredAsNonMedical); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(RegistrationEvent{
		UserID:      userID,
		ProfileID:   profileID,
		Type:        models.RegisteredAsNonMedical,
		SubmittedAt: time.Now().UTC(),
	})
	return &p, nil, nil
}

// GetMedicalByUserID возвращает анкету медицинского специалиста по владельцу.
func (s *Service) GetMedicalByUserID(ctx context.Context, userID string) (*models.MedicalProfessional, error) {
	return s.store.GetMedicalProfessionalByUserID(ctx, userID)
}

// GetNonMedicalByUserID возвращает анкету немедицинского специалиста по владельцу.
func (s *Service) GetNonMedicalByUserID(ctx context.Context, userID string) (*models.NonMedicalProfessional, error) {
	return s.store.GetNonMedicalProfessionalByUserID(ctx, userID)
}

// emit публикует событие о подаче анкеты. Сбой публикации не откатывает
// регистрацию: событие вторично относительно сохранённой анкеты.
func (s *Service) emit(event RegistrationEvent) {
	if s.publish == nil {
		return
	}
	event.EventID = uuid.NewString()
	if err := s.publish("registration.submitted", event); err != nil {
		s.log.Error("failed to publish registration event", sl.Err(err))
	}
}
