package professional

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsetu/credential-registry/internal/mediastore"
	"github.com/ayushsetu/credential-registry/internal/models"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

type stubStore struct {
	createErr       error
	createdMedical  *models.MedicalProfessional
	registeredAs    string
	registeredUsers []string
}

func (s *stubStore) CreateMedicalProfessional(_ context.Context, p models.MedicalProfessional) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.createdMedical = &p
	return "prof-1", nil
}

func (s *stubStore) CreateNonMedicalProfessional(_ context.Context, _ models.NonMedicalProfessional) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return "prof-2", nil
}

func (s *stubStore) GetMedicalProfessionalByUserID(_ context.Context, _ string) (*models.MedicalProfessional, error) {
	return s.createdMedical, nil
}

func (s *stubStore) GetNonMedicalProfessionalByUserID(_ context.Context, _ string) (*models.NonMedicalProfessional, error) {
	return nil, storage.ErrNotFound
}

func (s *stubStore) SetUserRegisteredAs(_ context.Context, userID, registeredAs string) error {
	s.registeredAs = registeredAs
	s.registeredUsers = append(s.registeredUsers, userID)
	return nil
}

type stubUploader struct {
	uploads   []string
	folder    string
	uploadErr error
}

func (s *stubUploader) UploadFile(_ context.Context, localPath, folder string) (*mediastore.UploadResult, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploads = append(s.uploads, localPath)
	s.folder = folder
	return &mediastore.UploadResult{
		PublicID:  "registry/professionals/photo",
		SecureURL: "https://cdn.example.com/photo.jpg",
	}, nil
}

// validMedicalForm воспроизводит плоские поля multipart-формы полной анкеты.
func validMedicalForm() url.Values {
	return url.Values{
		"fullname":            {"Dr. Anita Sharma"},
		"dateOfBirth":         {"1985-04-15"},
		"gender":              {"female"},
		"personalNationality": {"Indian"},

		"permanentAddress.houseNo": {"12"},
		"permanentAddress.street":  {"MG Road"},
		"permanentAddress.city":    {"Pune"},
		"permanentAddress.state":   {"MH"},
		"permanentAddress.pinCode": {"411001"},
		"phoneNumber":              {"9876543210"},
		"emailPrimary":             {"anita@example.com"},

		"academicQualifications": {`{
			"ug": {"qualification": "BAMS", "college": "College A", "yearOfPassing": "2007"},
			"pg": {"qualification": "MD", "specialization": "Kayachikitsa", "college": "College B", "yearOfPassing": "2010"}
		}`},

		"regulatoryDetails.regulatoryAyushRegNo":    {"AYU-12345"},
		"regulatoryDetails.councilName":             {"CCIM"},
		"regulatoryDetails.registrationDate":        {"2010-06-01"},
		"regulatoryDetails.regulatoryValidityUntil": {"2030-06-01"},

		"practiceDetails.currentDesignation":     {"Consultant"},
		"practiceDetails.currentInstitution":     {"Clinic A"},
		"practiceDetails.workAddress":            {"Pune"},
		"practiceDetails.yearsExperience":        {"12"},
		"practiceDetails.specializationAreas[0]": {"Kayachikitsa"},

		"previousExperience": {`[{
			"designation": "Registrar",
			"organization": "Hospital A",
			"description": "Managed inpatient care"
		}]`},

		"researchInterests[0]": {"pharmacology"},
		"publicationDetails":   {`[{"link": "https://doi.org/xx"}]`},

		"trainingDetails[0].trainingName":      {"Panchakarma"},
		"trainingDetails[0].trainingOrganizer": {"Institute X"},
		"trainingDetails[0].trainingRole":      {"Trainee"},
		"trainingDetails[0].trainingStartDate": {"2015-01-10"},
		"trainingDetails[0].trainingEndDate":   {"2015-02-10"},

		"consent_infoTrueAndCorrect":   {"true"},
		"consent_authorizeDataUse":     {"true"},
		"consent_agreeToNotifications": {"true"},
	}
}

func TestRegisterMedical_Success(t *testing.T) {
	store := &stubStore{}
	uploader := &stubUploader{}
	var events []RegistrationEvent
	publish := func(routingKey string, event any) error {
		assert.Equal(t, "registration.submitted", routingKey)
		events = append(events, event.(RegistrationEvent))
		return nil
	}
	svc := New(store, uploader, publish, makeLogger())

	profile, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", validMedicalForm(), "/tmp/photo.jpg")
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, profile)

	assert.Equal(t, "prof-1", profile.ID)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "Dr. Anita Sharma", profile.Fullname)
	assert.Equal(t, "411001", profile.PermanentAddress.PinCode)
	assert.Equal(t, models.FlexInt(2007), profile.AcademicQualifications.UG.YearOfPassing)
	assert.Equal(t, "https://cdn.example.com/photo.jpg", profile.PersonalPhoto)

	assert.Equal(t, []string{"/tmp/photo.jpg"}, uploader.uploads)
	assert.Equal(t, "registry/professionals/user-1", uploader.folder)
	assert.Equal(t, models.RegisteredAsMedical, store.registeredAs)

	require.Len(t, events, 1)
	assert.Equal(t, "user-1", events[0].UserID)
	assert.Equal(t, "prof-1", events[0].ProfileID)
	assert.NotEmpty(t, events[0].EventID)
}

func TestRegisterMedical_ValidationFailureHasNoSideEffects(t *testing.T) {
	store := &stubStore{}
	uploader := &stubUploader{}
	published := false
	svc := New(store, uploader, func(string, any) error {
		published = true
		return nil
	}, makeLogger())

	form := validMedicalForm()
	form.Del("fullname")
	form.Set("permanentAddress.pinCode", "41")

	profile, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", form, "/tmp/photo.jpg")
	require.NoError(t, err)
	assert.Nil(t, profile)
	require.NotEmpty(t, fieldErrs)

	msgs := map[string]string{}
	for _, e := range fieldErrs {
		msgs[e.Field] = e.Message
	}
	assert.Equal(t, "Fullname is required!", msgs["fullname"])
	assert.Equal(t, "Pin code must be a 6-digit number!", msgs["permanentAddress.pinCode"])

	assert.Empty(t, uploader.uploads)
	assert.Nil(t, store.createdMedical)
	assert.Empty(t, store.registeredAs)
	assert.False(t, published)
}

func TestRegisterMedical_MissingPhoto(t *testing.T) {
	svc := New(&stubStore{}, &stubUploader{}, nil, makeLogger())

	_, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", validMedicalForm(), "")
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "personalPhoto", fieldErrs[0].Field)
	assert.Equal(t, "Personal photo is required!", fieldErrs[0].Message)
}

func TestRegisterMedical_PhotoUploadFailure(t *testing.T) {
	store := &stubStore{}
	uploader := &stubUploader{uploadErr: assert.AnError}
	svc := New(store, uploader, nil, makeLogger())

	profile, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", validMedicalForm(), "/tmp/photo.jpg")
	assert.Nil(t, profile)
	assert.Empty(t, fieldErrs)
	assert.ErrorIs(t, err, ErrPhotoUpload)

	assert.Nil(t, store.createdMedical)
	assert.Empty(t, store.registeredAs)
}

func TestRegisterMedical_AlreadySubmitted(t *testing.T) {
	store := &stubStore{createErr: storage.ErrAlreadyExists}
	svc := New(store, &stubUploader{}, nil, makeLogger())

	_, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", validMedicalForm(), "/tmp/photo.jpg")
	assert.Empty(t, fieldErrs)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	assert.Empty(t, store.registeredAs)
}

func TestRegisterMedical_PublishFailureDoesNotFailRegistration(t *testing.T) {
	store := &stubStore{}
	svc := New(store, &stubUploader{}, func(string, any) error {
		return assert.AnError
	}, makeLogger())

	profile, fieldErrs, err := svc.RegisterMedical(context.Background(), "user-1", validMedicalForm(), "/tmp/photo.jpg")
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	require.NotNil(t, profile)
	assert.Equal(t, models.RegisteredAsMedical, store.registeredAs)
}
