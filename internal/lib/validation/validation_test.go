package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMessages(errs []FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	rules := Rules{
		{Field: "fullname", Required: "Fullname is required!"},
		{Field: "emailPrimary", Required: "Email is required!", Checks: []Check{Email("Email is invalid")}},
		{Field: "phoneNumber", Required: "Phone number is required",
			Checks: []Check{Pattern(`^\d{10}$`, "Phone number must be a 10-digit number!")}},
	}

	errs := rules.Validate(map[string]any{
		"emailPrimary": "not-an-email",
		"phoneNumber":  "123",
	})

	// проверка не останавливается на первой ошибке
	require.Len(t, errs, 3)
	msgs := fieldMessages(errs)
	assert.Equal(t, "Fullname is required!", msgs["fullname"])
	assert.Equal(t, "Email is invalid", msgs["emailPrimary"])
	assert.Equal(t, "Phone number must be a 10-digit number!", msgs["phoneNumber"])
}

func TestValidate_OptionalFieldSkippedWhenAbsent(t *testing.T) {
	rules := Rules{
		{Field: "emailAlternate", Checks: []Check{Email("Email is invalid")}},
	}

	errs := rules.Validate(map[string]any{})
	assert.Empty(t, errs)

	errs = rules.Validate(map[string]any{"emailAlternate": "   "})
	assert.Empty(t, errs)

	errs = rules.Validate(map[string]any{"emailAlternate": "broken"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Email is invalid", errs[0].Message)
}

func TestValidate_NestedPath(t *testing.T) {
	rules := Rules{
		{Field: "permanentAddress.pinCode", Required: "Pincode is required!",
			Checks: []Check{Pattern(`^\d{6}$`, "Pin code must be a 6-digit number!")}},
	}

	errs := rules.Validate(map[string]any{
		"permanentAddress": map[string]any{"pinCode": "411001"},
	})
	assert.Empty(t, errs)

	errs = rules.Validate(map[string]any{
		"permanentAddress": map[string]any{"pinCode": "41"},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "permanentAddress.pinCode", errs[0].Field)

	errs = rules.Validate(map[string]any{})
	require.Len(t, errs, 1)
	assert.Equal(t, "permanentAddress.pinCode", errs[0].Field)
	assert.Equal(t, "Pincode is required!", errs[0].Message)
}

func TestValidate_WildcardOverArray(t *testing.T) {
	rules := Rules{
		{Field: "previousExperience.*.designation", Required: "Designation is required!"},
	}

	errs := rules.Validate(map[string]any{
		"previousExperience": []any{
			map[string]any{"designation": "Intern"},
			map[string]any{"organization": "Hospital"},
		},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "previousExperience.1.designation", errs[0].Field)
}

func TestValidate_WildcardNoMatchesNoErrors(t *testing.T) {
	rules := Rules{
		{Field: "previousExperience.*.designation", Required: "Designation is required!"},
	}

	errs := rules.Validate(map[string]any{})
	assert.Empty(t, errs)
}

func TestValidate_MalformedJSONFailsArrayRule(t *testing.T) {
	rules := Rules{
		{Field: "publicationDetails", Required: "At least one publication record is required!",
			Checks: []Check{ArrayMin(1, "At least one publication record is required!")}},
	}

	// нераспарсившийся JSON дошёл до валидатора сырой строкой
	errs := rules.Validate(map[string]any{
		"publicationDetails": `[{"broken"`,
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "At least one publication record is required!", errs[0].Message)
}

func TestChecks(t *testing.T) {
	assert.Empty(t, IntRange(1900, 2100, "bad")(1995))
	assert.Empty(t, IntRange(1900, 2100, "bad")("1995"))
	assert.Empty(t, IntRange(1900, 2100, "bad")(float64(1995)))
	assert.Equal(t, "bad", IntRange(1900, 2100, "bad")(1800))
	assert.Equal(t, "bad", IntRange(1900, 2100, "bad")("abc"))

	assert.Empty(t, IsDate("bad")(time.Now()))
	assert.Equal(t, "bad", IsDate("bad")("2020-01-01"))

	assert.Empty(t, IsURL("bad")("https://example.com/p"))
	assert.Equal(t, "bad", IsURL("bad")("nota url"))

	assert.Empty(t, MustBeTrue("bad")(true))
	assert.Equal(t, "bad", MustBeTrue("bad")(false))
	assert.Equal(t, "bad", MustBeTrue("bad")("true"))

	assert.Empty(t, MinLen(3, "bad")("abcd"))
	assert.Equal(t, "bad", MinLen(3, "bad")("ab"))
}

func TestMedicalRules_ValidBodyPasses(t *testing.T) {
	body := map[string]any{
		"fullname":            "Dr. Anita Sharma",
		"dateOfBirth":         time.Date(1985, 4, 15, 0, 0, 0, 0, time.UTC),
		"gender":              "female",
		"personalNationality": "Indian",
		"permanentAddress": map[string]any{
			"houseNo": "12", "street": "MG Road", "city": "Pune",
			"state": "MH", "pinCode": "411001",
		},
		"phoneNumber":  "9876543210",
		"emailPrimary": "anita@example.com",
		"academicQualifications": map[string]any{
			"ug": map[string]any{"qualification": "BAMS", "college": "College A", "yearOfPassing": "2007"},
			"pg": map[string]any{"qualification": "MD", "specialization": "Kayachikitsa", "college": "College B", "yearOfPassing": "2010"},
		},
		"regulatoryDetails": map[string]any{
			"regulatoryAyushRegNo":    "AYU-12345",
			"councilName":             "CCIM",
			"registrationDate":        time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC),
			"regulatoryValidityUntil": time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		"practiceDetails": map[string]any{
			"currentDesignation": "Consultant",
			"currentInstitution": "Clinic A",
			"workAddress":        "Pune",
			"yearsExperience":    "12",
			"specializationAreas": []any{
				"Kayachikitsa",
			},
		},
		"previousExperience": []any{
			map[string]any{
				"designation":  "Registrar",
				"organization": "Hospital A",
				"description":  "Managed inpatient care",
			},
		},
		"researchInterests": []any{"pharmacology"},
		"publicationDetails": []any{
			map[string]any{"link": "https://doi.org/xx"},
		},
		"trainingDetails": []any{
			map[string]any{
				"trainingName":      "Panchakarma",
				"trainingOrganizer": "Institute X",
				"trainingRole":      "Trainee",
				"trainingStartDate": time.Date(2015, 1, 10, 0, 0, 0, 0, time.UTC),
				"trainingEndDate":   time.Date(2015, 2, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		"consent_infoTrueAndCorrect":   true,
		"consent_authorizeDataUse":     true,
		"consent_agreeToNotifications": true,
	}

	errs := MedicalProfessionalRules().Validate(body)
	assert.Empty(t, errs)
}

func TestMedicalRules_EmptyBodyReportsEverything(t *testing.T) {
	errs := MedicalProfessionalRules().Validate(map[string]any{})

	msgs := fieldMessages(errs)
	assert.Equal(t, "Fullname is required!", msgs["fullname"])
	assert.Equal(t, "Please confirm that the information provided is true and correct", msgs["consent_infoTrueAndCorrect"])
	assert.Equal(t, "At least one research interest is required!", msgs["researchInterests"])
	// wildcard-правила по пустым массивам совпадений не дают
	assert.NotContains(t, msgs, "previousExperience.*.designation")
}

func TestMedicalRules_RegistrationDateInFuture(t *testing.T) {
	body := map[string]any{
		"regulatoryDetails": map[string]any{
			"registrationDate": time.Now().Add(48 * time.Hour),
		},
	}

	errs := MedicalProfessionalRules().Validate(body)
	msgs := fieldMessages(errs)
	assert.Equal(t, "Registration date cannot be in the future!", msgs["regulatoryDetails.registrationDate"])
}

func TestNonMedicalRules_NoRegulatorySection(t *testing.T) {
	errs := NonMedicalProfessionalRules().Validate(map[string]any{})

	msgs := fieldMessages(errs)
	assert.NotContains(t, msgs, "regulatoryDetails.regulatoryAyushRegNo")
	assert.NotContains(t, msgs, "previousExperience")
	assert.Contains(t, msgs, "trainingDetails")
}
