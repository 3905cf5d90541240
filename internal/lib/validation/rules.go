package validation

// Набор правил анкеты медицинского специалиста. Состав и сообщения повторяют
// форму регистрации: разделы «личные данные», «контакты», «квалификации»,
// «регуляторные данные», «практика», «исследования», «обучение», «согласия».
func MedicalProfessionalRules() Rules {
	rules := Rules{
		// Личные данные
		{Field: "fullname", Required: "Fullname is required!"},
		{Field: "dateOfBirth", Required: "Date of birth is required!", Checks: []Check{IsDate("Date of birth is invalid")}},
		{Field: "gender", Required: "Please select gender"},
		{Field: "personalNationality", Required: "Nationality is required!"},

		// Контакты
		{Field: "permanentAddress.houseNo", Required: "House number is required!"},
		{Field: "permanentAddress.street", Required: "Street name is required!"},
		{Field: "permanentAddress.city", Required: "City name is required!"},
		{Field: "permanentAddress.state", Required: "State name is required!"},
		{Field: "permanentAddress.pinCode", Required: "Pincode is required!",
			Checks: []Check{Pattern(`^\d{6}$`, "Pin code must be a 6-digit number!")}},
		{Field: "phoneNumber", Required: "Phone number is required",
			Checks: []Check{Pattern(`^\d{10}$`, "Phone number must be a 10-digit number!")}},
		{Field: "altPhoneNumber"},
		{Field: "emailPrimary", Required: "Email is required!", Checks: []Check{Email("Email is invalid")}},
		{Field: "emailAlternate", Checks: []Check{Email("Email is invalid")}},

		// Академические квалификации
		{Field: "academicQualifications.ug.qualification", Required: "UG degree is required!"},
		{Field: "academicQualifications.ug.college", Required: "College name is required!"},
		{Field: "academicQualifications.ug.yearOfPassing", Required: "Passing year is required!",
			Checks: []Check{IntRange(1900, 2100, "Year of passing must be a valid number between 1900 and 2100")}},
		{Field: "academicQualifications.pg.qualification", Required: "PG degree is required!"},
		{Field: "academicQualifications.pg.specialization", Required: "PG specialization is required!"},
		{Field: "academicQualifications.pg.college", Required: "College name is required!"},
		{Field: "academicQualifications.pg.yearOfPassing", Required: "Passing year is required!",
			Checks: []Check{IntRange(1900, 2100, "Year of passing must be a valid number between 1900 and 2100")}},
		{Field: "academics_phdOrResearchDegrees"},
		{Field: "academics_additionalCertifications"},

		// Регуляторные данные
		{Field: "regulatoryDetails.regulatoryAyushRegNo", Required: "Ayush registration number is required!"},
		{Field: "regulatoryDetails.councilName", Required: "Council name is required!"},
		{Field: "regulatoryDetails.registrationDate", Required: "Registration date is required!",
			Checks: []Check{IsDate("Registration date is invalid"), notInFuture("Registration date cannot be in the future!")}},
		{Field: "regulatoryDetails.regulatoryValidityUntil", Required: "Regulatory validity date is required!",
			Checks: []Check{IsDate("Regulatory validity date is invalid")}},

		// Практика и опыт работы
		{Field: "practiceDetails.currentDesignation", Required: "Current designation is required!"},
		{Field: "practiceDetails.currentInstitution", Required: "Current institution is required!"},
		{Field: "practiceDetails.workAddress", Required: "Work address is required!"},
		{Field: "practiceDetails.yearsExperience", Required: "Years of experience is required!",
			Checks: []Check{IntRange(0, 80, "Work experience is invalid")}},
		{Field: "practiceDetails.specializationAreas", Required: "At least one specialization area is required!",
			Checks: []Check{ArrayMin(1, "At least one specialization area is required!")}},
		{Field: "previousExperience", Required: "At least one previous experience entry is required!",
			Checks: []Check{ArrayMin(1, "At least one previous experience entry is required!")}},
		{Field: "previousExperience.*.designation", Required: "Designation is required!"},
		{Field: "previousExperience.*.organization", Required: "Organization is required!"},
		{Field: "previousExperience.*.description", Required: "Description is required!",
			Checks: []Check{MinLen(10, "Description should be at least 10 characters long")}},

		// Исследования и публикации
		{Field: "researchInterests", Required: "At least one research interest is required!",
			Checks: []Check{ArrayMin(1, "At least one research interest is required!")}},
		{Field: "publicationDetails", Required: "At least one publication record is required!",
			Checks: []Check{ArrayMin(1, "At least one publication record is required!")}},
		{Field: "publicationDetails.*.journal", Checks: []Check{IsString("Journal must be a string")}},
		{Field: "publicationDetails.*.title", Checks: []Check{IsString("Title must be a string")}},
		{Field: "publicationDetails.*.year", Checks: []Check{IntRange(1900, 2100, "Year must be between 1900 and 2100")}},
		{Field: "publicationDetails.*.link", Required: "Publication link is required!",
			Checks: []Check{IsURL("Publication link must be a valid URL")}},
	}
	rules = append(rules, trainingRules()...)
	rules = append(rules, digitalPresenceRules()...)
	rules = append(rules, consentRules()...)
	return rules
}

// Набор правил анкеты немедицинского специалиста: без регуляторного раздела,
// практики, опыта и публикаций.
func NonMedicalProfessionalRules() Rules {
	rules := Rules{
		{Field: "fullname", Required: "Fullname is required!"},
		{Field: "dateOfBirth", Required: "Date of birth is required!", Checks: []Check{IsDate("Date of birth is invalid")}},
		{Field: "gender", Required: "Please select gender"},
		{Field: "personalNationality", Required: "Nationality is required!"},

		{Field: "permanentAddress.houseNo", Required: "House number is required!"},
		{Field: "permanentAddress.street", Required: "Street name is required!"},
		{Field: "permanentAddress.city", Required: "City name is required!"},
		{Field: "permanentAddress.state", Required: "State name is required!"},
		{Field: "permanentAddress.pinCode", Required: "Pincode is required!",
			Checks: []Check{Pattern(`^\d{6}$`, "Pin code must be a 6-digit number!")}},
		{Field: "phoneNumber", Required: "Phone number is required",
			Checks: []Check{Pattern(`^\d{10}$`, "Phone number must be a 10-digit number!")}},
		{Field: "altPhoneNumber"},
		{Field: "emailPrimary", Required: "Email is required!", Checks: []Check{Email("Email is invalid")}},
		{Field: "emailAlternate", Checks: []Check{Email("Email is invalid")}},

		{Field: "academicQualifications.ug.qualification", Required: "UG degree is required!"},
		{Field: "academicQualifications.ug.college", Required: "College name is required!"},
		{Field: "academicQualifications.ug.yearOfPassing", Required: "Passing year is required!",
			Checks: []Check{IntRange(1900, 2100, "Year of passing must be a valid number between 1900 and 2100")}},
		{Field: "academicQualifications.pg.qualification", Required: "PG degree is required!"},
		{Field: "academicQualifications.pg.specialization", Required: "PG specialization is required!"},
		{Field: "academicQualifications.pg.college", Required: "College name is required!"},
		{Field: "academicQualifications.pg.yearOfPassing", Required: "Passing year is required!",
			Checks: []Check{IntRange(1900, 2100, "Year of passing must be a valid number between 1900 and 2100")}},
		{Field: "academics_phdOrResearchDegrees"},
		{Field: "academics_additionalCertifications"},
	}
	rules = append(rules, trainingRules()...)
	rules = append(rules, digitalPresenceRules()...)
	rules = append(rules, consentRules()...)
	return rules
}

func trainingRules() Rules {
	return Rules{
		{Field: "trainingDetails", Required: "At least one training details entry is required!",
			Checks: []Check{ArrayMin(1, "At least one training details entry is required!")}},
		{Field: "trainingDetails.*.trainingName", Required: "Training name is required!"},
		{Field: "trainingDetails.*.trainingOrganizer", Required: "Training organizer name is required!"},
		{Field: "trainingDetails.*.trainingRole", Required: "At least one training role is required!"},
		{Field: "trainingDetails.*.trainingStartDate", Required: "Training start date is required!",
			Checks: []Check{IsDate("Training start date is invalid")}},
		{Field: "trainingDetails.*.trainingEndDate", Required: "Training end date is required!",
			Checks: []Check{IsDate("Training end date is invalid")}},
	}
}

func digitalPresenceRules() Rules {
	return Rules{
		{Field: "digitalWebsite"},
		{Field: "digitalBlog"},
		{Field: "digitalLinkedIn"},
		{Field: "digitalResearchGate"},
		{Field: "digitalOrcid"},
	}
}

// Согласия обязательны; отсутствующее поле равнозначно отказу.
// Двойная проверка consent_authorizeDataUse из исходной формы схлопнута
// в одно правило.
func consentRules() Rules {
	return Rules{
		{Field: "consent_infoTrueAndCorrect",
			Required: "Please confirm that the information provided is true and correct",
			Checks:   []Check{MustBeTrue("Please confirm that the information provided is true and correct")}},
		{Field: "consent_authorizeDataUse",
			Required: "You must authorize the use of your data for processing this application",
			Checks:   []Check{MustBeTrue("You must authorize the use of your data for processing this application")}},
		{Field: "consent_agreeToNotifications",
			Required: "You must agree to receive updates and notifications",
			Checks:   []Check{MustBeTrue("You must agree to receive updates and notifications")}},
	}
}
