package form

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ishanya/ishanya/assets"
)

func loadRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := LoadSchemas(assets.FS, nil)
	require.NoError(t, err)
	return reg
}

func getSchema(t *testing.T, name string) *Schema {
	t.Helper()
	schema, err := loadRegistry(t).Get(name)
	require.NoError(t, err)
	return schema
}

func validJobApplication() State {
	return State{
		"position":       "Occupational Therapist",
		"firstName":      "Jane",
		"lastName":       "Smith",
		"email":          "jane.smith@example.com",
		"gender":         "female",
		"dateOfBirth":    "1990-04-12",
		"password":       "Tr0ub4dor&3x",
		"contactNumber":  "+1 555 123 4567",
		"address":        "42 Harbour Street, Springfield",
		"qualifications": "MSc Occupational Therapy",
		"experience":     "6 years in paediatric clinics",
		"skills":         "Sensory integration, AAC",
		"resumeFile":     "jane-smith.pdf",
	}
}

func validChildRegistration() State {
	return State{
		"parentName":       "Robert Johnson",
		"childName":        "Alex Johnson",
		"email":            "robert@example.com",
		"gender":           "male",
		"dateOfBirth":      "2016-09-01",
		"fatherName":       "Robert Johnson",
		"motherName":       "Maria Johnson",
		"primaryDiagnosis": "Autism Spectrum Disorder",
		"bloodGroup":       "O+",
		"contactNumber":    "5551234567",
		"address":          "12 Elm Road, Oakland, CA",
		"strengths":        "Visual memory",
		"weaknesses":       "Social interaction",
	}
}
