// Package model defines the data structures used throughout the application.
package model

// Candidate is one row of the exam roster.
//
// The fields map to the columns of the published spreadsheet export:
//
//	NUMEROINSCRICAO → RegistrationNumber
//	CPF             → NationalID
//	NOME_CANDIDATO  → FullName
//	LOCAL           → ExamLocation
//	SALA            → Room
//	CURSO           → Course
//
// NationalID holds whatever the sheet contained until the roster is
// normalized; after that it is the canonical digit-only form.
type Candidate struct {
	RegistrationNumber int64  `json:"registrationNumber"`
	NationalID         string `json:"nationalId"`
	FullName           string `json:"fullName"`
	ExamLocation       string `json:"examLocation"`
	Room               string `json:"room"`
	Course             string `json:"course"`
}

// CandidateView is the display projection of a matched Candidate.
// Every field is already formatted for the user; the CPF carries its
// separators and the registration number is a plain decimal string.
type CandidateView struct {
	RegistrationNumber string `json:"registrationNumber"`
	NationalID         string `json:"nationalId"`
	FullName           string `json:"fullName"`
	ExamLocation       string `json:"examLocation"`
	Room               string `json:"room"`
	Course             string `json:"course"`
}

// ColumnHeaders are the display headers, in presentation order.
var ColumnHeaders = []string{"NUMEROINSCRICAO", "CPF", "NOME_CANDIDATO", "LOCAL", "SALA", "CURSO"}

// Row returns the view as a slice ordered like ColumnHeaders.
func (v CandidateView) Row() []string {
	return []string{
		v.RegistrationNumber,
		v.NationalID,
		v.FullName,
		v.ExamLocation,
		v.Room,
		v.Course,
	}
}
