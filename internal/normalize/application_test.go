package normalize

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestApplicationRecordResolvesStudentBlockAliases(t *testing.T) {
	aliases := []string{"studentInfo", "student", "studentData", "studentDto"}
	for _, alias := range aliases {
		raw := `{"applicationId": 5, "` + alias + `": {"fullName": "Ahmed Mohamed", "nationalId": "29805150101234"}}`
		record := ApplicationRecord(gjson.Parse(raw))

		if record.StudentInfo == nil {
			t.Fatalf("alias %s: expected studentInfo, got nil", alias)
		}
		if got := record.StudentInfo["fullName"]; got != "Ahmed Mohamed" {
			t.Errorf("alias %s: expected fullName Ahmed Mohamed, got %v", alias, got)
		}
		if record.StudentName != "Ahmed Mohamed" {
			t.Errorf("alias %s: expected studentName from block, got %q", alias, record.StudentName)
		}
	}
}

func TestApplicationRecordMissingStudentBlockYieldsEmptyObject(t *testing.T) {
	record := ApplicationRecord(gjson.Parse(`{"applicationId": 9}`))

	if record.StudentInfo == nil {
		t.Fatal("expected empty studentInfo object, got nil")
	}
	if len(record.StudentInfo) != 0 {
		t.Errorf("expected empty studentInfo, got %v", record.StudentInfo)
	}
}

func TestApplicationRecordBlocksResolveIndependently(t *testing.T) {
	raw := `{
		"id": 3,
		"student": {"fullName": "Sara Hassan"},
		"guardianData": {"name": "Hassan Ali"},
		"academicInfo": {"faculty": "Engineering"}
	}`
	record := ApplicationRecord(gjson.Parse(raw))

	if record.GuardianInfo == nil {
		t.Error("expected guardianInfo resolved from guardianData")
	}
	if record.AcademicInfo == nil {
		t.Error("expected academicInfo resolved")
	}
	if record.FatherInfo != nil {
		t.Errorf("expected absent fatherInfo, got %v", record.FatherInfo)
	}
	if record.SecondaryInfo != nil {
		t.Errorf("expected absent secondaryInfo, got %v", record.SecondaryInfo)
	}
	if record.ApplicationID != 3 {
		t.Errorf("expected applicationId 3 via id alias, got %d", record.ApplicationID)
	}
}

func TestApplicationRecordStatusDefaultsToPending(t *testing.T) {
	record := ApplicationRecord(gjson.Parse(`{"applicationId": 1}`))
	if record.Status != "pending" {
		t.Errorf("expected policy default pending, got %q", record.Status)
	}

	record = ApplicationRecord(gjson.Parse(`{"applicationId": 1, "applicationStatus": "approved"}`))
	if record.Status != "approved" {
		t.Errorf("expected applicationStatus alias, got %q", record.Status)
	}
}

func TestApplicationRecordIdentifierSentinel(t *testing.T) {
	record := ApplicationRecord(gjson.Parse(`{"studentName": "Omar"}`))
	if record.ApplicationID != 0 {
		t.Errorf("expected sentinel 0 identifier, got %d", record.ApplicationID)
	}
}

func TestApplicationRecordSubmittedAtAliases(t *testing.T) {
	cases := map[string]string{
		"submittedAt":    `{"submittedAt": "2024-01-15"}`,
		"submissionDate": `{"submissionDate": "2024-01-15"}`,
		"createdAt":      `{"createdAt": "2024-01-15"}`,
	}
	for alias, raw := range cases {
		record := ApplicationRecord(gjson.Parse(raw))
		if record.SubmittedAt != "2024-01-15" {
			t.Errorf("alias %s: expected submittedAt 2024-01-15, got %q", alias, record.SubmittedAt)
		}
	}
}

func TestApplicationRecordStudentIDFallsIntoBlock(t *testing.T) {
	record := ApplicationRecord(gjson.Parse(`{"applicationId": 2, "studentInfo": {"studentId": 77}}`))
	if record.StudentID != 77 {
		t.Errorf("expected studentId 77 from block, got %d", record.StudentID)
	}
}
